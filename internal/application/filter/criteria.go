package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// Count is a room or bathroom selection. AnyCount means no constraint and
// FivePlus matches five or more.
type Count int

const (
	AnyCount Count = 0
	FivePlus Count = 5
)

// Matches reports whether n satisfies the selection.
func (c Count) Matches(n int) bool {
	switch {
	case c == AnyCount:
		return true
	case c >= FivePlus:
		return n >= int(FivePlus)
	default:
		return n == int(c)
	}
}

// Criteria is the immutable set of search selections. The zero value applies
// no constraint at all.
type Criteria struct {
	Query     string
	MinPrice  *float64
	MaxPrice  *float64
	Rooms     Count
	Bathrooms Count
	Type      string
	Category  string
	City      string
}

// Update derives a new Criteria from an existing one.
type Update func(Criteria) Criteria

// With returns a copy of c with every update applied in order. c is left untouched.
func (c Criteria) With(updates ...Update) Criteria {
	next := c
	for _, u := range updates {
		next = u(next)
	}
	return next
}

// IsZero reports whether no constraint is active.
func (c Criteria) IsZero() bool {
	return c.Query == "" && c.MinPrice == nil && c.MaxPrice == nil &&
		c.Rooms == AnyCount && c.Bathrooms == AnyCount &&
		c.Type == "" && c.Category == "" && c.City == ""
}

func Query(q string) Update {
	return func(c Criteria) Criteria {
		c.Query = strings.TrimSpace(q)
		return c
	}
}

// PriceRange sets both bounds; nil clears a bound.
func PriceRange(lo, hi *float64) Update {
	return func(c Criteria) Criteria {
		c.MinPrice = copyFloat(lo)
		c.MaxPrice = copyFloat(hi)
		return c
	}
}

func Rooms(n Count) Update {
	return func(c Criteria) Criteria {
		c.Rooms = clampCount(n)
		return c
	}
}

func Bathrooms(n Count) Update {
	return func(c Criteria) Criteria {
		c.Bathrooms = clampCount(n)
		return c
	}
}

func Type(t string) Update {
	return func(c Criteria) Criteria {
		c.Type = facet(t)
		return c
	}
}

func Category(name string) Update {
	return func(c Criteria) Criteria {
		c.Category = facet(name)
		return c
	}
}

func City(name string) Update {
	return func(c Criteria) Criteria {
		c.City = facet(name)
		return c
	}
}

// Reset clears every selection.
func Reset() Update {
	return func(Criteria) Criteria {
		return Criteria{}
	}
}

// Query-string keys shared by the search page, its JSON endpoint and the map endpoint.
const (
	KeyQuery     = "q"
	KeyMinPrice  = "min"
	KeyMaxPrice  = "max"
	KeyRooms     = "dormitorios"
	KeyBathrooms = "banos"
	KeyType      = "tipo"
	KeyCategory  = "categoria"
	KeyCity      = "ciudad"
)

// noConstraint lists the UI sentinels that mean "no selection".
var noConstraint = map[string]bool{"": true, "todos": true, "todas": true, "any": true, "cualquiera": true}

// ParseCriteria reads criteria from a query string. Malformed numbers are ignored.
func ParseCriteria(v url.Values) Criteria {
	return Criteria{}.With(
		Query(v.Get(KeyQuery)),
		PriceRange(parseFloat(v.Get(KeyMinPrice)), parseFloat(v.Get(KeyMaxPrice))),
		Rooms(parseCount(v.Get(KeyRooms))),
		Bathrooms(parseCount(v.Get(KeyBathrooms))),
		Type(v.Get(KeyType)),
		Category(v.Get(KeyCategory)),
		City(v.Get(KeyCity)),
	)
}

// Values encodes the active selections; defaults are omitted.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if c.Query != "" {
		v.Set(KeyQuery, c.Query)
	}
	if c.MinPrice != nil {
		v.Set(KeyMinPrice, strconv.FormatFloat(*c.MinPrice, 'f', -1, 64))
	}
	if c.MaxPrice != nil {
		v.Set(KeyMaxPrice, strconv.FormatFloat(*c.MaxPrice, 'f', -1, 64))
	}
	if c.Rooms != AnyCount {
		v.Set(KeyRooms, strconv.Itoa(int(c.Rooms)))
	}
	if c.Bathrooms != AnyCount {
		v.Set(KeyBathrooms, strconv.Itoa(int(c.Bathrooms)))
	}
	if c.Type != "" {
		v.Set(KeyType, c.Type)
	}
	if c.Category != "" {
		v.Set(KeyCategory, c.Category)
	}
	if c.City != "" {
		v.Set(KeyCity, c.City)
	}
	return v
}

func facet(s string) string {
	s = strings.TrimSpace(s)
	if noConstraint[strings.ToLower(s)] {
		return ""
	}
	return s
}

func clampCount(n Count) Count {
	switch {
	case n <= AnyCount:
		return AnyCount
	case n >= FivePlus:
		return FivePlus
	default:
		return n
	}
}

func parseCount(s string) Count {
	s = strings.TrimSuffix(strings.TrimSpace(s), "+")
	n, err := strconv.Atoi(s)
	if err != nil {
		return AnyCount
	}
	return Count(n)
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
