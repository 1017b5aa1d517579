package filter

import (
	"strings"

	"porvenir-web/internal/domain"
)

type predicate func(*domain.Listing) bool

// Apply narrows listings by c. Filters run in a fixed order (city, text, price,
// rooms, bathrooms, type, category) and each is skipped at its default. The
// result is a new slice in input order; the input is never modified.
func Apply(listings []domain.Listing, c Criteria) []domain.Listing {
	preds := c.predicates()
	out := make([]domain.Listing, 0, len(listings))
	for i := range listings {
		if matchAll(&listings[i], preds) {
			out = append(out, listings[i])
		}
	}
	return out
}

func matchAll(l *domain.Listing, preds []predicate) bool {
	for _, p := range preds {
		if !p(l) {
			return false
		}
	}
	return true
}

func (c Criteria) predicates() []predicate {
	var preds []predicate
	if c.City != "" {
		city := c.City
		preds = append(preds, func(l *domain.Listing) bool { return l.City == city })
	}
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		preds = append(preds, func(l *domain.Listing) bool {
			return strings.Contains(strings.ToLower(l.Name), q) ||
				strings.Contains(strings.ToLower(l.Address), q) ||
				strings.Contains(strings.ToLower(l.City), q)
		})
	}
	if c.MinPrice != nil || c.MaxPrice != nil {
		lo, hi := c.MinPrice, c.MaxPrice
		preds = append(preds, func(l *domain.Listing) bool {
			return (lo == nil || l.Price >= *lo) && (hi == nil || l.Price <= *hi)
		})
	}
	if c.Rooms != AnyCount {
		rooms := c.Rooms
		preds = append(preds, func(l *domain.Listing) bool { return rooms.Matches(l.Bedrooms) })
	}
	if c.Bathrooms != AnyCount {
		baths := c.Bathrooms
		preds = append(preds, func(l *domain.Listing) bool { return baths.Matches(l.Bathrooms) })
	}
	if c.Type != "" {
		typ := c.Type
		preds = append(preds, func(l *domain.Listing) bool { return l.Type == typ })
	}
	if c.Category != "" {
		cat := c.Category
		preds = append(preds, func(l *domain.Listing) bool { return l.CategoryName() == cat })
	}
	return preds
}

// Facets are the distinct selectable values in a collection, in first-seen order.
type Facets struct {
	Cities     []string `json:"cities"`
	Types      []string `json:"types"`
	Categories []string `json:"categories"`
}

// CollectFacets gathers non-empty cities, types and categories.
func CollectFacets(listings []domain.Listing) Facets {
	f := Facets{Cities: []string{}, Types: []string{}, Categories: []string{}}
	seen := map[string]map[string]bool{"city": {}, "type": {}, "cat": {}}
	add := func(kind, v string, dst *[]string) {
		if v == "" || seen[kind][v] {
			return
		}
		seen[kind][v] = true
		*dst = append(*dst, v)
	}
	for i := range listings {
		l := &listings[i]
		add("city", l.City, &f.Cities)
		add("type", l.Type, &f.Types)
		add("cat", l.CategoryName(), &f.Categories)
	}
	return f
}
