package pagination

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// sectionPrefix namespaces section indices in the query string: ?s.Casas=2.
const sectionPrefix = "s."

// Sections stores a zero-based page index per group. Values are immutable:
// Next and Prev return a new Sections.
type Sections struct {
	pages map[string]int
}

// Page returns the group's current index, 0 when never moved.
func (s Sections) Page(group string) int {
	return s.pages[group]
}

func (s Sections) set(group string, page int) Sections {
	next := make(map[string]int, len(s.pages)+1)
	for k, v := range s.pages {
		next[k] = v
	}
	if page == 0 {
		delete(next, group)
	} else {
		next[group] = page
	}
	return Sections{pages: next}
}

// Next advances the group, wrapping from the last page back to the first.
func (s Sections) Next(group string, total, size int) Sections {
	n := TotalPages(total, size)
	if n == 0 {
		return s.set(group, 0)
	}
	return s.set(group, (s.Page(group)+1)%n)
}

// Prev steps the group back, wrapping from the first page to the last.
func (s Sections) Prev(group string, total, size int) Sections {
	n := TotalPages(total, size)
	if n == 0 {
		return s.set(group, 0)
	}
	return s.set(group, (s.Page(group)-1+n)%n)
}

// Clamp folds a stored index into [0, totalPages) for the group.
func (s Sections) Clamp(group string, total, size int) int {
	n := TotalPages(total, size)
	if n == 0 {
		return 0
	}
	p := s.Page(group) % n
	if p < 0 {
		p += n
	}
	return p
}

// ParseSections reads "s.<group>=<n>" pairs from a query string.
func ParseSections(v url.Values) Sections {
	pages := map[string]int{}
	for k, vals := range v {
		if !strings.HasPrefix(k, sectionPrefix) || len(vals) == 0 {
			continue
		}
		n, err := strconv.Atoi(vals[0])
		if err != nil || n <= 0 {
			continue
		}
		pages[strings.TrimPrefix(k, sectionPrefix)] = n
	}
	return Sections{pages: pages}
}

// Query encodes the non-zero indices, keys sorted, without a leading "?".
func (s Sections) Query() string {
	keys := make([]string, 0, len(s.pages))
	for k := range s.pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	v := url.Values{}
	for _, k := range keys {
		v.Set(sectionPrefix+k, strconv.Itoa(s.pages[k]))
	}
	return v.Encode()
}
