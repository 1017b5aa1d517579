package contentapi

import (
	"net/url"
	"strconv"
	"strings"
)

// Query builds the filter, populate, pagination and sort parameters of a
// collection request. Methods return the receiver so calls chain.
type Query struct {
	v url.Values
}

func NewQuery() *Query {
	return &Query{v: url.Values{}}
}

// filterKey turns "categoria.nombreCategoria" and "$eq" into
// "filters[categoria][nombreCategoria][$eq]".
func filterKey(field, op string) string {
	var b strings.Builder
	b.WriteString("filters")
	for _, part := range strings.Split(field, ".") {
		b.WriteString("[" + part + "]")
	}
	b.WriteString("[" + op + "]")
	return b.String()
}

// Eq adds an equality filter. Nested relations use dotted paths.
func (q *Query) Eq(field, value string) *Query {
	q.v.Set(filterKey(field, "$eq"), value)
	return q
}

// Ne adds an exclusion filter.
func (q *Query) Ne(field, value string) *Query {
	q.v.Set(filterKey(field, "$ne"), value)
	return q
}

// Populate asks for related entities, e.g. "imagenes", "agente.fotoPrincipal".
func (q *Query) Populate(fields ...string) *Query {
	existing := q.v.Get("populate")
	all := make([]string, 0, len(fields)+1)
	if existing != "" {
		all = append(all, existing)
	}
	all = append(all, fields...)
	q.v.Set("populate", strings.Join(all, ","))
	return q
}

// Paginate selects a 1-based page of the given size.
func (q *Query) Paginate(page, size int) *Query {
	q.v.Del("pagination[limit]")
	q.v.Set("pagination[page]", strconv.Itoa(page))
	q.v.Set("pagination[pageSize]", strconv.Itoa(size))
	return q
}

// Limit caps the number of entries without page numbers.
func (q *Query) Limit(n int) *Query {
	q.v.Del("pagination[page]")
	q.v.Del("pagination[pageSize]")
	q.v.Set("pagination[limit]", strconv.Itoa(n))
	return q
}

// Sort sets the sort expression, e.g. "createdAt:desc".
func (q *Query) Sort(expr string) *Query {
	q.v.Set("sort", expr)
	return q
}

// Encode returns the query string with keys sorted, so equal queries encode equally.
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	return q.v.Encode()
}

// Clone copies the query so a shared base can be extended safely.
func (q *Query) Clone() *Query {
	c := NewQuery()
	if q != nil {
		for k, vals := range q.v {
			c.v[k] = append([]string(nil), vals...)
		}
	}
	return c
}
