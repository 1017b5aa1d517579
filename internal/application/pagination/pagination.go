// Package pagination holds the two paging strategies used by the site:
// section-local paging over already-fetched groups, and route-based paging
// where every page number is its own URL and its own fetch.
package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

// TotalPages is ceil(total/size), or 0 when either is not positive.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Window returns the slice of items visible on the zero-based page.
func Window[T any](items []T, page, size int) []T {
	if size <= 0 || page < 0 {
		return nil
	}
	start := page * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageLink is one numbered link in a route-paged navigation bar.
type PageLink struct {
	Number  int    `json:"number"`
	Href    string `json:"href"`
	Current bool   `json:"current"`
}

// Route describes a page of a catalog paged through the URL, e.g. /compra/page/2.
type Route struct {
	Page     int
	PageSize int
	Total    int
	BasePath string
}

func (r Route) TotalPages() int {
	return TotalPages(r.Total, r.PageSize)
}

// PrevDisabled is true on the first page. The control stays rendered.
func (r Route) PrevDisabled() bool {
	return r.Page <= 1
}

// NextDisabled is true on the last page, and when there are no pages at all.
func (r Route) NextDisabled() bool {
	return r.Page >= r.TotalPages()
}

func (r Route) Href(page int) string {
	return fmt.Sprintf("%s/page/%d", strings.TrimRight(r.BasePath, "/"), page)
}

func (r Route) PrevHref() string {
	if r.PrevDisabled() {
		return ""
	}
	return r.Href(r.Page - 1)
}

func (r Route) NextHref() string {
	if r.NextDisabled() {
		return ""
	}
	return r.Href(r.Page + 1)
}

// Links renders one link per page number.
// TODO: compact with ellipses once a catalog grows past a few dozen pages.
func (r Route) Links() []PageLink {
	n := r.TotalPages()
	links := make([]PageLink, 0, n)
	for i := 1; i <= n; i++ {
		links = append(links, PageLink{Number: i, Href: r.Href(i), Current: i == r.Page})
	}
	return links
}

// ParsePage reads a 1-based page number from a path segment, defaulting to 1.
func ParsePage(segment string) int {
	n, err := strconv.Atoi(strings.TrimSpace(segment))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
