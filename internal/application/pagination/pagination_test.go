package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 9))
	assert.Equal(t, 3, TotalPages(7, 3))
	assert.Equal(t, 1, TotalPages(9, 9))
	assert.Equal(t, 0, TotalPages(0, 9))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, []int{1, 2, 3}, Window(items, 0, 3))
	assert.Equal(t, []int{7}, Window(items, 2, 3))
	assert.Nil(t, Window(items, 3, 3))
	assert.Nil(t, Window(items, -1, 3))
}

func TestSections_NextWrapsAfterThreeSteps(t *testing.T) {
	var s Sections
	for i := 0; i < 3; i++ {
		s = s.Next("Casas", 7, 3)
	}
	assert.Equal(t, 0, s.Page("Casas"))
}

func TestSections_PrevWrapsToLastPage(t *testing.T) {
	var s Sections
	s = s.Prev("Casas", 7, 3)
	assert.Equal(t, 2, s.Page("Casas"))
	s = s.Prev("Casas", 7, 3)
	assert.Equal(t, 1, s.Page("Casas"))
}

func TestSections_GroupsAreIndependentAndImmutable(t *testing.T) {
	var base Sections
	a := base.Next("Casas", 7, 3)
	b := a.Next("Locales", 10, 3).Next("Locales", 10, 3)
	assert.Equal(t, 0, base.Page("Casas"))
	assert.Equal(t, 1, a.Page("Casas"))
	assert.Equal(t, 0, a.Page("Locales"))
	assert.Equal(t, 1, b.Page("Casas"))
	assert.Equal(t, 2, b.Page("Locales"))
}

func TestSections_EmptyGroupStaysAtZero(t *testing.T) {
	var s Sections
	assert.Equal(t, 0, s.Next("Otros", 0, 3).Page("Otros"))
	assert.Equal(t, 0, s.Prev("Otros", 0, 3).Page("Otros"))
}

func TestSections_QueryRoundTripAndClamp(t *testing.T) {
	var s Sections
	s = s.Next("Casas", 7, 3).Next("Locales", 10, 3)
	q := s.Query()
	assert.Equal(t, "s.Casas=1&s.Locales=1", q)

	v, err := url.ParseQuery(q + "&s.Terrenos=x&other=1")
	assert.NoError(t, err)
	parsed := ParseSections(v)
	assert.Equal(t, 1, parsed.Page("Casas"))
	assert.Equal(t, 0, parsed.Page("Terrenos"))

	v2, _ := url.ParseQuery("s.Casas=8")
	assert.Equal(t, 2, ParseSections(v2).Clamp("Casas", 7, 3))
}

func TestRoute_PrevNextStates(t *testing.T) {
	first := Route{Page: 1, PageSize: 9, Total: 25, BasePath: "/compra"}
	assert.Equal(t, 3, first.TotalPages())
	assert.True(t, first.PrevDisabled())
	assert.False(t, first.NextDisabled())
	assert.Equal(t, "", first.PrevHref())
	assert.Equal(t, "/compra/page/2", first.NextHref())

	last := Route{Page: 3, PageSize: 9, Total: 25, BasePath: "/compra/"}
	assert.False(t, last.PrevDisabled())
	assert.True(t, last.NextDisabled())
	assert.Equal(t, "/compra/page/2", last.PrevHref())
	assert.Equal(t, "", last.NextHref())

	empty := Route{Page: 1, PageSize: 9, Total: 0, BasePath: "/compra"}
	assert.True(t, empty.PrevDisabled())
	assert.True(t, empty.NextDisabled())
	assert.Empty(t, empty.Links())
}

func TestRoute_LinksEveryPage(t *testing.T) {
	r := Route{Page: 2, PageSize: 9, Total: 25, BasePath: "/destacados"}
	links := r.Links()
	assert.Len(t, links, 3)
	assert.Equal(t, PageLink{Number: 2, Href: "/destacados/page/2", Current: true}, links[1])
	assert.False(t, links[0].Current)
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("-4"))
	assert.Equal(t, 7, ParsePage("7"))
}
