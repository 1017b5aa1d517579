package listings

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"porvenir-web/internal/application/catalog"
	"porvenir-web/internal/application/detail"
	"porvenir-web/internal/application/filter"
	"porvenir-web/internal/application/mapview"
	"porvenir-web/internal/application/pagination"
	"porvenir-web/internal/domain"
	"porvenir-web/internal/infrastructure/contentapi"
	"porvenir-web/internal/pkg/format"
	"porvenir-web/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SalePageSize     = 9
	FeaturedPageSize = 9
	RentFetchLimit   = 200
	RentSectionSize  = 3

	CategorySale = "En Venta"
	CategoryRent = "En alquiler"
	OtherGroup   = "Otros"
)

var ErrListingNotFound = errors.New("listing not found")

// Source is the content API as seen by the page services.
type Source interface {
	Listings(ctx context.Context, q *contentapi.Query) (contentapi.ListingPage, error)
}

// Snapshots serves a mirrored listing when the API is down.
type Snapshots interface {
	BySlug(ctx context.Context, slug string) (*domain.Listing, error)
}

type Service struct {
	Source    Source
	Catalog   *catalog.Catalog
	Snapshots Snapshots
	Presets   mapview.Presets
	Map       mapview.SceneConfig
	// MessagingBaseURL is the outbound chat host, e.g. https://wa.me.
	MessagingBaseURL string
	// Shuffle reorders the home carousel; nil means a random permutation.
	Shuffle func([]domain.Listing)
}

// RoutePage is one page of a route-paged catalog. Failed distinguishes an
// unreachable API from a category that is simply empty.
type RoutePage struct {
	Listings []domain.Listing
	Route    pagination.Route
	Failed   bool
}

type Carousel struct {
	Listings []domain.Listing
	Failed   bool
}

// RentGroup is one type section of the rent page with its own paging.
type RentGroup struct {
	Name     string
	Heading  string
	Total    int
	Page     int
	Pages    int
	Listings []domain.Listing
	PrevHref string
	NextHref string
}

type RentPage struct {
	Groups []RentGroup
	Failed bool
}

type SearchResult struct {
	Criteria filter.Criteria
	Listings []domain.Listing
	Facets   filter.Facets
	Map      mapview.Document
	Total    int
	Failed   bool
	Stale    bool
}

func baseQuery() *contentapi.Query {
	return contentapi.NewQuery().Populate("*").Eq("active", "true")
}

// SalePage lists active listings in the sale category.
func (s *Service) SalePage(ctx context.Context, page int) RoutePage {
	q := baseQuery().Eq("categoria.nombreCategoria", CategorySale)
	return s.routePage(ctx, q, page, SalePageSize, "/compra")
}

// FeaturedPage lists active featured listings.
func (s *Service) FeaturedPage(ctx context.Context, page int) RoutePage {
	q := baseQuery().Eq("isFeatured", "true")
	return s.routePage(ctx, q, page, FeaturedPageSize, "/destacados")
}

func (s *Service) routePage(ctx context.Context, q *contentapi.Query, page, size int, base string) RoutePage {
	if page < 1 {
		page = 1
	}
	out := RoutePage{Listings: []domain.Listing{}, Route: pagination.Route{Page: page, PageSize: size, BasePath: base}}
	res, err := s.Source.Listings(ctx, q.Paginate(page, size))
	if err != nil {
		log.Error().Err(err).Str("path", base).Int("page", page).Msg("listing page fetch failed")
		out.Failed = true
		return out
	}
	out.Listings = res.Listings
	out.Route.Total = res.Total
	return out
}

// FeaturedCarousel returns every active featured listing in random order.
func (s *Service) FeaturedCarousel(ctx context.Context) Carousel {
	res, err := s.Source.Listings(ctx, baseQuery().Eq("isFeatured", "true"))
	if err != nil {
		log.Error().Err(err).Msg("featured carousel fetch failed")
		return Carousel{Listings: []domain.Listing{}, Failed: true}
	}
	listings := append([]domain.Listing(nil), res.Listings...)
	shuffle := s.Shuffle
	if shuffle == nil {
		shuffle = randomShuffle
	}
	shuffle(listings)
	if listings == nil {
		listings = []domain.Listing{}
	}
	return Carousel{Listings: listings}
}

func randomShuffle(ls []domain.Listing) {
	rand.Shuffle(len(ls), func(i, j int) { ls[i], ls[j] = ls[j], ls[i] })
}

// RentPage groups the newest rentals by type. Each group pages on its own;
// sections carries the page of every group.
func (s *Service) RentPage(ctx context.Context, sections pagination.Sections) RentPage {
	q := baseQuery().
		Eq("categoria.nombreCategoria", CategoryRent).
		Paginate(1, RentFetchLimit).
		Sort("createdAt:desc")
	res, err := s.Source.Listings(ctx, q)
	if err != nil {
		log.Error().Err(err).Msg("rent page fetch failed")
		return RentPage{Groups: []RentGroup{}, Failed: true}
	}

	groups := GroupByType(res.Listings)
	out := RentPage{Groups: make([]RentGroup, 0, len(groups))}
	for _, g := range groups {
		total := len(g.Listings)
		page := sections.Clamp(g.Name, total, RentSectionSize)
		out.Groups = append(out.Groups, RentGroup{
			Name:     g.Name,
			Heading:  format.Pluralize(g.Name),
			Total:    total,
			Page:     page,
			Pages:    pagination.TotalPages(total, RentSectionSize),
			Listings: pagination.Window(g.Listings, page, RentSectionSize),
			PrevHref: "/alquiler?" + sections.Prev(g.Name, total, RentSectionSize).Query(),
			NextHref: "/alquiler?" + sections.Next(g.Name, total, RentSectionSize).Query(),
		})
	}
	return out
}

// Group is the listings of one type.
type Group struct {
	Name     string
	Listings []domain.Listing
}

// GroupByType buckets listings by title-cased type ("Otros" when blank),
// keeping listing order inside a group and sorting groups by name the way
// Spanish readers expect (case and accents ignored).
func GroupByType(listings []domain.Listing) []Group {
	index := map[string]int{}
	var groups []Group
	for _, l := range listings {
		name := format.TitleCase(strings.TrimSpace(l.Type))
		if name == "" {
			name = OtherGroup
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Listings = append(groups[i].Listings, l)
	}
	coll := collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(groups, func(i, j int) bool {
		return coll.CompareString(groups[i].Name, groups[j].Name) < 0
	})
	return groups
}

// Search narrows the active catalog with c and builds the result map.
func (s *Service) Search(ctx context.Context, c filter.Criteria) SearchResult {
	view, err := s.Catalog.Listings(ctx)
	if err != nil && !errors.Is(err, catalog.ErrSuperseded) {
		log.Error().Err(err).Msg("search catalog unavailable")
	}
	matches := filter.Apply(view.Listings, c)
	return SearchResult{
		Criteria: c,
		Listings: matches,
		Facets:   filter.CollectFacets(view.Listings),
		Map:      mapview.Render(s.Map, s.Presets, matches, c.City),
		Total:    len(matches),
		Failed:   view.Failed,
		Stale:    view.Stale,
	}
}

// Detail assembles the page of the listing with the given slug.
func (s *Service) Detail(ctx context.Context, slug, pageURL string) (detail.Page, error) {
	slug = strings.TrimSpace(slug)
	if !validation.IsValidSlug(slug) {
		return detail.Page{}, ErrListingNotFound
	}
	q := contentapi.NewQuery().
		Eq("slug", slug).
		Populate("imagenes", "categoria", "ubicacion", "agente.fotoPrincipal")
	res, err := s.Source.Listings(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("listing detail fetch failed")
		if s.Snapshots != nil {
			if l, serr := s.Snapshots.BySlug(ctx, slug); serr == nil {
				return s.assemble(l, pageURL), nil
			}
		}
		return detail.Page{}, fmt.Errorf("load listing %q: %w", slug, err)
	}
	if len(res.Listings) == 0 {
		return detail.Page{}, ErrListingNotFound
	}
	return s.assemble(&res.Listings[0], pageURL), nil
}

func (s *Service) assemble(l *domain.Listing, pageURL string) detail.Page {
	return detail.Assemble(l, pageURL, detail.Options{MessagingBaseURL: s.MessagingBaseURL, Map: s.Map})
}
