package listings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"porvenir-web/internal/application/filter"
	listsvc "porvenir-web/internal/application/listings"
	"porvenir-web/internal/application/mapview"
	"porvenir-web/internal/application/pagination"
	"porvenir-web/internal/interfaces/views"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *listsvc.Service
	// SiteURL is the public origin used in share links; empty falls back to the request's.
	SiteURL string
}

// Option is one entry of a search select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// GET /
func (h *Handlers) Home(c *fiber.Ctx) error {
	return c.Render("pages/home", fiber.Map{
		"Carousel": h.Service.FeaturedCarousel(c.UserContext()),
		"Cities":   h.Service.Presets.Names(),
	}, views.Layout)
}

// GET /compra/page/:page
func (h *Handlers) Sale(c *fiber.Ctx) error {
	page := h.Service.SalePage(c.UserContext(), pagination.ParsePage(c.Params("page")))
	if outOfRange(page) {
		return fiber.ErrNotFound
	}
	return c.Render("pages/listings", fiber.Map{
		"Title":   pageTitle("Inmuebles en venta", page),
		"Heading": "Inmuebles en venta",
		"Intro":   "Casas, departamentos, terrenos y locales disponibles para la compra.",
		"Page":    page,
	}, views.Layout)
}

// GET /destacados/page/:page
func (h *Handlers) Featured(c *fiber.Ctx) error {
	page := h.Service.FeaturedPage(c.UserContext(), pagination.ParsePage(c.Params("page")))
	if outOfRange(page) {
		return fiber.ErrNotFound
	}
	return c.Render("pages/listings", fiber.Map{
		"Title":   pageTitle("Inmuebles destacados", page),
		"Heading": "Inmuebles destacados",
		"Page":    page,
	}, views.Layout)
}

func pageTitle(heading string, p listsvc.RoutePage) string {
	return fmt.Sprintf("%s · Página %d", heading, p.Route.Page)
}

// outOfRange is a page number past the end of a non-empty catalog.
func outOfRange(p listsvc.RoutePage) bool {
	return !p.Failed && p.Route.Total > 0 && p.Route.Page > p.Route.TotalPages()
}

// GET /alquiler
func (h *Handlers) Rent(c *fiber.Ctx) error {
	sections := pagination.ParseSections(queryValues(c))
	return c.Render("pages/rent", fiber.Map{
		"Title": "Alquileres",
		"Rent":  h.Service.RentPage(c.UserContext(), sections),
	}, views.Layout)
}

// GET /busqueda
func (h *Handlers) Search(c *fiber.Ctx) error {
	criteria := filter.ParseCriteria(queryValues(c))
	result := h.Service.Search(c.UserContext(), criteria)
	return c.Render("pages/search", fiber.Map{
		"Title":      "Búsqueda de inmuebles",
		"Result":     result,
		"Rooms":      countOptions(criteria.Rooms, "Dormitorios"),
		"Baths":      countOptions(criteria.Bathrooms, "Baños"),
		"Types":      facetOptions(result.Facets.Types, criteria.Type, "Todos los tipos"),
		"Categories": facetOptions(result.Facets.Categories, criteria.Category, "Todas las categorías"),
		"Cities":     facetOptions(mergeCities(result.Facets.Cities, h.Service.Presets), criteria.City, "Todas las ciudades"),
		"Map":        views.MapEmbed{ID: "search-map", Doc: result.Map, Endpoint: "/api/v1/map/search"},
	}, views.Layout)
}

// GET /inmueble/:slug
func (h *Handlers) Detail(c *fiber.Ctx) error {
	page, err := h.Service.Detail(c.UserContext(), c.Params("slug"), h.pageURL(c))
	if errors.Is(err, listsvc.ErrListingNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return c.Render("pages/detail", fiber.Map{
		"Title":       page.Title,
		"Detail":      page,
		"Description": page.Title + " en " + page.City,
		"Map":         views.MapEmbed{ID: "detail-map", Doc: page.Map},
	}, views.Layout)
}

func (h *Handlers) pageURL(c *fiber.Ctx) string {
	base := strings.TrimRight(h.SiteURL, "/")
	if base == "" {
		base = c.BaseURL()
	}
	return base + c.Path()
}

func countOptions(selected filter.Count, label string) []Option {
	opts := []Option{{Value: "", Label: label, Selected: selected == filter.AnyCount}}
	for n := filter.Count(1); n < filter.FivePlus; n++ {
		opts = append(opts, Option{Value: strconv.Itoa(int(n)), Label: strconv.Itoa(int(n)), Selected: selected == n})
	}
	return append(opts, Option{Value: "5", Label: "5+", Selected: selected == filter.FivePlus})
}

func facetOptions(values []string, selected, anyLabel string) []Option {
	opts := make([]Option, 0, len(values)+1)
	opts = append(opts, Option{Value: "", Label: anyLabel, Selected: selected == ""})
	for _, v := range values {
		opts = append(opts, Option{Value: v, Label: v, Selected: strings.EqualFold(v, selected)})
	}
	return opts
}

// mergeCities appends preset cities missing from the catalog so they can
// still be chosen to move the map.
func mergeCities(cities []string, presets mapview.Presets) []string {
	out := append([]string(nil), cities...)
	for _, name := range presets.Names() {
		found := false
		for _, c := range cities {
			if strings.EqualFold(c, name) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, name)
		}
	}
	return out
}
