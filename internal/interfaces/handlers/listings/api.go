package listings

import (
	"errors"
	"net/url"

	"porvenir-web/internal/application/filter"
	listsvc "porvenir-web/internal/application/listings"
	"porvenir-web/internal/domain"
	"porvenir-web/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// genParam is the client's request stamp. It is echoed in metadata so the
// browser can drop responses to requests it has already superseded.
const genParam = "gen"

type searchData struct {
	Criteria url.Values       `json:"criteria"`
	Total    int              `json:"total"`
	Listings []domain.Listing `json:"listings"`
	Facets   filter.Facets    `json:"facets"`
	Map      interface{}      `json:"map"`
	Stale    bool             `json:"stale"`
}

func queryValues(c *fiber.Ctx) url.Values {
	v, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return v
}

func meta(c *fiber.Ctx) fiber.Map {
	return fiber.Map{genParam: c.Query(genParam)}
}

// GET /api/v1/listings/search
func (h *Handlers) SearchJSON(c *fiber.Ctx) error {
	criteria := filter.ParseCriteria(queryValues(c))
	result := h.Service.Search(c.UserContext(), criteria)
	if result.Failed {
		return response.Error(c, "Listings are unavailable", fiber.StatusServiceUnavailable, meta(c))
	}
	return response.Success(c, "Listings fetched successfully", searchData{
		Criteria: criteria.Values(),
		Total:    result.Total,
		Listings: result.Listings,
		Facets:   result.Facets,
		Map:      result.Map,
		Stale:    result.Stale,
	}, meta(c))
}

// GET /api/v1/map/search
func (h *Handlers) MapJSON(c *fiber.Ctx) error {
	criteria := filter.ParseCriteria(queryValues(c))
	result := h.Service.Search(c.UserContext(), criteria)
	if result.Failed {
		return response.Error(c, "Listings are unavailable", fiber.StatusServiceUnavailable, meta(c))
	}
	m := meta(c)
	m["total"] = result.Total
	m["stale"] = result.Stale
	return response.Success(c, "Map fetched successfully", result.Map, m)
}

// GET /api/v1/listings/:slug
func (h *Handlers) DetailJSON(c *fiber.Ctx) error {
	page, err := h.Service.Detail(c.UserContext(), c.Params("slug"), h.detailURL(c))
	if errors.Is(err, listsvc.ErrListingNotFound) {
		return response.Error(c, "Listing not found", fiber.StatusNotFound, nil)
	}
	if err != nil {
		return response.Error(c, "Listing is unavailable", fiber.StatusServiceUnavailable, nil)
	}
	return response.Success(c, "Listing fetched successfully", page, nil)
}

// detailURL is the public page of the listing, not the API path serving it.
func (h *Handlers) detailURL(c *fiber.Ctx) string {
	base := h.SiteURL
	if base == "" {
		base = c.BaseURL()
	}
	u, err := url.JoinPath(base, "inmueble", c.Params("slug"))
	if err != nil {
		return base + "/inmueble/" + c.Params("slug")
	}
	return u
}
