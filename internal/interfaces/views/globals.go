package views

import (
	"time"

	"porvenir-web/internal/application/mapview"

	"github.com/gofiber/fiber/v2"
)

// Site is the chrome shared by every page: header, footer and contact links.
type Site struct {
	Name     string
	URL      string
	Phone    string
	Email    string
	WhatsApp string
	// MapScript is the tile provider's GL library; empty disables maps.
	MapScript string
	MapStyle  string
}

// DefaultSite carries the agency's public contact details.
func DefaultSite() Site {
	return Site{
		Name:      "Porvenir Bienes Raíces",
		Phone:     "+591 778 73534",
		Email:     "contacto@porvenir.com.bo",
		WhatsApp:  "59177873534",
		MapScript: "https://api.mapbox.com/mapbox-gl-js/v3.3.0/mapbox-gl.js",
		MapStyle:  "https://api.mapbox.com/mapbox-gl-js/v3.3.0/mapbox-gl.css",
	}
}

// NavItem is one header link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

var navigation = []NavItem{
	{Label: "Inicio", Href: "/"},
	{Label: "Compra", Href: "/compra"},
	{Label: "Alquiler", Href: "/alquiler"},
	{Label: "Destacados", Href: "/destacados/page/1"},
	{Label: "Búsqueda", Href: "/busqueda"},
	{Label: "Vender", Href: "/vender"},
	{Label: "Blog", Href: "/blog"},
	{Label: "Nosotros", Href: "/sobre-nosotros"},
}

// Nav marks the entry matching the current path as active.
func Nav(current string) []NavItem {
	out := make([]NavItem, len(navigation))
	for i, item := range navigation {
		item.Active = isUnder(current, item.Href)
		out[i] = item
	}
	return out
}

func isUnder(current, href string) bool {
	if href == "/" {
		return current == "/"
	}
	if href == "/destacados/page/1" {
		href = "/destacados"
	}
	return current == href || len(current) > len(href) && current[:len(href)+1] == href+"/"
}

// Globals exposes the site chrome to every view. The app must run with
// PassLocalsToViews so these locals merge into each page's fiber.Map.
func Globals(site Site) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("Site", site)
		c.Locals("Nav", Nav(c.Path()))
		c.Locals("Path", c.Path())
		c.Locals("Year", time.Now().Year())
		return c.Next()
	}
}

// MapEmbed places a map container on a page. Doc is replayed by
// /static/js/map.js; Endpoint, when set, lets the page re-query the map
// document as the search form changes.
type MapEmbed struct {
	ID       string
	Doc      mapview.Document
	Endpoint string
}
