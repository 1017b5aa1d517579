// Package pages serves the static content pages.
package pages

import (
	"porvenir-web/internal/application/detail"
	"porvenir-web/internal/interfaces/views"
	"porvenir-web/internal/pkg/format"

	"github.com/gofiber/fiber/v2"
)

const (
	rentManagementMessage = "Hola, necesito ayuda con la gestión de alquileres."
	sellMessage           = "Hola, quiero vender mi inmueble."
)

type Handlers struct {
	// MessagingBaseURL is the outbound chat host, e.g. https://wa.me.
	MessagingBaseURL string
	// WhatsApp is the agency's number; any formatting is stripped.
	WhatsApp string
}

func (h *Handlers) contact(text string) string {
	digits := format.Digits(h.WhatsApp)
	if digits == "" {
		return ""
	}
	base := h.MessagingBaseURL
	if base == "" {
		base = detail.DefaultMessagingBaseURL
	}
	return detail.MessageURL(base, digits, text)
}

// Static returns a handler rendering pages/<name> with no dynamic data.
func Static(name, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("pages/"+name, fiber.Map{"Title": title}, views.Layout)
	}
}

// GET /vender
func (h *Handlers) Sell(c *fiber.Ctx) error {
	return c.Render("pages/sell", fiber.Map{
		"Title":      "Vende tu inmueble",
		"ContactURL": h.contact(sellMessage),
	}, views.Layout)
}

// GET /alquileres
func (h *Handlers) RentManagement(c *fiber.Ctx) error {
	return c.Render("pages/rent-management", fiber.Map{
		"Title":      "Gestión de alquileres",
		"ContactURL": h.contact(rentManagementMessage),
	}, views.Layout)
}
