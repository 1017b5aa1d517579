package pages

import (
	"net/http/httptest"
	"testing"

	"porvenir-web/internal/interfaces/views"
	"porvenir-web/internal/middleware"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:             views.New(),
		PassLocalsToViews: true,
		ErrorHandler:      middleware.ErrorHandler,
	})
	app.Use(views.Globals(views.DefaultSite()))
	app.Get("/sobre-nosotros", Static("about", "Sobre nosotros"))
	app.Get("/guia-comprador", Static("buyer-guide", "Guía del comprador"))
	app.Get("/missing", Static("does-not-exist", ""))
	app.Get("/vender", h.Sell)
	app.Get("/alquileres", h.RentManagement)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, *goquery.Document) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, doc
}

func TestStaticPages(t *testing.T) {
	app := newTestApp(&Handlers{})
	status, doc := get(t, app, "/sobre-nosotros")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, doc.Find(".static-page.about").Length())
	assert.Equal(t, "Nosotros", doc.Find(".site-header nav a.active").Text())

	status, _ = get(t, app, "/guia-comprador")
	assert.Equal(t, fiber.StatusOK, status)

	status, doc = get(t, app, "/missing")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "500", doc.Find(".error-code").Text())
}

func TestSell_ContactLink(t *testing.T) {
	app := newTestApp(&Handlers{MessagingBaseURL: "https://wa.me/", WhatsApp: "+591 778-73534"})
	_, doc := get(t, app, "/vender")
	assert.Equal(t, "https://wa.me/59177873534?text=Hola%2C%20quiero%20vender%20mi%20inmueble.",
		doc.Find(".sell .btn-whatsapp").AttrOr("href", ""))
}

func TestRentManagement_ContactLink(t *testing.T) {
	_, doc := get(t, newTestApp(&Handlers{WhatsApp: "59177873534"}), "/alquileres")
	href := doc.Find("#rent-contact").AttrOr("href", "")
	assert.Contains(t, href, "https://wa.me/59177873534?text=")
	assert.Contains(t, href, "gesti%C3%B3n%20de%20alquileres")

	_, doc = get(t, newTestApp(&Handlers{}), "/alquileres")
	assert.Equal(t, 0, doc.Find("#rent-contact").Length())
}
