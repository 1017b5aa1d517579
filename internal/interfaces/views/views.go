// Package views holds the site's HTML templates, static assets and the
// helpers and chrome every page is rendered with.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"porvenir-web/internal/application/mapview"
	"porvenir-web/internal/domain"
	"porvenir-web/internal/pkg/format"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded /static tree (map bootstrap, styles, icons).
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Layout wraps every full page. Pages are pulled in with {{embed}}.
const Layout = "layouts/main"

// New returns an engine over the embedded templates.
func New() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return NewFromFS(sub)
}

// NewFromFS reads every .html file under fsys. Templates are named by their
// path without the extension, e.g. "pages/home" or "partials/cards".
func NewFromFS(fsys fs.FS) *html.Engine {
	engine := html.NewFileSystem(http.FS(fsys), ".html")
	engine.AddFuncMap(Funcs())
	return engine
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"price":      format.Price,
		"priceLabel": mapview.PriceLabel,
		"number":     format.Number,
		"area": func(v float64) string {
			return format.Area(v, "m²")
		},
		"title":  format.TitleCase,
		"upper":  format.Upper,
		"plural": format.Pluralize,
		"cover": func(l domain.Listing) string {
			return l.Cover()
		},
		"chips": func(l domain.Listing) []mapview.Chip {
			return mapview.Chips(&l)
		},
		"href": func(l domain.Listing) string {
			return mapview.Href(&l)
		},
		"category": func(l domain.Listing) string {
			return l.CategoryName()
		},
		"img": func(i *domain.Image) string {
			return i.Best()
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"selected": func(a, b string) bool {
			return strings.EqualFold(a, b)
		},
	}
}
