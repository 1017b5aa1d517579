// Package detail turns one listing into everything its detail page shows.
package detail

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"porvenir-web/internal/application/mapview"
	"porvenir-web/internal/domain"
	"porvenir-web/internal/pkg/format"
	"porvenir-web/internal/pkg/validation"
)

const (
	DefaultMessagingBaseURL = "https://wa.me"
	contactTemplate         = "Hola, necesito más información sobre este inmueble:\n%s\n%s"
	maxTiles                = 3
)

// Options carries deployment settings that do not come from the listing itself.
type Options struct {
	MessagingBaseURL string
	Map              mapview.SceneConfig
}

// Tile is one gallery thumbnail. Index points into Gallery.Slides so the
// lightbox can open on it.
type Tile struct {
	URL     string `json:"url"`
	Index   int    `json:"index"`
	ViewAll bool   `json:"view_all,omitempty"`
}

type Gallery struct {
	Primary string   `json:"primary"`
	Tiles   []Tile   `json:"tiles"`
	Slides  []string `json:"slides"`
}

// Feature is an icon row entry such as "3 Dorm".
type Feature struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Fact is one labelled row of the property sheet.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Block is a rendered description block: Kind is "paragraph" or "heading".
type Block struct {
	Kind  string `json:"kind"`
	Level int    `json:"level,omitempty"`
	Text  string `json:"text"`
}

type AgentCard struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// Page is the assembled detail view.
type Page struct {
	ID          int              `json:"id"`
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Address     string           `json:"address"`
	City        string           `json:"city"`
	Price       string           `json:"price"`
	Badge       string           `json:"badge,omitempty"`
	URL         string           `json:"url"`
	Gallery     Gallery          `json:"gallery"`
	Features    []Feature        `json:"features"`
	Specs       []Fact           `json:"specs"`
	Description []Block          `json:"description"`
	Agent       *AgentCard       `json:"agent,omitempty"`
	ContactURL  string           `json:"contact_url,omitempty"`
	Map         mapview.Document `json:"map"`
}

// Assemble builds the detail page of l as seen at pageURL.
func Assemble(l *domain.Listing, pageURL string, opts Options) Page {
	p := Page{
		ID:          l.ID,
		Slug:        l.Slug,
		Title:       l.Name,
		Address:     l.Address,
		City:        l.City,
		Price:       format.Price(l.Price),
		Badge:       format.Upper(l.CategoryName()),
		URL:         pageURL,
		Gallery:     BuildGallery(l.Images),
		Features:    Features(l),
		Specs:       Specs(l),
		Description: RenderRichText(l.Description),
		Map:         mapview.DetailScene(opts.Map, l),
	}
	if a := l.Agent; a != nil {
		p.Agent = &AgentCard{Name: a.Name, Role: a.Role, Phone: a.Phone, Photo: a.Photo.Best()}
		if validation.IsValidEmail(a.Email) {
			p.Agent.Email = a.Email
		}
		p.ContactURL = ContactURL(opts.MessagingBaseURL, a.Phone, l.Name, pageURL)
	}
	return p
}

// BuildGallery keeps image order: the first image is primary, the next ones
// become tiles, and when more images exist than fit the last tile opens the
// full set instead.
func BuildGallery(images []domain.Image) Gallery {
	g := Gallery{Slides: make([]string, 0, len(images)), Tiles: []Tile{}}
	for i := range images {
		g.Slides = append(g.Slides, images[i].Best())
	}
	if len(g.Slides) == 0 {
		return g
	}
	g.Primary = g.Slides[0]
	for i := 1; i < len(g.Slides) && i <= maxTiles; i++ {
		g.Tiles = append(g.Tiles, Tile{URL: g.Slides[i], Index: i})
	}
	if len(g.Slides) > maxTiles {
		g.Tiles[len(g.Tiles)-1].ViewAll = true
	}
	return g
}

func Features(l *domain.Listing) []Feature {
	out := []Feature{}
	if l.Bedrooms > 0 {
		out = append(out, Feature{Icon: "bed", Label: strconv.Itoa(l.Bedrooms) + " Dorm"})
	}
	if l.Bathrooms > 0 {
		out = append(out, Feature{Icon: "bath", Label: strconv.Itoa(l.Bathrooms) + " Baños"})
	}
	if l.LandArea > 0 {
		out = append(out, Feature{Icon: "ruler", Label: format.Area(l.LandArea, "m²")})
	}
	if l.ParkingSpaces > 0 {
		out = append(out, Feature{Icon: "car", Label: strconv.Itoa(l.ParkingSpaces) + " Parqueos"})
	}
	return out
}

func Specs(l *domain.Listing) []Fact {
	candidates := []Fact{
		{Label: "Tipo", Value: strings.TrimSpace(l.Type)},
		{Label: "Categoría", Value: format.TitleCase(l.CategoryName())},
		{Label: "Construcción", Value: area(l.BuiltArea, "m²")},
		{Label: "Terreno", Value: area(l.LandArea, "m²")},
		{Label: "Frente", Value: area(l.Frontage, "m")},
	}
	out := make([]Fact, 0, len(candidates))
	for _, f := range candidates {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

func area(v float64, unit string) string {
	if v <= 0 {
		return ""
	}
	return format.Area(v, unit)
}

// RenderRichText keeps paragraph and heading blocks, joining their inline
// text with single spaces. Other block kinds are dropped.
func RenderRichText(rt domain.RichText) []Block {
	out := []Block{}
	for _, b := range rt {
		if b.Type != domain.BlockParagraph && b.Type != domain.BlockHeading {
			continue
		}
		parts := make([]string, 0, len(b.Children))
		for _, c := range b.Children {
			parts = append(parts, c.Text)
		}
		out = append(out, Block{Kind: b.Type, Level: b.Level, Text: strings.Join(parts, " ")})
	}
	return out
}

// ContactURL builds the outbound messaging link, or "" when phone has no digits.
func ContactURL(base, phone, name, pageURL string) string {
	digits := format.Digits(phone)
	if digits == "" {
		return ""
	}
	if base == "" {
		base = DefaultMessagingBaseURL
	}
	return MessageURL(base, digits, fmt.Sprintf(contactTemplate, name, pageURL))
}

// componentUnescaper undoes the QueryEscape escapes encodeURIComponent leaves literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*",
)

// MessageURL is base/<digits>?text=<text>, with the text escaped the way
// browsers' encodeURIComponent does.
func MessageURL(base, digits, text string) string {
	escaped := componentUnescaper.Replace(url.QueryEscape(text))
	return strings.TrimRight(base, "/") + "/" + digits + "?text=" + escaped
}
