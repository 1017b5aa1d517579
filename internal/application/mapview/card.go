package mapview

import (
	"bytes"
	"html/template"
	"strconv"

	"porvenir-web/internal/domain"
	"porvenir-web/internal/pkg/format"
)

// Chip is one feature badge on a hover card.
type Chip struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Card is the hover card content for a listing.
type Card struct {
	Image    string `json:"image,omitempty"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Chips    []Chip `json:"chips,omitempty"`
	Price    string `json:"price"`
	Href     string `json:"href"`
}

// PriceLabel is the marker text: "$NK" from 1000 up, "$N USD" below.
func PriceLabel(price float64) string {
	return format.PriceAbbrev(price)
}

// Chips returns the feature badges whose value is positive, in display order.
func Chips(l *domain.Listing) []Chip {
	var chips []Chip
	if l.Bedrooms > 0 {
		chips = append(chips, Chip{Icon: "🛏", Label: strconv.Itoa(l.Bedrooms)})
	}
	if l.Bathrooms > 0 {
		chips = append(chips, Chip{Icon: "🛁", Label: strconv.Itoa(l.Bathrooms)})
	}
	if l.LandArea > 0 {
		chips = append(chips, Chip{Icon: "📐", Label: format.Area(l.LandArea, "m²")})
	}
	if l.ParkingSpaces > 0 {
		chips = append(chips, Chip{Icon: "🚗", Label: strconv.Itoa(l.ParkingSpaces)})
	}
	return chips
}

// Href is the detail page path of a listing.
func Href(l *domain.Listing) string {
	return "/inmueble/" + l.Slug
}

func NewCard(l *domain.Listing) Card {
	return Card{
		Image:    l.Cover(),
		Name:     l.Name,
		Location: l.Address + ", " + l.City,
		Chips:    Chips(l),
		Price:    format.Price(l.Price) + " USD",
		Href:     Href(l),
	}
}

var cardTmpl = template.Must(template.New("card").Parse(`<div class="popup-container">
{{- if .Image}}<img src="{{.Image}}" alt="{{.Name}}" class="popup-image" />{{end -}}
<div class="popup-body"><h3 class="popup-title">{{.Name}}</h3><p class="popup-address">{{.Location}}</p>
<div class="popup-features">{{range .Chips}}<span>{{.Icon}} {{.Label}}</span>{{end}}</div>
<p class="popup-price">{{.Price}}</p></div></div>`))

// HTML renders the card markup with every field escaped.
func (c Card) HTML() string {
	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, c); err != nil {
		return ""
	}
	return buf.String()
}
