package domain

import (
	"time"
)

// LngLat is a geographic coordinate in the provider's [lng, lat] order.
type LngLat struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// IsZero reports whether the coordinate was never set.
func (p LngLat) IsZero() bool {
	return p.Lng == 0 && p.Lat == 0
}

// Pair returns the coordinate as the [lng, lat] array map libraries expect.
func (p LngLat) Pair() [2]float64 {
	return [2]float64{p.Lng, p.Lat}
}

// Image is a media reference with optional pre-rendered size variants.
type Image struct {
	URL     string            `json:"url"`
	Formats map[string]string `json:"formats,omitempty"`
}

// Best returns the large rendition when present, then the canonical URL, then "".
func (i *Image) Best() string {
	if i == nil {
		return ""
	}
	if u := i.Formats["large"]; u != "" {
		return u
	}
	return i.URL
}

// Category is the listing's commercial category ("En Venta", "En alquiler").
type Category struct {
	Name string `json:"name"`
}

// Agent is the contact person attached to a listing or blog post.
type Agent struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Photo *Image `json:"photo,omitempty"`
}

// Listing is a single real-estate property as read from the content API.
// Numeric fields are always present; a missing value decodes as zero.
type Listing struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Price         float64   `json:"price"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Type          string    `json:"type"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	LandArea      float64   `json:"land_area"`
	BuiltArea     float64   `json:"built_area"`
	Frontage      float64   `json:"frontage"`
	ParkingSpaces int       `json:"parking_spaces"`
	Featured      bool      `json:"featured"`
	Active        bool      `json:"active"`
	Category      *Category `json:"category,omitempty"`
	Location      LngLat    `json:"location"`
	Images        []Image   `json:"images"`
	Description   RichText  `json:"description,omitempty"`
	Agent         *Agent    `json:"agent,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CategoryName returns the category label or "" when the listing has none.
func (l *Listing) CategoryName() string {
	if l.Category == nil {
		return ""
	}
	return l.Category.Name
}

// Cover returns the best rendition of the first image, or "".
func (l *Listing) Cover() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0].Best()
}
