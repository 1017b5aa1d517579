// Package mapview drives an interactive map of listings: one price marker and
// one hover card per listing plus a viewport move. The provider is hidden
// behind Surface so the same renderer can feed the browser bootstrap or a test.
package mapview

import (
	"math"
	"time"

	"porvenir-web/internal/domain"
)

// Handle identifies a marker or popup created on a Surface.
type Handle int

// Marker is a price pill placed at a listing's location.
type Marker struct {
	Position domain.LngLat `json:"position"`
	Label    string        `json:"label"`
	Href     string        `json:"href,omitempty"`
	Icon     string        `json:"icon,omitempty"`
}

// Popup is the hover card attached to a marker.
type Popup struct {
	Marker   Handle        `json:"-"`
	Position domain.LngLat `json:"position"`
	Card     Card          `json:"card"`
}

// Bounds is a lng/lat bounding box.
type Bounds struct {
	SouthWest domain.LngLat `json:"sw"`
	NorthEast domain.LngLat `json:"ne"`
}

// BoundsOf returns the smallest box holding every point, false when there are none.
func BoundsOf(points []domain.LngLat) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		b.SouthWest.Lng = math.Min(b.SouthWest.Lng, p.Lng)
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
		b.NorthEast.Lng = math.Max(b.NorthEast.Lng, p.Lng)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
	}
	return b, true
}

// Surface is the subset of a GL map the renderer needs.
type Surface interface {
	// OnLoad registers fn to run once the map is ready. Surfaces that are
	// already loaded run fn immediately.
	OnLoad(fn func())
	AddMarker(m Marker) Handle
	AddPopup(p Popup) Handle
	Remove(h Handle)
	FlyTo(center domain.LngLat, zoom float64, duration time.Duration)
	FitBounds(b Bounds, padding int)
}
