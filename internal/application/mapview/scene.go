package mapview

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"porvenir-web/internal/domain"
)

// Map styles served by the tile provider.
const (
	StyleLight = "mapbox://styles/mapbox/light-v11"
	StyleDark  = "mapbox://styles/mapbox/dark-v11"
)

// SceneConfig is what the browser needs to create the map itself.
type SceneConfig struct {
	Style string
	Token string
}

// Viewport is the single camera move a scene asks for.
type Viewport struct {
	Kind       string         `json:"kind"` // "fly" or "fit"
	Center     *domain.LngLat `json:"center,omitempty"`
	Zoom       float64        `json:"zoom,omitempty"`
	DurationMS int64          `json:"duration_ms,omitempty"`
	Bounds     *Bounds        `json:"bounds,omitempty"`
	Padding    int            `json:"padding,omitempty"`
}

// SceneMarker is a marker together with its hover card.
type SceneMarker struct {
	Marker
	Card      *Card  `json:"card,omitempty"`
	PopupHTML string `json:"popup_html,omitempty"`
}

// Document is the JSON replayed by the browser bootstrap.
type Document struct {
	Style    string        `json:"style"`
	Token    string        `json:"token,omitempty"`
	Center   domain.LngLat `json:"center"`
	Zoom     float64       `json:"zoom"`
	Viewport *Viewport     `json:"viewport,omitempty"`
	Markers  []SceneMarker `json:"markers"`
}

// Scene is a Surface that records the resulting map state instead of drawing it.
// It counts as loaded from the start.
type Scene struct {
	cfg SceneConfig

	mu       sync.Mutex
	next     Handle
	center   domain.LngLat
	zoom     float64
	viewport *Viewport
	markers  map[Handle]Marker
	popups   map[Handle]Popup
}

func NewScene(cfg SceneConfig) *Scene {
	if cfg.Style == "" {
		cfg.Style = StyleLight
	}
	return &Scene{
		cfg:     cfg,
		center:  DefaultCenter,
		zoom:    DefaultZoom,
		markers: map[Handle]Marker{},
		popups:  map[Handle]Popup{},
	}
}

func (s *Scene) OnLoad(fn func()) { fn() }

func (s *Scene) AddMarker(m Marker) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.markers[s.next] = m
	return s.next
}

func (s *Scene) AddPopup(p Popup) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.popups[s.next] = p
	return s.next
}

func (s *Scene) Remove(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, h)
	delete(s.popups, h)
}

func (s *Scene) FlyTo(center domain.LngLat, zoom float64, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := center
	s.viewport = &Viewport{Kind: "fly", Center: &c, Zoom: zoom, DurationMS: duration.Milliseconds()}
}

func (s *Scene) FitBounds(b Bounds, padding int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bb := b
	s.viewport = &Viewport{Kind: "fit", Bounds: &bb, Padding: padding}
}

// Center sets the initial camera, before any viewport move.
func (s *Scene) Center(center domain.LngLat, zoom float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = center
	s.zoom = zoom
}

// Document snapshots the scene with markers in creation order.
func (s *Scene) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := make(map[Handle]Card, len(s.popups))
	for _, p := range s.popups {
		cards[p.Marker] = p.Card
	}
	handles := make([]Handle, 0, len(s.markers))
	for h := range s.markers {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	markers := make([]SceneMarker, 0, len(handles))
	for _, h := range handles {
		sm := SceneMarker{Marker: s.markers[h]}
		if c, ok := cards[h]; ok {
			sm.Card = &c
			sm.PopupHTML = c.HTML()
		}
		markers = append(markers, sm)
	}

	var vp *Viewport
	if s.viewport != nil {
		v := *s.viewport
		vp = &v
	}
	return Document{
		Style:    s.cfg.Style,
		Token:    s.cfg.Token,
		Center:   s.center,
		Zoom:     s.zoom,
		Viewport: vp,
		Markers:  markers,
	}
}

// MarshalJSON encodes the current Document.
func (s *Scene) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Document())
}

// Render runs a one-shot renderer over a fresh scene and returns its document.
func Render(cfg SceneConfig, presets Presets, listings []domain.Listing, city string) Document {
	scene := NewScene(cfg)
	NewRenderer(scene, presets, Options{}).Refresh(listings, city)
	return scene.Document()
}

// DetailZoom frames a single listing on its detail page.
const DetailZoom = 14.0

// DetailScene centers the map on one listing with a single pin and no hover card.
func DetailScene(cfg SceneConfig, l *domain.Listing) Document {
	scene := NewScene(cfg)
	scene.Center(l.Location, DetailZoom)
	scene.AddMarker(Marker{Position: l.Location, Icon: "/static/icons/marker.svg"})
	return scene.Document()
}
