package mapview

import (
	"sync"
	"time"

	"porvenir-web/internal/domain"
)

// Options tunes viewport moves.
type Options struct {
	Padding     int
	FlyDuration time.Duration
}

func (o Options) withDefaults() Options {
	if o.Padding <= 0 {
		o.Padding = 50
	}
	if o.FlyDuration <= 0 {
		o.FlyDuration = time.Second
	}
	return o
}

type refresh struct {
	listings []domain.Listing
	city     string
}

type entry struct {
	marker Handle
	popup  Handle
}

// Renderer owns every marker and popup it has put on a Surface. Create one
// per map and call Refresh whenever the listing collection or city changes.
type Renderer struct {
	surface Surface
	presets Presets
	opts    Options

	mu       sync.Mutex
	ready    bool
	closed   bool
	pending  *refresh
	registry []entry
}

// NewRenderer binds a renderer to surface. Nothing is drawn until the surface
// reports it has loaded.
func NewRenderer(surface Surface, presets Presets, opts Options) *Renderer {
	if presets == nil {
		presets = DefaultPresets()
	}
	r := &Renderer{surface: surface, presets: presets, opts: opts.withDefaults()}
	surface.OnLoad(r.onLoad)
	return r
}

func (r *Renderer) onLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.ready {
		return
	}
	r.ready = true
	if p := r.pending; p != nil {
		r.pending = nil
		r.render(p.listings, p.city)
	}
}

// Refresh replaces every marker with one per listing and moves the viewport.
// Before the surface has loaded only the latest call is kept and applied on load.
func (r *Renderer) Refresh(listings []domain.Listing, city string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if !r.ready {
		r.pending = &refresh{listings: listings, city: city}
		return
	}
	r.render(listings, city)
}

func (r *Renderer) render(listings []domain.Listing, city string) {
	r.clear()
	if len(listings) == 0 {
		return
	}

	if preset, ok := r.presets.Lookup(city); ok {
		r.surface.FlyTo(preset.Center, preset.Zoom, r.opts.FlyDuration)
	} else {
		points := make([]domain.LngLat, 0, len(listings))
		for i := range listings {
			points = append(points, listings[i].Location)
		}
		bounds, _ := BoundsOf(points)
		r.surface.FitBounds(bounds, r.opts.Padding)
	}

	for i := range listings {
		l := &listings[i]
		m := r.surface.AddMarker(Marker{Position: l.Location, Label: PriceLabel(l.Price), Href: Href(l)})
		p := r.surface.AddPopup(Popup{Marker: m, Position: l.Location, Card: NewCard(l)})
		r.registry = append(r.registry, entry{marker: m, popup: p})
	}
}

func (r *Renderer) clear() {
	for _, e := range r.registry {
		r.surface.Remove(e.popup)
		r.surface.Remove(e.marker)
	}
	r.registry = r.registry[:0]
}

// Markers returns how many markers the renderer currently owns.
func (r *Renderer) Markers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.registry)
}

// Ready reports whether the surface load event has fired.
func (r *Renderer) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// Close removes everything the renderer created. Later refreshes are ignored.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.clear()
	r.pending = nil
	r.closed = true
}
