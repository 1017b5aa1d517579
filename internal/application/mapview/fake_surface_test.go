package mapview

import (
	"time"

	"porvenir-web/internal/domain"
)

// fakeSurface defers its load event until fire is called and counts live objects.
type fakeSurface struct {
	loaded  bool
	onLoad  []func()
	next    Handle
	live    map[Handle]string
	flies   []domain.LngLat
	fits    []Bounds
	padding int
	flyDur  time.Duration
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{live: map[Handle]string{}}
}

func (f *fakeSurface) fire() {
	f.loaded = true
	for _, fn := range f.onLoad {
		fn()
	}
	f.onLoad = nil
}

func (f *fakeSurface) OnLoad(fn func()) {
	if f.loaded {
		fn()
		return
	}
	f.onLoad = append(f.onLoad, fn)
}

func (f *fakeSurface) add(kind string) Handle {
	if !f.loaded {
		panic("mapview: " + kind + " added before load")
	}
	f.next++
	f.live[f.next] = kind
	return f.next
}

func (f *fakeSurface) AddMarker(Marker) Handle { return f.add("marker") }
func (f *fakeSurface) AddPopup(Popup) Handle   { return f.add("popup") }
func (f *fakeSurface) Remove(h Handle)         { delete(f.live, h) }

func (f *fakeSurface) FlyTo(c domain.LngLat, _ float64, d time.Duration) {
	f.flies = append(f.flies, c)
	f.flyDur = d
}

func (f *fakeSurface) FitBounds(b Bounds, padding int) {
	f.fits = append(f.fits, b)
	f.padding = padding
}

func (f *fakeSurface) count(kind string) int {
	n := 0
	for _, k := range f.live {
		if k == kind {
			n++
		}
	}
	return n
}
