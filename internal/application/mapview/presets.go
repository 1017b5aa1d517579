package mapview

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"porvenir-web/internal/domain"
)

// Preset is a named city viewport.
type Preset struct {
	Center domain.LngLat
	Zoom   float64
}

// Presets maps a city name to its viewport. Lookups ignore case.
type Presets map[string]Preset

// DefaultCenter and DefaultZoom frame the whole country before anything loads.
var (
	DefaultCenter = domain.LngLat{Lng: -64.99, Lat: -17.39}
	DefaultZoom   = 5.0
)

func DefaultPresets() Presets {
	return Presets{
		"La Paz":     {Center: domain.LngLat{Lng: -68.1193, Lat: -16.4897}, Zoom: 12},
		"Santa Cruz": {Center: domain.LngLat{Lng: -63.1812, Lat: -17.7833}, Zoom: 12},
		"Cochabamba": {Center: domain.LngLat{Lng: -66.1561, Lat: -17.3895}, Zoom: 12},
	}
}

func (p Presets) Lookup(city string) (Preset, bool) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Preset{}, false
	}
	if v, ok := p[city]; ok {
		return v, true
	}
	for name, v := range p {
		if strings.EqualFold(name, city) {
			return v, true
		}
	}
	return Preset{}, false
}

// Names lists the preset cities alphabetically.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type presetFile struct {
	Cities []struct {
		Name   string     `yaml:"name"`
		Center [2]float64 `yaml:"center"`
		Zoom   float64    `yaml:"zoom"`
	} `yaml:"cities"`
}

// ParsePresets decodes a presets document on top of the built-in cities.
//
//	cities:
//	  - name: Tarija
//	    center: [-64.7296, -21.5355]
//	    zoom: 13
func ParsePresets(data []byte) (Presets, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse city presets: %w", err)
	}
	out := DefaultPresets()
	for i, c := range f.Cities {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("parse city presets: entry %d has no name", i)
		}
		zoom := c.Zoom
		if zoom <= 0 {
			zoom = 12
		}
		out[name] = Preset{Center: domain.LngLat{Lng: c.Center[0], Lat: c.Center[1]}, Zoom: zoom}
	}
	return out, nil
}

// LoadPresets reads a presets file. An empty path yields the built-in cities.
func LoadPresets(path string) (Presets, error) {
	if path == "" {
		return DefaultPresets(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read city presets: %w", err)
	}
	return ParsePresets(data)
}
