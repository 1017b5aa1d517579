package mapview

import (
	"os"
	"path/filepath"
	"testing"

	"porvenir-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPresets(t *testing.T) {
	p := DefaultPresets()
	lp, ok := p.Lookup("la paz")
	require.True(t, ok)
	assert.Equal(t, domain.LngLat{Lng: -68.1193, Lat: -16.4897}, lp.Center)
	assert.Equal(t, 12.0, lp.Zoom)

	_, ok = p.Lookup("")
	assert.False(t, ok)
	_, ok = p.Lookup("Tarija")
	assert.False(t, ok)

	assert.Equal(t, []string{"Cochabamba", "La Paz", "Santa Cruz"}, p.Names())
}

func TestLoadPresets_MergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.yaml")
	doc := "cities:\n  - name: Tarija\n    center: [-64.7296, -21.5355]\n    zoom: 13\n  - name: La Paz\n    center: [-68.1, -16.5]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	p, err := LoadPresets(path)
	require.NoError(t, err)
	tj, ok := p.Lookup("Tarija")
	require.True(t, ok)
	assert.Equal(t, 13.0, tj.Zoom)
	assert.Equal(t, domain.LngLat{Lng: -64.7296, Lat: -21.5355}, tj.Center)

	lp, _ := p.Lookup("La Paz")
	assert.Equal(t, 12.0, lp.Zoom)
	assert.Equal(t, -68.1, lp.Center.Lng)
	_, ok = p.Lookup("Cochabamba")
	assert.True(t, ok)
}

func TestParsePresets_Errors(t *testing.T) {
	_, err := ParsePresets([]byte("cities: [{center: [1, 2]}]"))
	assert.Error(t, err)
	_, err = ParsePresets([]byte("cities: [unclosed"))
	assert.Error(t, err)
	_, err = LoadPresets(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	p, err := LoadPresets("")
	require.NoError(t, err)
	assert.Len(t, p, 3)
}
