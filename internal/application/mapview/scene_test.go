package mapview

import (
	"encoding/json"
	"testing"

	"porvenir-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_DocumentForFitBounds(t *testing.T) {
	doc := Render(SceneConfig{Token: "pk.test"}, nil, listingsAt(3), "")

	assert.Equal(t, StyleLight, doc.Style)
	assert.Equal(t, "pk.test", doc.Token)
	assert.Equal(t, DefaultCenter, doc.Center)
	assert.Equal(t, DefaultZoom, doc.Zoom)
	require.NotNil(t, doc.Viewport)
	assert.Equal(t, "fit", doc.Viewport.Kind)
	assert.Equal(t, 50, doc.Viewport.Padding)
	require.Len(t, doc.Markers, 3)
	assert.Equal(t, "$50K", doc.Markers[0].Label)
	assert.Equal(t, "/inmueble/casa-1", doc.Markers[0].Href)
	require.NotNil(t, doc.Markers[0].Card)
	assert.Contains(t, doc.Markers[0].PopupHTML, "Casa 1")
}

func TestRender_EmptyHasNoViewportButValidJSON(t *testing.T) {
	doc := Render(SceneConfig{}, nil, nil, "La Paz")
	assert.Nil(t, doc.Viewport)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"markers":[]`)
}

func TestRender_PresetFly(t *testing.T) {
	doc := Render(SceneConfig{Style: StyleDark}, nil, listingsAt(1), "Cochabamba")
	require.NotNil(t, doc.Viewport)
	assert.Equal(t, "fly", doc.Viewport.Kind)
	assert.Equal(t, int64(1000), doc.Viewport.DurationMS)
	assert.Equal(t, 12.0, doc.Viewport.Zoom)
	assert.Equal(t, StyleDark, doc.Style)
}

func TestScene_RemoveDropsMarkerAndCard(t *testing.T) {
	s := NewScene(SceneConfig{})
	m := s.AddMarker(Marker{Label: "$1K"})
	p := s.AddPopup(Popup{Marker: m, Card: Card{Name: "x"}})
	s.Remove(p)
	s.Remove(m)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Empty(t, doc.Markers)
}

func TestDetailScene(t *testing.T) {
	l := &domain.Listing{Location: domain.LngLat{Lng: -64.73, Lat: -21.53}}
	doc := DetailScene(SceneConfig{}, l)
	assert.Equal(t, l.Location, doc.Center)
	assert.Equal(t, DetailZoom, doc.Zoom)
	assert.Nil(t, doc.Viewport)
	require.Len(t, doc.Markers, 1)
	assert.Nil(t, doc.Markers[0].Card)
}
