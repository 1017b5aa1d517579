package detail

import (
	"net/url"
	"testing"

	"porvenir-web/internal/application/mapview"
	"porvenir-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func images(n int) []domain.Image {
	out := make([]domain.Image, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Image{URL: "https://cdn.test/" + string(rune('a'+i)) + ".jpg"})
	}
	return out
}

func sample() *domain.Listing {
	return &domain.Listing{
		ID:            7,
		Name:          "Casa Los Pinos",
		Slug:          "casa-los-pinos",
		Price:         120000,
		Address:       "Av. Las Américas 123",
		City:          "Tarija",
		Type:          "Casa",
		Bedrooms:      3,
		Bathrooms:     2,
		LandArea:      300,
		BuiltArea:     180.5,
		ParkingSpaces: 0,
		Category:      &domain.Category{Name: "en venta"},
		Location:      domain.LngLat{Lng: -64.73, Lat: -21.53},
		Images:        images(5),
		Description: domain.RichText{
			{Type: "heading", Level: 2, Children: []domain.Inline{{Text: "Ubicación"}, {Text: "privilegiada"}}},
			{Type: "paragraph", Children: []domain.Inline{{Text: "Amplia"}, {Text: "y luminosa."}}},
			{Type: "image"},
		},
		Agent: &domain.Agent{Name: "Ana", Role: "Asesora", Phone: "+591 777-12345", Email: "ana@test.bo"},
	}
}

func TestBuildGallery(t *testing.T) {
	g := BuildGallery(images(5))
	assert.Equal(t, "https://cdn.test/a.jpg", g.Primary)
	require.Len(t, g.Tiles, 3)
	assert.False(t, g.Tiles[0].ViewAll)
	assert.False(t, g.Tiles[1].ViewAll)
	assert.True(t, g.Tiles[2].ViewAll)
	assert.Equal(t, 3, g.Tiles[2].Index)
	assert.Len(t, g.Slides, 5)

	three := BuildGallery(images(3))
	require.Len(t, three.Tiles, 2)
	assert.False(t, three.Tiles[1].ViewAll)

	one := BuildGallery(images(1))
	assert.Empty(t, one.Tiles)

	none := BuildGallery(nil)
	assert.Equal(t, "", none.Primary)
	assert.Empty(t, none.Slides)
}

func TestBuildGallery_PrefersLargeRendition(t *testing.T) {
	g := BuildGallery([]domain.Image{{URL: "o.jpg", Formats: map[string]string{"large": "l.jpg"}}})
	assert.Equal(t, "l.jpg", g.Primary)
}

func TestFeatures_SkipZeroValues(t *testing.T) {
	l := sample()
	assert.Equal(t, []Feature{
		{Icon: "bed", Label: "3 Dorm"},
		{Icon: "bath", Label: "2 Baños"},
		{Icon: "ruler", Label: "300 m²"},
	}, Features(l))

	assert.Empty(t, Features(&domain.Listing{}))
}

func TestSpecs_OnlyNonEmpty(t *testing.T) {
	specs := Specs(sample())
	assert.Equal(t, []Fact{
		{Label: "Tipo", Value: "Casa"},
		{Label: "Categoría", Value: "En Venta"},
		{Label: "Construcción", Value: "180.5 m²"},
		{Label: "Terreno", Value: "300 m²"},
	}, specs)

	assert.Equal(t, []Fact{{Label: "Frente", Value: "12 m"}}, Specs(&domain.Listing{Frontage: 12}))
}

func TestRenderRichText(t *testing.T) {
	blocks := RenderRichText(sample().Description)
	assert.Equal(t, []Block{
		{Kind: "heading", Level: 2, Text: "Ubicación privilegiada"},
		{Kind: "paragraph", Text: "Amplia y luminosa."},
	}, blocks)
	assert.Empty(t, RenderRichText(nil))
}

func TestContactURL(t *testing.T) {
	link := ContactURL("", "+591 777-12345", "Casa Los Pinos", "https://porvenir.bo/inmueble/casa-los-pinos")
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/59177712345", u.Path)
	assert.Equal(t,
		"Hola, necesito más información sobre este inmueble:\nCasa Los Pinos\nhttps://porvenir.bo/inmueble/casa-los-pinos",
		u.Query().Get("text"))
	assert.NotContains(t, link, "+")

	assert.Equal(t, "", ContactURL("", "sin teléfono", "x", "y"))
}

func TestMessageURL_EscapesLikeEncodeURIComponent(t *testing.T) {
	assert.Equal(t,
		"https://wa.me/591777?text=Hola!%20(casa%20*nueva*)%20it's%20a~b%2Fc%3Fd%26e",
		MessageURL("https://wa.me/", "591777", "Hola! (casa *nueva*) it's a~b/c?d&e"))
}

func TestAssemble(t *testing.T) {
	p := Assemble(sample(), "https://porvenir.bo/inmueble/casa-los-pinos", Options{
		MessagingBaseURL: "https://msg.test/",
		Map:              mapview.SceneConfig{Token: "pk"},
	})

	assert.Equal(t, "Casa Los Pinos", p.Title)
	assert.Equal(t, "$120.000", p.Price)
	assert.Equal(t, "EN VENTA", p.Badge)
	require.NotNil(t, p.Agent)
	assert.Equal(t, "Ana", p.Agent.Name)
	assert.Equal(t, "ana@test.bo", p.Agent.Email)
	assert.Contains(t, p.ContactURL, "https://msg.test/59177712345?text=")
	assert.Equal(t, mapview.DetailZoom, p.Map.Zoom)
	assert.Equal(t, domain.LngLat{Lng: -64.73, Lat: -21.53}, p.Map.Center)
	assert.Len(t, p.Map.Markers, 1)
}

func TestAssemble_NoAgentNoContact(t *testing.T) {
	l := sample()
	l.Agent = nil
	p := Assemble(l, "u", Options{})
	assert.Nil(t, p.Agent)
	assert.Equal(t, "", p.ContactURL)

	l.Agent = &domain.Agent{Name: "Sin número", Email: "sin correo"}
	p = Assemble(l, "u", Options{})
	require.NotNil(t, p.Agent)
	assert.Equal(t, "", p.ContactURL)
	assert.Equal(t, "", p.Agent.Email)
}
