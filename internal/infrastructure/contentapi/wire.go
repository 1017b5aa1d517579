package contentapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"porvenir-web/internal/domain"
)

// Collection responses look like {data:[{id, attributes}], meta:{pagination:{total}}}.
type envelope[T any] struct {
	Data []entity[T] `json:"data"`
	Meta struct {
		Pagination struct {
			Page     int `json:"page"`
			PageSize int `json:"pageSize"`
			Total    int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

type entity[T any] struct {
	ID         int `json:"id"`
	Attributes T   `json:"attributes"`
}

type one[T any] struct {
	Data *entity[T] `json:"data"`
}

type many[T any] struct {
	Data []entity[T] `json:"data"`
}

type mediaAttrs struct {
	URL string `json:"url"`
	Formats map[string]struct {
		URL string `json:"url"`
	} `json:"formats"`
}

type categoryAttrs struct {
	NombreCategoria string `json:"nombreCategoria"`
}

type agentAttrs struct {
	AgentName     string          `json:"agentName"`
	Nombre        string          `json:"nombre"`
	Cargo         string          `json:"cargo"`
	Telefono      looseString     `json:"telefono"`
	Correo        string          `json:"correo"`
	FotoPrincipal one[mediaAttrs] `json:"fotoPrincipal"`
}

type locationAttrs struct {
	Center []float64 `json:"center"`
}

type listingAttrs struct {
	InmuebleName     string             `json:"inmuebleName"`
	Slug             string             `json:"slug"`
	Precio           float64            `json:"precio"`
	Direccion        string             `json:"Direccion"`
	Ciudad           string             `json:"ciudad"`
	Tipo             string             `json:"tipo"`
	Dormitorios      float64            `json:"dormitorios"`
	Banos            float64            `json:"banos"`
	Terreno          float64            `json:"terreno"`
	Construccion     float64            `json:"construccion"`
	Frente           float64            `json:"frente"`
	Estacionamientos float64            `json:"estacionamientos"`
	IsFeatured       bool               `json:"isFeatured"`
	Active           bool               `json:"active"`
	Categoria        one[categoryAttrs] `json:"categoria"`
	Ubicacion        *locationAttrs     `json:"ubicacion"`
	Imagenes         many[mediaAttrs]   `json:"imagenes"`
	Descripcion      domain.RichText    `json:"descripcion"`
	Agente           one[agentAttrs]    `json:"agente"`
	CreatedAt        time.Time          `json:"createdAt"`
}

type blogAttrs struct {
	Titulo    string          `json:"titulo"`
	Slug      string          `json:"slug"`
	Portada   one[mediaAttrs] `json:"portada"`
	Contenido domain.RichText `json:"contenido"`
	Active    bool            `json:"active"`
	Agente    one[agentAttrs] `json:"agente"`
	CreatedAt time.Time       `json:"createdAt"`
}

// looseString accepts a JSON string or number; phone numbers arrive as either.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

// decoder turns wire entities into domain values, resolving media URLs
// against the API origin.
type decoder struct {
	origin string
}

func (d decoder) url(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "//") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return d.origin + u
}

func (d decoder) image(e *entity[mediaAttrs]) *domain.Image {
	if e == nil {
		return nil
	}
	img := &domain.Image{URL: d.url(e.Attributes.URL)}
	for name, f := range e.Attributes.Formats {
		if f.URL == "" {
			continue
		}
		if img.Formats == nil {
			img.Formats = map[string]string{}
		}
		img.Formats[name] = d.url(f.URL)
	}
	return img
}

func (d decoder) agent(e *entity[agentAttrs]) *domain.Agent {
	if e == nil {
		return nil
	}
	a := e.Attributes
	name := a.AgentName
	if name == "" {
		name = a.Nombre
	}
	return &domain.Agent{
		Name:  name,
		Role:  a.Cargo,
		Phone: string(a.Telefono),
		Email: a.Correo,
		Photo: d.image(a.FotoPrincipal.Data),
	}
}

func (d decoder) listing(e entity[listingAttrs]) domain.Listing {
	a := e.Attributes
	l := domain.Listing{
		ID:            e.ID,
		Name:          a.InmuebleName,
		Slug:          a.Slug,
		Price:         a.Precio,
		Address:       a.Direccion,
		City:          a.Ciudad,
		Type:          a.Tipo,
		Bedrooms:      int(a.Dormitorios),
		Bathrooms:     int(a.Banos),
		LandArea:      a.Terreno,
		BuiltArea:     a.Construccion,
		Frontage:      a.Frente,
		ParkingSpaces: int(a.Estacionamientos),
		Featured:      a.IsFeatured,
		Active:        a.Active,
		Images:        make([]domain.Image, 0, len(a.Imagenes.Data)),
		Description:   a.Descripcion,
		Agent:         d.agent(a.Agente.Data),
		CreatedAt:     a.CreatedAt,
	}
	if c := a.Categoria.Data; c != nil && c.Attributes.NombreCategoria != "" {
		l.Category = &domain.Category{Name: c.Attributes.NombreCategoria}
	}
	if a.Ubicacion != nil && len(a.Ubicacion.Center) >= 2 {
		l.Location = domain.LngLat{Lng: a.Ubicacion.Center[0], Lat: a.Ubicacion.Center[1]}
	}
	for i := range a.Imagenes.Data {
		l.Images = append(l.Images, *d.image(&a.Imagenes.Data[i]))
	}
	return l
}

func (d decoder) blog(e entity[blogAttrs]) domain.Blog {
	a := e.Attributes
	return domain.Blog{
		ID:        e.ID,
		Title:     a.Titulo,
		Slug:      a.Slug,
		Cover:     d.image(a.Portada.Data),
		Content:   a.Contenido,
		Active:    a.Active,
		Author:    d.agent(a.Agente.Data),
		CreatedAt: a.CreatedAt,
	}
}
