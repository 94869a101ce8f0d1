package model

import (
	"fmt"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ToDoc converts a geometry into its stored form, tagging it with source.
func (g StateGeometry) ToDoc(source string) (StateGeometryDoc, error) {
	if g.Geometry == nil {
		return StateGeometryDoc{}, fmt.Errorf("state %q has no geometry", g.Name)
	}
	raw, err := geojson.Marshal(g.Geometry)
	if err != nil {
		return StateGeometryDoc{}, fmt.Errorf("encode geometry for %q: %w", g.Name, err)
	}
	return StateGeometryDoc{
		Name:    g.Name,
		Region:  g.Region,
		Code:    g.Code,
		Abbrev:  g.Abbrev,
		GeoJSON: string(raw),
		Source:  source,
	}, nil
}

// StateGeometry decodes the stored boundary.
func (d StateGeometryDoc) StateGeometry() (StateGeometry, error) {
	var g geom.T
	if err := geojson.Unmarshal([]byte(d.GeoJSON), &g); err != nil {
		return StateGeometry{}, fmt.Errorf("decode geometry for %q: %w", d.Name, err)
	}
	return StateGeometry{
		Name:     d.Name,
		Region:   d.Region,
		Code:     d.Code,
		Abbrev:   d.Abbrev,
		Geometry: g,
	}, nil
}

// GeometrySeed records the last copy of boundaries into the store.
type GeometrySeed struct {
	Source    string    `json:"source" firestore:"source"`
	States    int       `json:"states" firestore:"states"`
	Checksum  string    `json:"checksum" firestore:"checksum"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
