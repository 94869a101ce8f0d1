// Package geo supplies state boundaries to the dashboard.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/ibge"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
)

// Provider yields one boundary record per state.
type Provider interface {
	// ID identifies the source; it is the cache key.
	ID() string
	Fetch(ctx context.Context) ([]model.StateGeometry, error)
}

// IBGEProvider reads states and the UF mesh from the IBGE API.
type IBGEProvider struct {
	client *ibge.Client
}

func NewIBGEProvider(client *ibge.Client) *IBGEProvider {
	return &IBGEProvider{client: client}
}

func (p *IBGEProvider) ID() string { return "ibge:" + p.client.BaseURL() }

func (p *IBGEProvider) Fetch(ctx context.Context) ([]model.StateGeometry, error) {
	return p.client.StateGeometries(ctx)
}

// FileProvider reads a GeoJSON FeatureCollection whose features carry
// name_state and name_region properties.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) ID() string { return "file:" + p.path }

func (p *FileProvider) Fetch(ctx context.Context) ([]model.StateGeometry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read geometry file: %w", err)
	}
	geoms, err := ParseFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.path, err)
	}
	return geoms, nil
}

// ParseFeatureCollection decodes state records from GeoJSON.
// Features without a name or a geometry are rejected.
func ParseFeatureCollection(data []byte) ([]model.StateGeometry, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("feature collection is empty")
	}

	out := make([]model.StateGeometry, 0, len(fc.Features))
	for i, f := range fc.Features {
		name := property(f.Properties, "name_state")
		if name == "" {
			return nil, fmt.Errorf("feature %d: missing name_state", i)
		}
		if f.Geometry == nil {
			return nil, fmt.Errorf("feature %d (%s): missing geometry", i, name)
		}
		out = append(out, model.StateGeometry{
			Name:     name,
			Region:   property(f.Properties, "name_region"),
			Code:     property(f.Properties, "code_state"),
			Abbrev:   property(f.Properties, "abbrev_state"),
			Geometry: f.Geometry,
		})
	}
	return out, nil
}

func property(props map[string]interface{}, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// GeometryStore is the read side of the Firestore geometry repository.
type GeometryStore interface {
	FetchAll(ctx context.Context) ([]model.StateGeometry, error)
}

// FirestoreProvider reads boundaries previously seeded into Firestore.
type FirestoreProvider struct {
	store      GeometryStore
	collection string
}

func NewFirestoreProvider(store GeometryStore, collection string) *FirestoreProvider {
	return &FirestoreProvider{store: store, collection: collection}
}

func (p *FirestoreProvider) ID() string { return "firestore:" + p.collection }

func (p *FirestoreProvider) Fetch(ctx context.Context) ([]model.StateGeometry, error) {
	geoms, err := p.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(geoms) == 0 {
		return nil, fmt.Errorf("collection %s has no geometry; run seed-geometry first", p.collection)
	}
	return geoms, nil
}
