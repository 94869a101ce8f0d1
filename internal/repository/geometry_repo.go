package repository

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

const batchSize = 400

// GeometryRepository handles Firestore read/write for state boundaries.
type GeometryRepository struct {
	client     *firestore.Client
	collection string
	aliases    util.AliasTable
}

// NewGeometryRepository keys documents by the state's join key under aliases,
// so alternate spellings of one state share a document.
func NewGeometryRepository(client *firestore.Client, collection string, aliases util.AliasTable) *GeometryRepository {
	return &GeometryRepository{client: client, collection: collection, aliases: aliases}
}

// FetchAll loads every stored state boundary, ordered by state name.
func (r *GeometryRepository) FetchAll(ctx context.Context) ([]model.StateGeometry, error) {
	iter := r.client.Collection(r.collection).Documents(ctx)
	defer iter.Stop()

	var out []model.StateGeometry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate %s: %w", r.collection, err)
		}
		var d model.StateGeometryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode geometry %s: %w", doc.Ref.ID, err)
		}
		g, err := d.StateGeometry()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// BatchUpsert writes boundaries in batches, keyed by DocumentID. When two
// boundaries share an ID the first one is written.
func (r *GeometryRepository) BatchUpsert(ctx context.Context, geoms []model.StateGeometry, source string) (int, error) {
	geoms = Unique(geoms, r.aliases)
	written := 0
	for start := 0; start < len(geoms); start += batchSize {
		end := start + batchSize
		if end > len(geoms) {
			end = len(geoms)
		}
		batch := r.client.Batch()
		for _, g := range geoms[start:end] {
			d, err := g.ToDoc(source)
			if err != nil {
				return written, err
			}
			batch.Set(r.client.Collection(r.collection).Doc(DocumentID(g.Name, r.aliases)), d)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return written, fmt.Errorf("commit batch [%d:%d]: %w", start, end, err)
		}
		written += end - start
	}
	return written, nil
}

// DocumentID derives a stable document ID from a state's join key.
func DocumentID(name string, aliases util.AliasTable) string {
	return util.HashString(util.StateKey(name, aliases))
}

// Unique drops boundaries whose DocumentID was already seen, keeping order.
func Unique(geoms []model.StateGeometry, aliases util.AliasTable) []model.StateGeometry {
	seen := make(map[string]bool, len(geoms))
	out := make([]model.StateGeometry, 0, len(geoms))
	for _, g := range geoms {
		id := DocumentID(g.Name, aliases)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, g)
	}
	return out
}
