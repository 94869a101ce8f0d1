package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
)

// SeedRepository manages the system/geometry_seed singleton document.
type SeedRepository struct {
	client *firestore.Client
}

func NewSeedRepository(client *firestore.Client) *SeedRepository {
	return &SeedRepository{client: client}
}

func (r *SeedRepository) SaveSeed(ctx context.Context, seed model.GeometrySeed) error {
	seed.UpdatedAt = time.Now().UTC()
	ref := r.client.Collection("system").Doc("geometry_seed")
	if _, err := ref.Set(ctx, seed); err != nil {
		return fmt.Errorf("save geometry seed: %w", err)
	}
	return nil
}

func (r *SeedRepository) GetSeed(ctx context.Context) (model.GeometrySeed, error) {
	snap, err := r.client.Collection("system").Doc("geometry_seed").Get(ctx)
	if err != nil {
		return model.GeometrySeed{}, fmt.Errorf("get geometry seed: %w", err)
	}
	var seed model.GeometrySeed
	if err := snap.DataTo(&seed); err != nil {
		return model.GeometrySeed{}, fmt.Errorf("decode geometry seed: %w", err)
	}
	return seed, nil
}
