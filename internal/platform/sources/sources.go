// Package sources opens the geometry provider selected by configuration.
package sources

import (
	"context"
	"fmt"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/geo"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/config"
	firestoreclient "github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/firestore"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/ibge"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/logging"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/repository"
)

// Geometry returns the provider named by cfg.GeometrySource. The returned
// closer releases any client the provider holds and is never nil.
func Geometry(ctx context.Context, cfg config.Config, logger *logging.Logger) (geo.Provider, func() error, error) {
	noop := func() error { return nil }

	switch cfg.GeometrySource {
	case config.GeometryIBGE:
		client := ibge.New(nil, ibge.Config{BaseURL: cfg.IBGEBaseURL})
		return geo.NewIBGEProvider(client), noop, nil

	case config.GeometryFile:
		return geo.NewFileProvider(cfg.GeometryFile), noop, nil

	case config.GeometryFirestore:
		client, credsSource, err := firestoreclient.New(ctx, cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("firestore init: %w", err)
		}
		if err := firestoreclient.Ping(ctx, client, cfg.GeometryCollection); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("firestore ping: %w", err)
		}
		logger.Info("connected to firestore",
			"project", cfg.FirebaseProjectID,
			"credentials", credsSource,
			"collection", cfg.GeometryCollection,
		)
		repo := repository.NewGeometryRepository(client, cfg.GeometryCollection, cfg.StateAliases)
		return geo.NewFirestoreProvider(repo, cfg.GeometryCollection), client.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown geometry source %q", cfg.GeometrySource)
}
