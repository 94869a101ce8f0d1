package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/config"
)

// New opens a Firestore client for the geometry store. The second return
// value names the credential source that was used (base64 or file).
func New(ctx context.Context, cfg config.Config) (*firestore.Client, string, error) {
	if err := cfg.ValidateFirestore(); err != nil {
		return nil, "", err
	}
	creds, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil {
		return nil, source, err
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, source, fmt.Errorf("init firestore client: %w", err)
	}
	return client, source, nil
}

// Ping checks that the geometry collection is reachable by reading at most
// one document from it.
func Ping(ctx context.Context, client *firestore.Client, collection string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	iter := client.Collection(collection).Limit(1).Documents(ctx)
	defer iter.Stop()
	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ping %s: %w", collection, err)
	}
	return nil
}
