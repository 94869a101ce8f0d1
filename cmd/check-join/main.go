package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/dashboard"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/geo"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/config"
	firestoreclient "github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/firestore"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/logging"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/sources"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/repository"
)

// check-join loads the indicator file and the configured boundaries and
// prints which states failed to meet. Exits 1 when the join is not clean.
func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}
	logger := logging.New(cfg.LogLevel)

	provider, closeProvider, err := sources.Geometry(ctx, cfg, logger)
	if err != nil {
		log.Printf("Failed to open geometry source: %v", err)
		return 1
	}
	defer closeProvider()

	svc := dashboard.NewService(dashboard.NewDatasetLoader(cfg.DataFile), provider, geo.NewCache(), cfg.StateAliases)
	ds, rows, report, err := svc.Joined(ctx)
	if err != nil {
		log.Printf("Failed to join: %v", err)
		return 1
	}

	fmt.Printf("Data file:  %s (%d records, %s)\n", cfg.DataFile, len(ds.Records), ds.AverageNote())
	fmt.Printf("Geometry:   %s\n", provider.ID())
	fmt.Printf("Joined:     %d rows\n\n", len(rows))

	if cfg.GeometrySource == config.GeometryFirestore {
		printSeed(ctx, cfg)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal report: %v", err)
		return 1
	}
	fmt.Println(string(out))

	if !report.Clean() {
		return 1
	}
	return 0
}

func printSeed(ctx context.Context, cfg config.Config) {
	client, _, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		fmt.Printf("Seed info unavailable: %v\n\n", err)
		return
	}
	defer client.Close()

	seed, err := repository.NewSeedRepository(client).GetSeed(ctx)
	if err != nil {
		fmt.Printf("Seed info unavailable: %v\n\n", err)
		return
	}
	fmt.Printf("Seeded from %s on %s (%d states, checksum %s)\n\n",
		seed.Source, seed.UpdatedAt.Format(time.RFC3339), seed.States, seed.Checksum)
}
