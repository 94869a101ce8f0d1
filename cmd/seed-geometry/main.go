package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/geo"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/config"
	firestoreclient "github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/firestore"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/ibge"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/repository"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
)

func main() {
	from := flag.String("from", "ibge", "Where to read boundaries: ibge or a GeoJSON file path")
	dryRun := flag.Bool("dry-run", false, "Fetch and report without writing to Firestore")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var provider geo.Provider
	if *from == "ibge" {
		provider = geo.NewIBGEProvider(ibge.New(nil, ibge.Config{BaseURL: cfg.IBGEBaseURL}))
	} else {
		provider = geo.NewFileProvider(*from)
	}

	geoms, err := provider.Fetch(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch boundaries from %s: %v", provider.ID(), err)
	}
	checksum, err := geo.Checksum(geoms)
	if err != nil {
		log.Fatalf("Failed to checksum boundaries: %v", err)
	}

	mode := "LIVE"
	if *dryRun {
		mode = "DRY-RUN"
	}
	fmt.Printf("\n=== Geometry Seed [%s] ===\n", mode)
	fmt.Printf("Source:     %s\n", provider.ID())
	fmt.Printf("States:     %d\n", len(geoms))
	fmt.Printf("Checksum:   %s\n", checksum)
	fmt.Printf("Collection: %s\n", cfg.GeometryCollection)
	fmt.Println("==========================================")

	if *dryRun {
		for _, g := range geoms {
			fmt.Printf("  %-24s %-14s %s\n", g.Name, g.Region, repository.DocumentID(g.Name, cfg.StateAliases))
		}
		return
	}

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()
	log.Printf("Connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)

	seeds := repository.NewSeedRepository(client)
	if prev, err := seeds.GetSeed(ctx); err == nil && prev.Checksum == checksum {
		fmt.Printf("Store already holds this copy (seeded %s), nothing to do\n", prev.UpdatedAt.Format(time.RFC3339))
		return
	}

	repo := repository.NewGeometryRepository(client, cfg.GeometryCollection, cfg.StateAliases)
	written, err := repo.BatchUpsert(ctx, geoms, provider.ID())
	if err != nil {
		log.Fatalf("Failed to write boundaries after %d states: %v", written, err)
	}
	if err := seeds.SaveSeed(ctx, model.GeometrySeed{
		Source:   provider.ID(),
		States:   written,
		Checksum: checksum,
	}); err != nil {
		log.Fatalf("Failed to record seed: %v", err)
	}

	fmt.Printf("✓ Wrote %d states\n", written)
}
