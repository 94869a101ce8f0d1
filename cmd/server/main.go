package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/dashboard"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/geo"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/config"
	apirouter "github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/http"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/logging"
	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/platform/sources"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	gin.SetMode(cfg.GinMode)
	logger := logging.New(cfg.LogLevel)

	provider, closeProvider, err := sources.Geometry(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("geometry source: %v", err)
	}
	defer closeProvider()

	svc := dashboard.NewService(dashboard.NewDatasetLoader(cfg.DataFile), provider, geo.Shared(), cfg.StateAliases)

	// Warm the caches and surface join problems before taking traffic.
	// A failure here is not fatal; requests retry the sources.
	warmCtx, cancelWarm := context.WithTimeout(ctx, 60*time.Second)
	if ds, _, report, err := svc.Joined(warmCtx); err != nil {
		logger.Error("initial load failed", "error", err)
	} else {
		logger.Info("dataset loaded",
			"file", cfg.DataFile,
			"records", len(ds.Records),
			"years", ds.AverageNote(),
			"geometry", provider.ID(),
			"matched", report.Matched,
		)
		if !report.Clean() {
			logger.Warn("states did not join",
				"missing_geometry", report.MissingGeometry,
				"missing_indicators", report.MissingIndicators,
				"duplicate_geometry", report.DuplicateGeometry,
			)
		}
		for _, s := range report.Suggestions {
			logger.Warn("possible alias", "from", s.From, "to", s.To)
		}
	}
	cancelWarm()

	router := apirouter.NewRouter(svc, logger, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	logger.Info("server listening", "port", cfg.Port)

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server exited")
}
