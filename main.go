package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/crease-live/crease-backend/app"
	"github.com/crease-live/crease-backend/app/shared/observability"
	"github.com/crease-live/crease-backend/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceName:     "crease-backend",
		Environment:     cfg.Observability.Environment,
		MetricsAddress:  cfg.Observability.MetricsAddress,
		TempoEndpoint:   cfg.Observability.TempoEndpoint,
		TempoInsecure:   cfg.Observability.TempoInsecure,
		TempoSampleRate: cfg.Observability.TempoSampleRate,
	})
	if err != nil {
		log.Fatalf("Failed to initialize observability: %v", err)
	}

	application := &app.App{}
	if err := application.Initialize(ctx, cfg, obs); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		obs.Logger.Error("Application run failed", "error", err)
	}

	application.Close()
	if err := obs.Shutdown(context.Background()); err != nil {
		obs.Logger.Error("Observability shutdown failed", "error", err)
	}
}
