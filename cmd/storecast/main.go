package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storecast/storecast/internal/cache"
	"github.com/storecast/storecast/internal/config"
	"github.com/storecast/storecast/internal/dataset"
	"github.com/storecast/storecast/internal/logging"
	"github.com/storecast/storecast/internal/router"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Storecast starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Load the base dataset; startup fails if any source table is unreadable
	logger.Info("Loading dataset",
		"sales", cfg.Data.SalesPath,
		"stores", cfg.Data.StoresPath,
		"features", cfg.Data.FeaturesPath)
	store, err := dataset.NewStore(dataset.Paths{
		Sales:    cfg.Data.SalesPath,
		Stores:   cfg.Data.StoresPath,
		Features: cfg.Data.FeaturesPath,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to load dataset", "error", err)
	}
	logger.Info("Dataset loaded", "observations", len(store.Current().Observations()))

	// Forecast result cache (configurable backend)
	resultCache, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to initialize result cache", "error", err)
	}
	defer func() { _ = resultCache.Close() }()
	logger.Info("Result cache initialized", "type", cfg.Cache.Type, "ttl", cfg.Cache.TTL)

	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	app := router.New(logger, store, resultCache, *cfg)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
