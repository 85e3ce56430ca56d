// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/folio/internal/api"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/supervisor"
	"github.com/tomtom215/folio/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("data_dir", cfg.Data.Dir).
		Str("duckdb_path", cfg.Data.DuckDBPath).
		Msg("Starting Folio")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cancel, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Folio stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run builds the engine and blocks in the supervisor tree until a signal
// arrives or the tree fails.
func run(ctx context.Context, cancel context.CancelFunc, cfg *config.Config) error {
	loader, err := database.Open(ctx, &cfg.Data, logging.Logger())
	if err != nil {
		return fmt.Errorf("failed to ingest data: %w", err)
	}
	defer func() {
		if err := loader.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	engine, err := initRecommend(ctx, cfg, loader, logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("failed to build recommendation engine: %w", err)
	}

	handler := api.NewHandler(engine, api.HandlerConfig{
		DefaultN:          cfg.Recommend.DefaultN,
		MaxN:              cfg.Recommend.MaxN,
		DefaultMinRatings: cfg.Recommend.DefaultMinRatings,
		Version:           version,
	})
	chiMw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}
	if cfg.Recommend.CacheEnabled {
		tree.Add(supervisor.EngineLayer, services.NewCacheMaintenanceService(engine, cfg.Recommend.CacheTTL, logging.WithComponent("supervisor")))
	}
	tree.Add(supervisor.APILayer, services.NewHTTPServerService(server, addr, 10*time.Second, logging.WithComponent("supervisor")))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Str("addr", addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			serveErr = err
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if serveErr != nil {
		return fmt.Errorf("supervisor tree: %w", serveErr)
	}
	return nil
}
