// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/algorithms"
)

// buildEngineConfig maps the RECOMMEND_* settings onto the engine's config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	return &recommend.Config{
		MinBookRatings:    rc.MinBookRatings,
		MinUserRatings:    rc.MinUserRatings,
		DefaultN:          rc.DefaultN,
		DefaultMinRatings: rc.DefaultMinRatings,
		CollabWeight:      rc.CollabWeight,
		ContentWeight:     rc.ContentWeight,
		TFIDFMaxFeatures:  rc.TFIDFMaxFeatures,
		UserSeedCount:     rc.UserSeedCount,
		NumWorkers:        rc.NumWorkers,
		MaxDenseItems:     rc.MaxDenseItems,
		Cache: recommend.CacheConfig{
			Enabled:    rc.CacheEnabled,
			TTL:        rc.CacheTTL,
			MaxEntries: rc.CacheMaxEntries,
		},
	}
}

// initRecommend loads the catalog from provider and fits every model.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, provider recommend.CatalogProvider, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(cfg)
	if err := engineCfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend config: %w", err)
	}

	catalog, err := recommend.LoadCatalog(ctx, provider)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("books", catalog.Len()).
		Int("interactions", len(catalog.Interactions())).
		Int("min_book_ratings", engineCfg.MinBookRatings).
		Int("min_user_ratings", engineCfg.MinUserRatings).
		Msg("building recommendation models")

	checkMemoryBudget(ctx, catalog.Len(), engineCfg.MaxDenseItems, logger)

	start := time.Now()
	models, stats, err := algorithms.Build(ctx, catalog, engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build models: %w", err)
	}

	metrics.SetCatalogSize(stats.Books, stats.Interactions, stats.FilteredInteractions)
	metrics.SetCollabShape(stats.CollabItems, stats.CollabUsers, stats.CollabNonZero, stats.Sparsity)
	metrics.SetContentShape(stats.ContentDocuments, stats.Vocabulary)

	engine, err := recommend.NewEngine(engineCfg, catalog, models, stats, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("collab_items", stats.CollabItems).
		Int("collab_users", stats.CollabUsers).
		Float64("sparsity_percent", stats.Sparsity).
		Int("vocabulary", stats.Vocabulary).
		Dur("duration", time.Since(start)).
		Msg("recommendation engine ready")

	return engine, nil
}

// denseMatrixBytes is the size of one materialised n*n float64 matrix, or 0
// when n exceeds maxDense and rows are computed on demand.
func denseMatrixBytes(n, maxDense int) uint64 {
	if maxDense > 0 && n > maxDense {
		return 0
	}
	return uint64(n) * uint64(n) * 8
}

// checkMemoryBudget warns when the content matrix alone would take more
// than half of the host's available memory. The collaborative matrix is
// never larger since its items are a subset of the catalog.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func checkMemoryBudget(ctx context.Context, books, maxDense int, logger zerolog.Logger) {
	need := denseMatrixBytes(books, maxDense)
	if need == 0 {
		logger.Info().
			Int("books", books).
			Int("max_dense_items", maxDense).
			Msg("content similarity rows computed on demand")
		return
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("host memory unavailable, skipping budget check")
		return
	}
	if need > vm.Available/2 {
		logger.Warn().
			Uint64("dense_bytes", need).
			Uint64("available_bytes", vm.Available).
			Msg("dense similarity matrix is large relative to available memory; lower MAX_DENSE_ITEMS")
	}
}
