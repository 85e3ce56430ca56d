// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

// Build fits every model from catalog. It blocks until both similarity
// matrices are complete.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Build(ctx context.Context, catalog *recommend.Catalog, cfg *recommend.Config, logger zerolog.Logger) (recommend.Models, recommend.BuildStats, error) {
	logger = logger.With().Str("component", "recommend").Logger()
	stats := recommend.BuildStats{
		Books:        catalog.Len(),
		Interactions: len(catalog.Interactions()),
	}

	popularity := NewPopularity(catalog)

	start := time.Now()
	collab, err := NewCollaborative(ctx, catalog, CollaborativeConfig{
		MinBookRatings: cfg.MinBookRatings,
		MinUserRatings: cfg.MinUserRatings,
		Matrix:         cfg.MatrixOptions(),
	})
	if err != nil {
		return recommend.Models{}, stats, fmt.Errorf("build collaborative model: %w", err)
	}
	stats.CollabDuration = time.Since(start)
	metrics.RecordModelBuild("collaborative", stats.CollabDuration)
	stats.CollabItems, stats.CollabUsers = collab.Shape()
	stats.CollabNonZero = collab.nonZero
	stats.FilteredInteractions = collab.filtered
	stats.UnknownISBNs = collab.unknown
	stats.Sparsity = collab.Sparsity()

	logger.Info().
		Int("filtered_interactions", stats.FilteredInteractions).
		Int("items", stats.CollabItems).
		Int("users", stats.CollabUsers).
		Float64("sparsity_percent", stats.Sparsity).
		Bool("dense", collab.Matrix().Dense()).
		Dur("duration", stats.CollabDuration).
		Msg("user-item matrix built")
	if stats.UnknownISBNs > 0 {
		logger.Warn().Int("count", stats.UnknownISBNs).Msg("ratings for ISBNs outside the catalog skipped")
	}

	start = time.Now()
	content, err := NewContent(ctx, catalog, ContentConfig{
		MaxFeatures: cfg.TFIDFMaxFeatures,
		Matrix:      cfg.MatrixOptions(),
	})
	if err != nil {
		return recommend.Models{}, stats, fmt.Errorf("build content model: %w", err)
	}
	stats.ContentDuration = time.Since(start)
	metrics.RecordModelBuild("content", stats.ContentDuration)
	stats.ContentDocuments = content.Matrix().Len()
	stats.Vocabulary = content.Vocabulary()

	logger.Info().
		Int("documents", stats.ContentDocuments).
		Int("vocabulary", stats.Vocabulary).
		Bool("dense", content.Matrix().Dense()).
		Dur("duration", stats.ContentDuration).
		Msg("tf-idf matrix built")

	stats.BuiltAt = time.Now()
	return recommend.Models{
		Popularity:    popularity,
		Collaborative: collab,
		Content:       content,
		Hybrid:        NewHybrid(collab, content, cfg.CollabWeight, cfg.ContentWeight),
	}, stats, nil
}
