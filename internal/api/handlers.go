// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"time"

	"github.com/tomtom215/folio/internal/recommend"
)

// Recommender is the query surface the handlers depend on.
// *recommend.Engine implements it.
type Recommender interface {
	GetPopular(ctx context.Context, n, minRatings int) ([]recommend.Recommendation, error)
	RecommendByISBN(ctx context.Context, isbn string, n int, method recommend.Method) ([]recommend.Recommendation, error)
	RecommendByTitle(ctx context.Context, title string, n int, method recommend.Method) ([]recommend.Recommendation, error)
	RecommendForUser(ctx context.Context, userID, n int, method recommend.Method) ([]recommend.Recommendation, error)
	Book(isbn string) (recommend.Book, bool)
	FindTitle(title string) (recommend.Book, bool)
	Stats() recommend.BuildStats
	GetMetrics() recommend.EngineMetrics
}

var _ Recommender = (*recommend.Engine)(nil)

// HandlerConfig carries the request defaults.
type HandlerConfig struct {
	DefaultN          int
	MaxN              int
	DefaultMinRatings int
	Version           string
}

// Handler holds the HTTP handlers.
type Handler struct {
	engine    Recommender
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a Handler. Zero DefaultN and MaxN fall back to 10 and 100.
func NewHandler(engine Recommender, cfg HandlerConfig) *Handler {
	if cfg.DefaultN <= 0 {
		cfg.DefaultN = 10
	}
	if cfg.MaxN <= 0 {
		cfg.MaxN = 100
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		engine:    engine,
		config:    cfg,
		startTime: time.Now(),
	}
}
