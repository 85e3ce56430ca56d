// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
)

// Engine answers recommendation queries against fitted models.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	catalog *Catalog
	models  Models
	stats   BuildStats

	// userRatings holds each user's filtered log entries in log order.
	userRatings map[int][]Interaction

	cache        *cache.LRU[string, []Recommendation]
	requestCount atomic.Int64
}

// EngineMetrics are the engine's request counters.
type EngineMetrics struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	CacheSize   int   `json:"cache_size"`
}

// NewEngine wires fitted models into a query engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog *Catalog, models Models, stats BuildStats, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInitialization)
	}
	if models.Popularity == nil || models.Collaborative == nil || models.Content == nil || models.Hybrid == nil {
		return nil, fmt.Errorf("%w: every model must be fitted before the engine starts", ErrInitialization)
	}

	e := &Engine{
		config:      cfg,
		logger:      logger.With().Str("component", "recommend").Logger(),
		catalog:     catalog,
		models:      models,
		stats:       stats,
		userRatings: make(map[int][]Interaction),
	}
	for _, in := range FilterInteractions(catalog.Interactions(), cfg.MinBookRatings, cfg.MinUserRatings) {
		e.userRatings[in.UserID] = append(e.userRatings[in.UserID], in)
	}
	if cfg.Cache.Enabled {
		e.cache = cache.New[string, []Recommendation](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	e.logger.Info().
		Int("books", catalog.Len()).
		Int("users_with_filtered_ratings", len(e.userRatings)).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("recommendation engine ready")
	return e, nil
}

// GetPopular returns the top n books rated at least minRatings times.
func (e *Engine) GetPopular(ctx context.Context, n, minRatings int) ([]Recommendation, error) {
	if err := checkN(n); err != nil {
		return nil, err
	}
	if minRatings < 0 {
		return nil, fmt.Errorf("%w: min_ratings must be non-negative, got %d", ErrInvalidArgument, minRatings)
	}
	key := fmt.Sprintf("popular:%d:%d", n, minRatings)
	return e.cached(ctx, "popular", key, func() []Recommendation {
		return e.models.Popularity.Popular(n, minRatings)
	}), nil
}

// RecommendByISBN returns up to n books similar to isbn. With
// MethodPopularity the seed only matters in that it is left out.
func (e *Engine) RecommendByISBN(ctx context.Context, isbn string, n int, method Method) ([]Recommendation, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	if err := checkN(n); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("isbn:%s:%d:%s", isbn, n, method)
	return e.cached(ctx, "isbn", key, func() []Recommendation {
		return e.byISBN(isbn, n, method)
	}), nil
}

// RecommendByTitle resolves title to the first catalog book whose title
// contains it, case-insensitively, and recommends from that seed. No match
// yields an empty result.
func (e *Engine) RecommendByTitle(ctx context.Context, title string, n int, method Method) ([]Recommendation, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	if err := checkN(n); err != nil {
		return nil, err
	}

	book, ok := e.catalog.FindTitle(title)
	if !ok {
		e.logger.Debug().Str("title", title).Msg("no catalog title matched")
		return []Recommendation{}, nil
	}
	return e.RecommendByISBN(ctx, book.ISBN, n, method)
}

// RecommendForUser seeds from the user's top-rated books in the filtered
// log. Users without filtered ratings get the popularity list.
func (e *Engine) RecommendForUser(ctx context.Context, userID, n int, method Method) ([]Recommendation, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	if err := checkN(n); err != nil {
		return nil, err
	}

	ratings := e.userRatings[userID]
	if len(ratings) == 0 {
		return e.GetPopular(ctx, n, e.config.DefaultMinRatings)
	}

	key := fmt.Sprintf("user:%d:%d:%s", userID, n, method)
	return e.cached(ctx, "user", key, func() []Recommendation {
		return e.forUser(ratings, n, method)
	}), nil
}

func (e *Engine) byISBN(isbn string, n int, method Method) []Recommendation {
	if n == 0 {
		return []Recommendation{}
	}
	switch method {
	case MethodPopularity:
		popular := e.models.Popularity.Popular(n+1, e.config.DefaultMinRatings)
		out := make([]Recommendation, 0, n)
		for _, r := range popular {
			if r.ISBN != isbn && len(out) < n {
				out = append(out, r)
			}
		}
		return out
	case MethodCollaborative:
		return e.models.Collaborative.Similar(isbn, n)
	case MethodContent:
		return e.models.Content.Similar(isbn, n)
	default:
		return e.models.Hybrid.Similar(isbn, n)
	}
}

func (e *Engine) forUser(ratings []Interaction, n int, method Method) []Recommendation {
	rated := make(map[string]struct{}, len(ratings))
	for _, in := range ratings {
		rated[in.ISBN] = struct{}{}
	}

	out := make([]Recommendation, 0, n)
	seen := make(map[string]struct{}, n)
	for _, seed := range topSeeds(ratings, e.config.UserSeedCount) {
		for _, r := range e.byISBN(seed, n, method) {
			if _, ok := rated[r.ISBN]; ok {
				continue
			}
			if _, ok := seen[r.ISBN]; ok {
				continue
			}
			seen[r.ISBN] = struct{}{}
			out = append(out, r)
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// topSeeds returns up to k distinct ISBNs by rating descending. Equal
// ratings keep log order.
func topSeeds(ratings []Interaction, k int) []string {
	sorted := make([]Interaction, len(ratings))
	copy(sorted, ratings)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })

	seeds := make([]string, 0, k)
	picked := make(map[string]struct{}, k)
	for _, in := range sorted {
		if len(seeds) == k {
			break
		}
		if _, ok := picked[in.ISBN]; ok {
			continue
		}
		picked[in.ISBN] = struct{}{}
		seeds = append(seeds, in.ISBN)
	}
	return seeds
}

// cached runs compute through the result cache. Values are copied in both
// directions so callers never share a slice with the cache.
func (e *Engine) cached(ctx context.Context, op, key string, compute func() []Recommendation) []Recommendation {
	start := time.Now()
	e.requestCount.Add(1)
	if e.cache != nil {
		hit, ok := e.cache.Get(key)
		metrics.RecordCacheLookup(ok)
		if ok {
			metrics.RecordRecommendation(op, len(hit), time.Since(start))
			return copyRecommendations(hit)
		}
	}

	recs := compute()
	if recs == nil {
		recs = []Recommendation{}
	}
	elapsed := time.Since(start)
	metrics.RecordRecommendation(op, len(recs), elapsed)

	e.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("query", key).
		Int("results", len(recs)).
		Dur("duration", elapsed).
		Msg("recommendations computed")

	if e.cache != nil {
		e.cache.Add(key, copyRecommendations(recs))
	}
	return recs
}

func copyRecommendations(in []Recommendation) []Recommendation {
	out := make([]Recommendation, len(in))
	copy(out, in)
	return out
}

func checkN(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: n must be non-negative, got %d", ErrInvalidArgument, n)
	}
	return nil
}

// Book looks up a catalog row.
func (e *Engine) Book(isbn string) (Book, bool) {
	return e.catalog.Book(isbn)
}

// FindTitle resolves a title fragment the same way RecommendByTitle does.
func (e *Engine) FindTitle(title string) (Book, bool) {
	return e.catalog.FindTitle(title)
}

// Catalog returns the snapshot the engine was built from.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Stats returns the startup build statistics.
func (e *Engine) Stats() BuildStats {
	return e.stats
}

// GetConfig returns the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config
}

// GetMetrics returns the request counter and the result cache's own
// hit, miss and size figures.
func (e *Engine) GetMetrics() EngineMetrics {
	m := EngineMetrics{Requests: e.requestCount.Load()}
	if e.cache != nil {
		m.CacheHits, m.CacheMisses, m.CacheSize = e.cache.Stats()
	}
	return m
}

// CleanupCache drops expired cache entries and returns how many were
// removed. It is a no-op when caching is disabled.
func (e *Engine) CleanupCache() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.CleanupExpired()
}
