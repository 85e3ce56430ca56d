// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"strings"
)

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.BooksFile) == "" {
		return fmt.Errorf("BOOKS_FILE must not be empty")
	}
	if strings.TrimSpace(c.Data.RatingsFile) == "" {
		return fmt.Errorf("RATINGS_FILE must not be empty")
	}
	if c.Data.MaxYear < c.Data.MinYear {
		return fmt.Errorf("MAX_YEAR (%d) must be >= MIN_YEAR (%d)", c.Data.MaxYear, c.Data.MinYear)
	}
	if c.Data.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Data.Threads)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MinBookRatings < 1 {
		return fmt.Errorf("MIN_BOOK_RATINGS must be >= 1, got %d", r.MinBookRatings)
	}
	if r.MinUserRatings < 1 {
		return fmt.Errorf("MIN_USER_RATINGS must be >= 1, got %d", r.MinUserRatings)
	}
	if r.DefaultMinRatings < 0 {
		return fmt.Errorf("DEFAULT_MIN_RATINGS must be >= 0, got %d", r.DefaultMinRatings)
	}
	if r.MaxN < 1 {
		return fmt.Errorf("MAX_N must be >= 1, got %d", r.MaxN)
	}
	if r.DefaultN < 1 || r.DefaultN > r.MaxN {
		return fmt.Errorf("DEFAULT_N_RECOMMENDATIONS must be between 1 and %d, got %d", r.MaxN, r.DefaultN)
	}
	if r.CollabWeight < 0 || r.ContentWeight < 0 {
		return fmt.Errorf("COLLAB_WEIGHT and CONTENT_WEIGHT must be >= 0")
	}
	if r.TFIDFMaxFeatures < 1 {
		return fmt.Errorf("TFIDF_MAX_FEATURES must be >= 1, got %d", r.TFIDFMaxFeatures)
	}
	if r.UserSeedCount < 1 {
		return fmt.Errorf("USER_SEED_COUNT must be >= 1, got %d", r.UserSeedCount)
	}
	if r.NumWorkers < 0 {
		return fmt.Errorf("NUM_WORKERS must be >= 0, got %d", r.NumWorkers)
	}
	if r.MaxDenseItems < 0 {
		return fmt.Errorf("MAX_DENSE_ITEMS must be >= 0, got %d", r.MaxDenseItems)
	}
	if r.CacheEnabled {
		if r.CacheTTL <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when caching is enabled")
		}
		if r.CacheMaxEntries < 1 {
			return fmt.Errorf("RECOMMEND_CACHE_MAX_ENTRIES must be >= 1 when caching is enabled")
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be >= 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
