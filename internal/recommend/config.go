// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"time"
)

// Config holds engine tuning. Zero values are not usable; start from
// DefaultConfig.
type Config struct {
	// MinBookRatings and MinUserRatings gate the collaborative rating log.
	MinBookRatings int
	MinUserRatings int

	// DefaultN is used when a caller does not pass n.
	DefaultN int

	// DefaultMinRatings is the popularity threshold for fallbacks.
	DefaultMinRatings int

	// CollabWeight and ContentWeight scale the hybrid sum. They need not
	// add up to 1.
	CollabWeight  float64
	ContentWeight float64

	// TFIDFMaxFeatures caps the content vocabulary.
	TFIDFMaxFeatures int

	// UserSeedCount is how many top-rated books seed a user query.
	UserSeedCount int

	// NumWorkers parallelises similarity builds. 0 = runtime.NumCPU().
	NumWorkers int

	// MaxDenseItems bounds the up-front similarity matrices. 0 = always dense.
	MaxDenseItems int

	Cache CacheConfig
}

// CacheConfig controls the query result cache.
type CacheConfig struct {
	Enabled    bool
	TTL        time.Duration
	MaxEntries int
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() *Config {
	return &Config{
		MinBookRatings:    50,
		MinUserRatings:    5,
		DefaultN:          10,
		DefaultMinRatings: 50,
		CollabWeight:      0.5,
		ContentWeight:     0.5,
		TFIDFMaxFeatures:  5000,
		UserSeedCount:     3,
		NumWorkers:        0,
		MaxDenseItems:     10000,
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MinBookRatings < 1 {
		return fmt.Errorf("min_book_ratings must be positive, got %d", c.MinBookRatings)
	}
	if c.MinUserRatings < 1 {
		return fmt.Errorf("min_user_ratings must be positive, got %d", c.MinUserRatings)
	}
	if c.DefaultN < 1 {
		return fmt.Errorf("default_n must be positive, got %d", c.DefaultN)
	}
	if c.DefaultMinRatings < 0 {
		return fmt.Errorf("default_min_ratings must be non-negative, got %d", c.DefaultMinRatings)
	}
	if c.CollabWeight < 0 || c.ContentWeight < 0 {
		return fmt.Errorf("hybrid weights must be non-negative, got %f/%f", c.CollabWeight, c.ContentWeight)
	}
	if c.TFIDFMaxFeatures < 1 {
		return fmt.Errorf("tfidf_max_features must be positive, got %d", c.TFIDFMaxFeatures)
	}
	if c.UserSeedCount < 1 {
		return fmt.Errorf("user_seed_count must be positive, got %d", c.UserSeedCount)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("num_workers must be non-negative, got %d", c.NumWorkers)
	}
	if c.MaxDenseItems < 0 {
		return fmt.Errorf("max_dense_items must be non-negative, got %d", c.MaxDenseItems)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// MatrixOptions returns the similarity build options implied by c.
func (c *Config) MatrixOptions() MatrixOptions {
	return MatrixOptions{Workers: c.NumWorkers, MaxDenseItems: c.MaxDenseItems}
}
