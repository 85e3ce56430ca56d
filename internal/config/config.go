// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package config loads Folio's runtime configuration.
//
// Sources are layered with koanf: struct defaults, then an optional YAML
// file, then environment variables. Only environment variables listed in
// envTransformFunc are read.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DataConfig locates the Book-Crossing CSV exports and the DuckDB
// instance used to clean them.
type DataConfig struct {
	Dir         string `koanf:"dir"`
	BooksFile   string `koanf:"books_file"`
	RatingsFile string `koanf:"ratings_file"`

	// MinYear and MaxYear bound Year-Of-Publication. Year 0 is always dropped.
	MinYear int `koanf:"min_year"`
	MaxYear int `koanf:"max_year"`

	// DuckDBPath is ":memory:" unless the cleaned tables should persist.
	DuckDBPath string `koanf:"duckdb_path"`
	MaxMemory  string `koanf:"max_memory"`
	Threads    int    `koanf:"threads"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	MinBookRatings    int     `koanf:"min_book_ratings"`
	MinUserRatings    int     `koanf:"min_user_ratings"`
	DefaultN          int     `koanf:"default_n"`
	DefaultMinRatings int     `koanf:"default_min_ratings"`
	CollabWeight      float64 `koanf:"collab_weight"`
	ContentWeight     float64 `koanf:"content_weight"`
	TFIDFMaxFeatures  int     `koanf:"tfidf_max_features"`

	// UserSeedCount is how many of a user's top-rated books seed
	// recommend_for_user.
	UserSeedCount int `koanf:"user_seed_count"`

	// MaxN caps n on the HTTP surface.
	MaxN int `koanf:"max_n"`

	// NumWorkers parallelises the similarity build. 0 = runtime.NumCPU().
	NumWorkers int `koanf:"num_workers"`

	// MaxDenseItems caps the up-front similarity matrices. Larger models
	// compute rows on demand. 0 = always dense.
	MaxDenseItems int `koanf:"max_dense_items"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	// Level is trace, debug, info, warn, error, fatal, panic or disabled.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to log entries.
	Caller bool `koanf:"caller"`
}
