// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/metrics"
)

// defaultQueryTimeout bounds queries issued without a deadline.
const defaultQueryTimeout = 5 * time.Minute

// Loader owns the DuckDB connection holding the cleaned tables.
type Loader struct {
	conn   *sql.DB
	cfg    *config.DataConfig
	logger zerolog.Logger
	counts IngestCounts
}

// IngestCounts reports row counts at each cleaning stage.
type IngestCounts struct {
	RawBooks      int `json:"raw_books"`
	CleanBooks    int `json:"clean_books"`
	RawRatings    int `json:"raw_ratings"`
	JoinedRatings int `json:"joined_ratings"`
	RatedBooks    int `json:"rated_books"`
}

// Stages returns the counts keyed by pipeline stage name.
func (c IngestCounts) Stages() map[string]int {
	return map[string]int{
		"raw_books":      c.RawBooks,
		"clean_books":    c.CleanBooks,
		"raw_ratings":    c.RawRatings,
		"joined_ratings": c.JoinedRatings,
		"rated_books":    c.RatedBooks,
	}
}

// Open connects to DuckDB and ingests the configured CSV files.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(ctx context.Context, cfg *config.DataConfig, logger zerolog.Logger) (*Loader, error) {
	books := dataPath(cfg.Dir, cfg.BooksFile)
	ratings := dataPath(cfg.Dir, cfg.RatingsFile)
	for _, p := range []string{books, ratings} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("data file %s: %w", p, err)
		}
	}

	if cfg.DuckDBPath != ":memory:" {
		if dir := filepath.Dir(cfg.DuckDBPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	configureConnectionPool(conn)

	l := &Loader{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With().Str("component", "database").Logger(),
	}

	if err := l.Ping(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	start := time.Now()
	if err := l.ingest(ctx, books, ratings); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ingest data: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordIngest(l.counts.Stages(), elapsed)

	l.logger.Info().
		Int("raw_books", l.counts.RawBooks).
		Int("clean_books", l.counts.CleanBooks).
		Int("raw_ratings", l.counts.RawRatings).
		Int("joined_ratings", l.counts.JoinedRatings).
		Int("rated_books", l.counts.RatedBooks).
		Dur("duration", elapsed).
		Msg("Book-Crossing data ingested")
	return l, nil
}

// connString builds the DuckDB DSN. Extension autoloading stays off since
// only core CSV functions are used.
func connString(cfg *config.DataConfig) string {
	path := cfg.DuckDBPath
	if path == ":memory:" {
		path = ""
	}
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, threads, cfg.MaxMemory)
}

func configureConnectionPool(conn *sql.DB) {
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)
}

func dataPath(dir, file string) string {
	if filepath.IsAbs(file) || dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

// ensureContext applies defaultQueryTimeout when ctx has no deadline.
func ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), defaultQueryTimeout)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, defaultQueryTimeout)
	}
	return ctx, func() {}
}

// Ping verifies the connection.
func (l *Loader) Ping(ctx context.Context) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	return l.conn.PingContext(ctx)
}

// Counts returns the row counts recorded during ingestion.
func (l *Loader) Counts() IngestCounts {
	return l.counts
}

// Conn returns the underlying connection.
func (l *Loader) Conn() *sql.DB {
	return l.conn
}

// Close releases the connection.
func (l *Loader) Close() error {
	if l.conn == nil {
		return nil
	}
	closeWithLog(l.conn, l.logger, "database connection")
	l.conn = nil
	return nil
}
