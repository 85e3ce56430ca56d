// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package main is the entry point for the Folio server.
//
// Folio serves book recommendations from the Book-Crossing dataset. All
// models are built once at startup; the HTTP API is read-only.
//
// # Startup
//
//  1. Configuration: struct defaults, optional YAML file, environment (Koanf v2)
//  2. Logging: zerolog, level and format from LOG_LEVEL and LOG_FORMAT
//  3. Ingest: the CSVs are read and cleaned in an embedded DuckDB
//  4. Catalog: cleaned books and joined ratings are loaded into memory
//  5. Models: popularity, collaborative, content and hybrid are fitted
//  6. Supervisor tree: cache maintenance and the HTTP server
//
// Any failure in steps 1 to 5 is fatal. The process never serves a partial
// engine.
//
// # Example
//
//	export DATA_DIR=./data
//	export MIN_BOOK_RATINGS=50 MIN_USER_RATINGS=5
//	./folio
//	curl 'localhost:8080/api/v1/books/0439064872/recommendations?n=5&method=hybrid'
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains
// in-flight requests before the DuckDB handle is closed.
package main
