// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package database cleans the Book-Crossing CSV exports with DuckDB and
// serves them to the recommendation engine.
//
// # Overview
//
// The CSV files are read with DuckDB's read_csv into three staging tables:
//
//   - books_clean: one row per ISBN, rows without author, publisher or large
//     cover URL dropped, Year-Of-Publication coerced and range checked
//   - ratings_clean: the rating log inner-joined with books_clean, in file order
//   - book_averages: mean rating per ISBN rounded to one decimal
//
// The catalog is books_clean inner-joined with book_averages, ordered by ISBN.
// Books nobody rated are not part of the catalog.
//
// # Usage
//
//	loader, err := database.Open(ctx, &cfg.Data, logger)
//	if err != nil {
//	    return err
//	}
//	defer loader.Close()
//
//	catalog, err := recommend.LoadCatalog(ctx, loader)
//
// Loader implements recommend.CatalogProvider.
//
// # Thread Safety
//
// Loader is safe for concurrent use once Open returns.
package database
