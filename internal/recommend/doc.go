// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package recommend holds the book recommendation engine.
//
// # Architecture
//
// A Catalog snapshot (books plus the full rating log) is built once at
// startup and never mutated. Three signal models are fitted from it:
//
//   - Popularity: ranks books by (average rating, rating count)
//   - Collaborative: item-item cosine over a user-item rating matrix
//   - Content: book-book cosine over TF-IDF vectors of author, publisher and title
//
// A hybrid model blends the collaborative and content lists with a weighted
// sum. Engine sits on top and answers the four query shapes: popular books,
// books similar to an ISBN, books similar to a title match, and books for a
// user.
//
// The models live in the algorithms subpackage and are plugged into Engine
// through the PopularityModel and SimilarityModel interfaces.
//
// # Usage
//
//	catalog, err := recommend.LoadCatalog(ctx, loader)
//	models, stats, err := algorithms.Build(ctx, catalog, cfg, logger)
//	engine, err := recommend.NewEngine(cfg, catalog, models, stats, logger)
//
//	recs, err := engine.RecommendByTitle(ctx, "harry potter", 10, recommend.MethodHybrid)
//
// # Errors
//
// A seed that no model knows about yields an empty, non-nil slice. Unknown
// methods and negative n wrap ErrInvalidArgument. Unusable input tables wrap
// ErrInitialization.
//
// # Thread Safety
//
// Everything built at startup is read-only afterwards, so Engine is safe for
// concurrent queries without locking. The result cache has its own lock.
package recommend
