// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package algorithms implements the signal models behind recommend.Engine.
//
//   - Popularity: (average rating, rating count) ranking over the full log
//   - Collaborative: item-item cosine over the filtered user-item matrix
//   - Content: book-book cosine over TF-IDF vectors
//   - Hybrid: weighted blend of Collaborative and Content
//
// Every model is fitted once from a recommend.Catalog and is read-only
// afterwards, so queries need no locking.
package algorithms
