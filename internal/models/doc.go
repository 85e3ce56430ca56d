// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package models defines the HTTP request and response structures.

Key Components:

  - APIResponse: Standard response wrapper with status, data, metadata and error
  - RecommendationsResponse: Ranked results plus the resolved seed
  - HealthResponse, StatsResponse: Operational endpoints

Catalog data types (Book, Recommendation) live in internal/recommend and are
embedded here unchanged.
*/
package models
