// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package api serves the recommendation engine over HTTP using the chi router.

# Routes

	GET /api/v1/health                          liveness and catalog summary
	GET /api/v1/stats                           build statistics and query counters
	GET /api/v1/books/popular                   ?n=&min_ratings=
	GET /api/v1/books/{isbn}                    catalog row, 404 if absent
	GET /api/v1/books/{isbn}/recommendations    ?n=&method=
	GET /api/v1/recommendations/title           ?q=&n=&method=
	GET /api/v1/users/{userID}/recommendations  ?n=&method=
	GET /metrics                                Prometheus exposition

n defaults to recommend.default_n and is capped at recommend.max_n, method
defaults to hybrid and min_ratings to recommend.default_min_ratings.

# Responses

Every JSON endpoint answers with models.APIResponse. Empty rankings are a 200
with an empty recommendations array.

# Errors

  - VALIDATION_ERROR (400): malformed or out-of-range query parameters
  - INVALID_ARGUMENT (400): rejected by the engine
  - NOT_FOUND (404): unknown ISBN or route
  - RATE_LIMITED (429): per-IP limit exceeded
  - RECOMMENDATION_ERROR (500): unexpected engine failure
*/
package api
