// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package middleware provides HTTP middleware shared by the API router.

Middleware:

  - RequestID: assigns X-Request-ID (UUID v4 unless the client sent one) and
    seeds the logging context with request and correlation IDs
  - PrometheusMetrics: records api_requests_total and api_request_duration_seconds
    labelled by chi route pattern, so path parameters do not explode cardinality
  - AccessLog: one structured log line per request, warn level for 5xx and
    for requests slower than the configured threshold

All middleware follow the func(http.Handler) http.Handler shape used by chi.
*/
package middleware
