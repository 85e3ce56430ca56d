// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package metrics provides Prometheus metrics for the recommendation server.

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Ingestion Metrics:
  - folio_ingest_rows: Rows per cleaning stage (gauge)
    Labels: stage (raw_books, clean_books, raw_ratings, joined_ratings, rated_books)
  - folio_ingest_duration_seconds: Wall time of the last ingestion (gauge)

Model Metrics:
  - folio_model_build_duration_seconds: Fit time per model (gauge)
    Labels: model (collaborative, content)
  - folio_catalog_books: Books in the catalog (gauge)
  - folio_interactions: Rating log size (gauge)
    Labels: log (full, filtered)
  - folio_collab_matrix_items / folio_collab_matrix_users: User-item matrix shape (gauge)
  - folio_collab_matrix_nonzero: Stored user-item cells (gauge)
  - folio_collab_matrix_sparsity: Empty cell share (gauge)
  - folio_content_documents / folio_content_vocabulary: TF-IDF shape (gauge)

Query Metrics:
  - folio_recommendations_total: Facade calls (counter)
    Labels: operation
  - folio_recommendation_duration_seconds: Facade latency (histogram)
    Labels: operation
  - folio_recommendation_empty_total: Calls that returned nothing (counter)
    Labels: operation
  - folio_recommend_cache_hits_total / folio_recommend_cache_misses_total (counter)

# Thread Safety

All collectors are registered with the default registry at init and are
safe for concurrent use.
*/
package metrics
