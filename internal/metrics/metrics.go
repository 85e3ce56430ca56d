// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Ingestion Metrics
	IngestRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "folio_ingest_rows",
			Help: "Rows remaining after each cleaning stage",
		},
		[]string{"stage"},
	)

	IngestDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_ingest_duration_seconds",
			Help: "Duration of the last CSV ingestion in seconds",
		},
	)

	// Model Metrics
	ModelBuildDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "folio_model_build_duration_seconds",
			Help: "Duration of the last model fit in seconds",
		},
		[]string{"model"},
	)

	CatalogBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_catalog_books",
			Help: "Number of books in the catalog",
		},
	)

	Interactions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "folio_interactions",
			Help: "Number of ratings in the full and filtered logs",
		},
		[]string{"log"}, // "full", "filtered"
	)

	CollabMatrixItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_collab_matrix_items",
			Help: "Rows (books) in the user-item matrix",
		},
	)

	CollabMatrixUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_collab_matrix_users",
			Help: "Columns (users) in the user-item matrix",
		},
	)

	CollabMatrixNonZero = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_collab_matrix_nonzero",
			Help: "Stored cells in the user-item matrix",
		},
	)

	CollabMatrixSparsity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_collab_matrix_sparsity",
			Help: "Share of empty cells in the user-item matrix, 0-100",
		},
	)

	ContentDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_content_documents",
			Help: "Documents in the TF-IDF matrix",
		},
	)

	ContentVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_content_vocabulary",
			Help: "Terms in the TF-IDF vocabulary",
		},
	)

	// Query Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_recommendations_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"operation"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_recommendation_duration_seconds",
			Help:    "Recommendation query duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	RecommendationEmpty = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_recommendation_empty_total",
			Help: "Recommendation queries that returned no results",
		},
		[]string{"operation"},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)
)

// RecordAPIRequest records an API request with its status and duration
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordIngest publishes row counts per cleaning stage
func RecordIngest(stages map[string]int, duration time.Duration) {
	for stage, rows := range stages {
		IngestRows.WithLabelValues(stage).Set(float64(rows))
	}
	IngestDuration.Set(duration.Seconds())
}

// RecordModelBuild records how long a model took to fit
func RecordModelBuild(model string, duration time.Duration) {
	ModelBuildDuration.WithLabelValues(model).Set(duration.Seconds())
}

// SetCatalogSize publishes the catalog and rating log sizes
func SetCatalogSize(books, interactions, filtered int) {
	CatalogBooks.Set(float64(books))
	Interactions.WithLabelValues("full").Set(float64(interactions))
	Interactions.WithLabelValues("filtered").Set(float64(filtered))
}

// SetCollabShape publishes the user-item matrix shape
func SetCollabShape(items, users, nonZero int, sparsity float64) {
	CollabMatrixItems.Set(float64(items))
	CollabMatrixUsers.Set(float64(users))
	CollabMatrixNonZero.Set(float64(nonZero))
	CollabMatrixSparsity.Set(sparsity)
}

// SetContentShape publishes the TF-IDF matrix shape
func SetContentShape(documents, vocabulary int) {
	ContentDocuments.Set(float64(documents))
	ContentVocabulary.Set(float64(vocabulary))
}

// RecordRecommendation records one facade call
func RecordRecommendation(operation string, results int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(operation).Inc()
	RecommendationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if results == 0 {
		RecommendationEmpty.WithLabelValues(operation).Inc()
	}
}

// RecordCacheLookup counts a recommendation cache hit or miss
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}
