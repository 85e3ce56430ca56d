// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// histogramCount returns how many observations h has recorded.
func histogramCount(t *testing.T, h prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := h.(prometheus.Metric)
	if !ok {
		t.Fatalf("%T is not a prometheus.Metric", h)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/books/popular", "200"))

	RecordAPIRequest("GET", "/api/v1/books/popular", "200", 3*time.Millisecond)
	RecordAPIRequest("GET", "/api/v1/books/popular", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/books/popular", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total increased by %v, want 2", after-before)
	}
	if got := histogramCount(t, APIRequestDuration.WithLabelValues("GET", "/api/v1/books/popular")); got < 2 {
		t.Errorf("api_request_duration_seconds count = %d, want >= 2", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests = %v, want %v", got, before)
	}
}

func TestRecordIngest(t *testing.T) {
	RecordIngest(map[string]int{"raw_books": 10, "clean_books": 4}, 2*time.Second)

	if got := testutil.ToFloat64(IngestRows.WithLabelValues("clean_books")); got != 4 {
		t.Errorf("clean_books = %v, want 4", got)
	}
	if got := testutil.ToFloat64(IngestDuration); got != 2 {
		t.Errorf("ingest duration = %v, want 2", got)
	}
}

func TestModelGauges(t *testing.T) {
	RecordModelBuild("content", 1500*time.Millisecond)
	SetCatalogSize(3, 15, 12)
	SetCollabShape(3, 10, 15, 50)
	SetContentShape(3, 7)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"build", ModelBuildDuration.WithLabelValues("content"), 1.5},
		{"books", CatalogBooks, 3},
		{"full log", Interactions.WithLabelValues("full"), 15},
		{"filtered log", Interactions.WithLabelValues("filtered"), 12},
		{"items", CollabMatrixItems, 3},
		{"users", CollabMatrixUsers, 10},
		{"nonzero", CollabMatrixNonZero, 15},
		{"sparsity", CollabMatrixSparsity, 50},
		{"documents", ContentDocuments, 3},
		{"vocabulary", ContentVocabulary, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRecordRecommendation(t *testing.T) {
	total := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("isbn"))
	empty := testutil.ToFloat64(RecommendationEmpty.WithLabelValues("isbn"))

	observed := histogramCount(t, RecommendationDuration.WithLabelValues("isbn"))

	RecordRecommendation("isbn", 5, time.Millisecond)
	RecordRecommendation("isbn", 0, time.Millisecond)

	if got := histogramCount(t, RecommendationDuration.WithLabelValues("isbn")) - observed; got != 2 {
		t.Errorf("recommendation_duration_seconds count delta = %d, want 2", got)
	}

	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("isbn")) - total; got != 2 {
		t.Errorf("recommendations_total delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(RecommendationEmpty.WithLabelValues("isbn")) - empty; got != 1 {
		t.Errorf("recommendation_empty_total delta = %v, want 1", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(RecommendCacheHits)
	misses := testutil.ToFloat64(RecommendCacheMisses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	if got := testutil.ToFloat64(RecommendCacheHits) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendCacheMisses) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordRateLimitHit("/api/v1/books/popular")

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric %s: %s", p.Metric, p.Text)
	}
}
