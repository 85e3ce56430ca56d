// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import (
	"time"

	"github.com/tomtom215/folio/internal/recommend"
)

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"method": "hybrid", "count": 2, "recommendations": [...]},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z", "query_time_ms": 3}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "n must be at least 1"},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Codes:
//   - VALIDATION_ERROR: malformed query parameters (400)
//   - INVALID_ARGUMENT: rejected by the engine, e.g. unknown method (400)
//   - NOT_FOUND: unknown ISBN on the book endpoint (404)
//   - RATE_LIMITED: too many requests (429)
//   - RECOMMENDATION_ERROR: unexpected engine failure (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendationsResponse is the payload of every ranking endpoint.
// Seed is set when the query resolved to a catalog book.
type RecommendationsResponse struct {
	Method          string                     `json:"method,omitempty"`
	Seed            *recommend.Book            `json:"seed,omitempty"`
	UserID          *int                       `json:"user_id,omitempty"`
	Count           int                        `json:"count"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// HealthResponse reports liveness and catalog readiness.
type HealthResponse struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	Books         int       `json:"books"`
	Interactions  int       `json:"interactions"`
	BuiltAt       time.Time `json:"built_at"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

// StatsResponse exposes the startup build and the live query counters.
type StatsResponse struct {
	Build  recommend.BuildStats    `json:"build"`
	Engine recommend.EngineMetrics `json:"engine"`
	System SystemStats             `json:"system"`
}

// SystemStats is a snapshot of process and host memory. Host fields are
// zero when the platform does not report them.
type SystemStats struct {
	NumGoroutine int    `json:"num_goroutine"`
	HeapAlloc    uint64 `json:"heap_alloc_bytes"`
	Sys          uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`

	TotalRAM       uint64  `json:"total_ram_bytes"`
	AvailableRAM   uint64  `json:"available_ram_bytes"`
	UsedRAMPercent float64 `json:"used_ram_percent"`
}
