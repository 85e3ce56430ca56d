// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/models"
)

// Health handles GET /api/v1/health. The process only serves once every
// model is built, so reaching this handler means the engine is ready.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats := h.engine.Stats()

	respondSuccess(w, r, start, &models.HealthResponse{
		Status:        "healthy",
		Version:       h.config.Version,
		Books:         stats.Books,
		Interactions:  stats.FilteredInteractions,
		BuiltAt:       stats.BuiltAt,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, start, &models.StatsResponse{
		Build:  h.engine.Stats(),
		Engine: h.engine.GetMetrics(),
		System: systemStats(r),
	})
}

func systemStats(r *http.Request) models.SystemStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := models.SystemStats{
		NumGoroutine: runtime.NumGoroutine(),
		HeapAlloc:    ms.HeapAlloc,
		Sys:          ms.Sys,
		NumGC:        ms.NumGC,
	}

	vm, err := mem.VirtualMemoryWithContext(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Host memory unavailable")
		return stats
	}
	stats.TotalRAM = vm.Total
	stats.AvailableRAM = vm.Available
	stats.UsedRAMPercent = vm.UsedPercent
	return stats
}
