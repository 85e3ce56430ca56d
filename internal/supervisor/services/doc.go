// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package services wraps Folio components as suture.Service values.
//
// HTTPServerService adapts *http.Server to suture's Serve(ctx) contract and
// shuts the server down gracefully when the context is canceled.
// CacheMaintenanceService periodically drops expired entries from the
// engine's result cache.
package services
