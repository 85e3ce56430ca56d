// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingCleaner struct {
	calls atomic.Int32
}

func (c *countingCleaner) CleanupCache() int {
	c.calls.Add(1)
	return 1
}

func TestCacheMaintenanceService(t *testing.T) {
	cleaner := &countingCleaner{}
	svc := NewCacheMaintenanceService(cleaner, 10*time.Millisecond, zerolog.New(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 75*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want DeadlineExceeded", err)
	}
	if got := cleaner.calls.Load(); got < 3 {
		t.Errorf("CleanupCache called %d times, want at least 3", got)
	}
}

func TestNewCacheMaintenanceService_Defaults(t *testing.T) {
	svc := NewCacheMaintenanceService(&countingCleaner{}, 0, zerolog.New(io.Discard))
	if svc.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", svc.interval)
	}
	if svc.String() != "cache-maintenance" {
		t.Errorf("String() = %q", svc.String())
	}
}
