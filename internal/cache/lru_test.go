// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func size[K comparable, V any](c *LRU[K, V]) int {
	_, _, n := c.Stats()
	return n
}

func TestLRU_BasicOperations(t *testing.T) {
	c := New[string, int](3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := c.Get(key)
		if !ok || got != want {
			t.Errorf("Get(%q) = %d, %v; want %d, true", key, got, ok, want)
		}
	}
	if size(c) != 3 {
		t.Errorf("size = %d, want 3", size(c))
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := New[string, int](3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	c.Get("a")
	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected %s to be present", key)
		}
	}
}

func TestLRU_UpdateRefreshes(t *testing.T) {
	c := New[string, int](2, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("a", 10)
	c.Add("c", 3)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v; want 10, true", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted after a was refreshed")
	}
}

func TestLRU_TTL(t *testing.T) {
	c := New[string, int](10, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add("a", 1)
	c.Add("b", 2)
	now = now.Add(2 * time.Minute)
	c.Add("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be expired")
	}
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if size(c) != 1 {
		t.Errorf("size = %d, want 1", size(c))
	}
}

func TestLRU_Stats(t *testing.T) {
	c := New[string, int](5, time.Minute)
	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("z")

	hits, misses, n := c.Stats()
	if hits != 2 || misses != 1 || n != 1 {
		t.Errorf("Stats() = %d, %d, %d; want 2, 1, 1", hits, misses, n)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := New[string, int](100, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%150)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if size(c) > 100 {
		t.Errorf("size = %d, exceeds capacity", size(c))
	}
}
