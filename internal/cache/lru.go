// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package cache provides an in-memory TTL LRU used to memoize query results.
package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	defaultCapacity = 10000
	defaultTTL      = 5 * time.Minute
)

type item[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

// LRU is a least recently used cache with a fixed TTL per entry. It is safe
// for concurrent use. Expired entries are dropped when read or by
// CleanupExpired.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front is most recent
	index    map[K]*list.Element
	hits     int64
	misses   int64
	now      func() time.Time
}

// New returns an LRU that holds up to capacity entries for ttl each. Zero or
// negative arguments select 10000 entries and five minutes.
func New[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		index:    make(map[K]*list.Element, capacity),
		now:      time.Now,
	}
}

// Get returns the cached value and promotes it. An expired entry counts as
// a miss.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		it := el.Value.(*item[K, V])
		if !c.now().After(it.expires) {
			c.order.MoveToFront(el)
			c.hits++
			return it.value, true
		}
		c.drop(el)
	}
	c.misses++
	var zero V
	return zero, false
}

// Add stores value under key with a fresh TTL. Overflow evicts from the
// back of the recency list.
func (c *LRU[K, V]) Add(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if el, ok := c.index[key]; ok {
		it := el.Value.(*item[K, V])
		it.value, it.expires = value, expires
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(&item[K, V]{key: key, value: value, expires: expires})
	for c.order.Len() > c.capacity {
		c.drop(c.order.Back())
	}
}

// CleanupExpired sweeps expired entries and returns the number removed.
func (c *LRU[K, V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		next := el.Prev()
		if now.After(el.Value.(*item[K, V]).expires) {
			c.drop(el)
			removed++
		}
		el = next
	}
	return removed
}

// Stats returns hits, misses and the current entry count, including
// expired entries not yet swept.
func (c *LRU[K, V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.order.Len()
}

// drop requires mu.
func (c *LRU[K, V]) drop(el *list.Element) {
	it := c.order.Remove(el).(*item[K, V])
	delete(c.index, it.key)
}
