// Package cache provides a bounded in-memory cache with per-entry TTL.
//
// Entries expire lazily: a stale entry is evicted by the read that finds
// it, there is no background sweeper. The LRU bound keeps the cache from
// growing without limit under many distinct keys (e.g. per-user entries).
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a size-bounded TTL cache keyed by string. It is safe for
// concurrent use. Racing writers for the same key overwrite each other;
// recomputation is cheap so that is acceptable.
type Cache[V any] struct {
	lru *lru.Cache[string, entry[V]]
	now func() time.Time
}

// New creates a cache holding at most size entries. Sizes below one are
// clamped to one, so construction cannot fail.
func New[V any](size int) *Cache[V] {
	if size < 1 {
		size = 1
	}
	l, _ := lru.New[string, entry[V]](size)
	return &Cache[V]{lru: l, now: time.Now}
}

// Put stores value under key with an absolute expiry of now+ttl,
// overwriting any previous entry.
func (c *Cache[V]) Put(key string, value V, ttl time.Duration) {
	c.lru.Add(key, entry[V]{value: value, expiresAt: c.now().Add(ttl)})
}

// Get returns the value for key if present and unexpired. An expired
// entry is removed as a side effect of the lookup.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	e, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.lru.Remove(key)
		return zero, false
	}
	return e.value, true
}

// Len returns the number of entries currently stored, including any
// that have expired but not yet been evicted by a read.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
