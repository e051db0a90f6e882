// Package cache provides the bounded caches handed to renderers. Nothing in
// this module keeps a package-level cache; whoever builds a renderer decides
// how much it may remember.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a fixed-size least-recently-used cache, safe for concurrent use.
// A nil or zero-capacity LRU never stores anything.
type LRU[K comparable, V any] struct {
	inner    *lru.Cache[K, V]
	capacity int
}

// New returns an LRU holding at most capacity entries. Capacity <= 0
// disables caching: every Get misses.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		return &LRU[K, V]{}
	}
	inner, err := lru.New[K, V](capacity)
	if err != nil {
		return &LRU[K, V]{}
	}
	return &LRU[K, V]{inner: inner, capacity: capacity}
}

// Get returns the value stored for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	if c == nil || c.inner == nil {
		var zero V
		return zero, false
	}
	return c.inner.Get(key)
}

// Add stores value under key, evicting the least recently used entry when
// the cache is full. It reports whether an eviction happened.
func (c *LRU[K, V]) Add(key K, value V) bool {
	if c == nil || c.inner == nil {
		return false
	}
	return c.inner.Add(key, value)
}

// GetOrAdd returns the cached value for key, or calls fill, caches its
// result and returns it. Errors from fill are returned and not cached.
func (c *LRU[K, V]) GetOrAdd(key K, fill func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fill()
	if err != nil {
		return v, err
	}
	c.Add(key, v)
	return v, nil
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	if c == nil || c.inner == nil {
		return 0
	}
	return c.inner.Len()
}

// Cap returns the maximum number of entries, 0 when caching is disabled.
func (c *LRU[K, V]) Cap() int {
	if c == nil {
		return 0
	}
	return c.capacity
}

// Purge removes every entry.
func (c *LRU[K, V]) Purge() {
	if c == nil || c.inner == nil {
		return
	}
	c.inner.Purge()
}
