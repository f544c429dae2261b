// Package cache provides time-based caching for backend lookups.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the cache TTL used when an invalid value is provided.
const DefaultTTL = time.Minute

// DefaultMaxSize is the maximum cache size used when an invalid value is provided.
const DefaultMaxSize = 1000

// entry holds a cached value with its expiry.
type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// TTLCache provides time-based caching with expiration on read.
//
// Expired entries are dropped lazily (on Get and during eviction); there is
// no background cleanup goroutine, so the cache needs no Close.
type TTLCache[T any] struct {
	mu      sync.RWMutex
	items   map[string]entry[T]
	ttl     time.Duration
	maxSize int

	hits   atomic.Int64
	misses atomic.Int64

	// Singleflight for GetOrLoad to prevent thundering herd
	group singleflight.Group
}

// New creates a TTL cache.
//
// Parameters:
//   - ttl: Time-to-live for cache entries. If <= 0, defaults to 1 minute.
//   - maxSize: Maximum number of entries. If <= 0, defaults to 1000.
func New[T any](ttl time.Duration, maxSize int) *TTLCache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &TTLCache[T]{
		items:   make(map[string]entry[T]),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a value from cache.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	e, exists := c.items[key]
	if !exists || time.Now().After(e.expiresAt) {
		c.misses.Add(1)
		return zero, false
	}

	c.hits.Add(1)
	return e.value, true
}

// Set stores a value in cache.
func (c *TTLCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.maxSize {
		c.evictOldest()
	}

	c.items[key] = entry[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// GetOrLoad retrieves from cache or loads using the provided function.
//
// Singleflight ensures that concurrent misses for the same key run the
// loader only once and share the result.
func (c *TTLCache[T]) GetOrLoad(key string, loader func() (T, error)) (T, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another goroutine may have populated the cache while we waited.
		if val, ok := c.Get(key); ok {
			return val, nil
		}

		val, err := loader()
		if err != nil {
			return val, err
		}

		c.Set(key, val)
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return val.(T), nil
}

// Delete removes a key from the cache.
func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes all entries from the cache.
func (c *TTLCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]entry[T])
	c.hits.Store(0)
	c.misses.Store(0)
}

// Size returns the current number of entries, expired ones included.
func (c *TTLCache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns hit/miss counters and the current hit rate.
func (c *TTLCache[T]) Stats() (hits, misses int64, hitRate float64) {
	hits = c.hits.Load()
	misses = c.misses.Load()

	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return hits, misses, hitRate
}

// evictOldest removes an entry to make room for a new one. Expired entries go
// first; otherwise the entry closest to expiry is dropped. Callers must hold
// the write lock.
func (c *TTLCache[T]) evictOldest() {
	now := time.Now()

	for key, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, key)
			return
		}
	}

	var oldestKey string
	var oldestTime time.Time
	for key, e := range c.items {
		if oldestTime.IsZero() || e.expiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.expiresAt
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
