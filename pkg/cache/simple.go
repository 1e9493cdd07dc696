package cache

import (
	"sync"
)

// simpleCache is a thread-safe cache with no eviction policy.
// It stores entries indefinitely until explicitly purged.
type simpleCache[V any] struct {
	mu      sync.RWMutex
	items   map[string]V
	stats   *Statistics   // always initialized
	metrics *cacheMetrics // optional
}

// Get retrieves a value by key.
func (c *simpleCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	value, exists := c.items[key]
	c.mu.RUnlock()

	if exists {
		c.stats.Hit()
		if c.metrics != nil {
			c.metrics.recordHit()
		}
	} else {
		c.stats.Miss()
		if c.metrics != nil {
			c.metrics.recordMiss()
		}
	}
	return value, exists
}

// Set stores a value under key, overwriting any previous entry.
func (c *simpleCache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.items[key] = value
	size := len(c.items)
	c.mu.Unlock()

	c.stats.Store()
	c.stats.UpdateSize(int64(size))
	if c.metrics != nil {
		c.metrics.recordStore(size)
	}
}

// GetOrCompute returns the cached value for key or computes and stores
// it. Racing readers may both compute; the stores are idempotent.
func (c *simpleCache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, value)
	return value, nil
}

// Len returns the current number of entries.
func (c *simpleCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Purge removes all entries.
func (c *simpleCache[V]) Purge() {
	c.mu.Lock()
	c.items = make(map[string]V)
	c.mu.Unlock()

	c.stats.UpdateSize(0)
	if c.metrics != nil {
		c.metrics.recordSize(0)
	}
}

// Stats returns the statistics tracker.
func (c *simpleCache[V]) Stats() *Statistics {
	return c.stats
}
