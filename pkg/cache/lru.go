package cache

import (
	"container/list"
	"sync"
)

// lruEntry represents an entry in the LRU cache.
type lruEntry[V any] struct {
	key   string
	value V
}

// lruCache is a thread-safe LRU (Least Recently Used) cache.
// It evicts the least recently used entry once maxSize is exceeded.
type lruCache[V any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element // key -> list element
	order   *list.List               // doubly-linked list for LRU ordering
	stats   *Statistics
	metrics *cacheMetrics
}

func newLRUCache[V any](maxSize int, metrics *cacheMetrics) *lruCache[V] {
	return &lruCache[V]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		stats:   NewStatistics(),
		metrics: metrics,
	}
}

// Get retrieves a value by key and marks it as recently used.
func (c *lruCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	element, exists := c.items[key]
	if exists {
		c.order.MoveToFront(element)
	}
	c.mu.Unlock()

	if !exists {
		c.stats.Miss()
		if c.metrics != nil {
			c.metrics.recordMiss()
		}
		var zero V
		return zero, false
	}

	c.stats.Hit()
	if c.metrics != nil {
		c.metrics.recordHit()
	}
	return element.Value.(*lruEntry[V]).value, true
}

// Set stores a value under key and marks it as recently used, evicting
// the oldest entry if the cache is over capacity.
func (c *lruCache[V]) Set(key string, value V) {
	c.mu.Lock()
	if element, exists := c.items[key]; exists {
		element.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(element)
	} else {
		c.items[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
	}

	evicted := 0
	for c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*lruEntry[V]).key)
		evicted++
	}
	size := len(c.items)
	c.mu.Unlock()

	c.stats.Store()
	c.stats.UpdateSize(int64(size))
	for i := 0; i < evicted; i++ {
		c.stats.Eviction()
	}
	if c.metrics != nil {
		c.metrics.recordStore(size)
		for i := 0; i < evicted; i++ {
			c.metrics.recordEviction()
		}
	}
}

// GetOrCompute returns the cached value for key or computes and stores
// it. Racing readers may both compute; the stores are idempotent.
func (c *lruCache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
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
func (c *lruCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Purge removes all entries.
func (c *lruCache[V]) Purge() {
	c.mu.Lock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.mu.Unlock()

	c.stats.UpdateSize(0)
	if c.metrics != nil {
		c.metrics.recordSize(0)
	}
}

// Stats returns the statistics tracker.
func (c *lruCache[V]) Stats() *Statistics {
	return c.stats
}
