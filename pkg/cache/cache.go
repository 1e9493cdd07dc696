// Package cache provides generic, thread-safe caches used by the unit
// registry to memoize resolution results (dimensionality and base-factor
// reductions keyed by a container's canonical form).
//
// Two implementations are offered:
//   - SimpleCache: no eviction, stores entries indefinitely
//   - LRUCache: least-recently-used eviction above a size bound
//
// Entries never expire: the registry rejects redefinition, so a cached
// reduction can never go stale. Statistics are always collected;
// Prometheus export is optional via functional options.
//
// GetOrCompute is the primary memoization entry point. It is idempotent
// compute-and-store: two racing readers may both compute the value, and
// the second store is a harmless overwrite of an identical result, so
// readers never block each other on computation.
package cache

import (
	"fmt"

	"github.com/tohch4/pinty/errors"
)

// Cache is the interface satisfied by all cache implementations.
// The cache is parameterized by value type V. Keys are canonical-form
// strings; the empty key is valid (it is the dimensionless container).
type Cache[V any] interface {
	// Get retrieves a value by key. Returns the value and true if found,
	// the zero value and false otherwise.
	Get(key string) (V, bool)

	// Set stores a value under key, overwriting any previous entry.
	Set(key string, value V)

	// GetOrCompute returns the cached value for key, or runs compute,
	// stores its result and returns it. Errors from compute are returned
	// without caching anything.
	GetOrCompute(key string, compute func() (V, error)) (V, error)

	// Len returns the current number of entries.
	Len() int

	// Purge removes all entries.
	Purge()

	// Stats returns the cache statistics tracker.
	Stats() *Statistics
}

// New builds a cache sized for registry memoization: unbounded when
// maxSize <= 0, LRU-bounded otherwise.
func New[V any](maxSize int, options ...Option) (Cache[V], error) {
	if maxSize <= 0 {
		return NewSimple[V](options...)
	}
	return NewLRU[V](maxSize, options...)
}

// NewSimple creates a cache with no eviction policy.
func NewSimple[V any](options ...Option) (Cache[V], error) {
	opts := applyOptions(options...)
	metrics, err := maybeMetrics(opts, "NewSimple")
	if err != nil {
		return nil, err
	}
	return &simpleCache[V]{
		items:   make(map[string]V),
		stats:   NewStatistics(),
		metrics: metrics,
	}, nil
}

// NewLRU creates a cache that evicts the least recently used entry once
// maxSize is exceeded.
func NewLRU[V any](maxSize int, options ...Option) (Cache[V], error) {
	if maxSize <= 0 {
		return nil, errors.WrapInvalid(fmt.Errorf("max size must be positive, got %d", maxSize), "cache", "NewLRU", "validate max size")
	}
	opts := applyOptions(options...)
	metrics, err := maybeMetrics(opts, "NewLRU")
	if err != nil {
		return nil, err
	}
	return newLRUCache[V](maxSize, metrics), nil
}

func maybeMetrics(opts *cacheOptions, constructor string) (*cacheMetrics, error) {
	if opts.metricsReg == nil || opts.metricsPrefix == "" {
		return nil, nil
	}
	metrics, err := newCacheMetrics(opts.metricsReg, opts.metricsPrefix)
	if err != nil {
		return nil, errors.WrapInvalid(err, "cache", constructor, "metrics registration")
	}
	return metrics, nil
}
