package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures cache behavior using the functional options pattern.
type Option func(*cacheOptions)

// cacheOptions holds internal configuration for cache instances.
// Stats are always collected; Prometheus export is opt-in.
type cacheOptions struct {
	metricsReg    prometheus.Registerer
	metricsPrefix string
}

// WithMetrics enables Prometheus export for cache statistics. The
// prefix becomes the "cache" label so multiple caches can share one
// registerer. If registerer or prefix is empty the option is ignored.
func WithMetrics(registerer prometheus.Registerer, prefix string) Option {
	return func(opts *cacheOptions) {
		if registerer != nil && prefix != "" {
			opts.metricsReg = registerer
			opts.metricsPrefix = prefix
		}
	}
}

// applyOptions applies functional options to build the final cache
// configuration. Internal helper used by cache constructors.
func applyOptions(options ...Option) *cacheOptions {
	opts := &cacheOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	return opts
}
