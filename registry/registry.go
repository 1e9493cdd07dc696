// Package registry implements the unit registry and dimensional-algebra
// engine: it owns the unit and prefix definition tables, resolves names
// and aliases (including prefixed forms synthesized on first use),
// reduces compound units to a canonical dimensionality and base-unit
// factor, and computes conversion factors between compatible units,
// optionally bridged by scoped contexts.
//
// A Registry is read-mostly shared state. Definitions are registered up
// front (Define takes the write lock, atomically); resolution and
// conversion afterwards run under the read lock with memoized
// reductions, so concurrent readers never block each other on
// computation.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tohch4/pinty/definition"
	"github.com/tohch4/pinty/errors"
	"github.com/tohch4/pinty/metric"
	"github.com/tohch4/pinty/pkg/cache"
	"github.com/tohch4/pinty/unit"
)

// ResolvedUnit is a unit definition as the registry holds it: the
// canonical name plus the compiled reference expression, scale, offset
// and logarithmic parameters. Prefixed units resolved on demand (e.g.
// "kilometer" from "kilo" + "meter") look exactly like registered ones.
type ResolvedUnit struct {
	Name      string
	Symbol    string
	Aliases   []string
	IsBase    bool
	Dimension string         // set for base units only
	Reference unit.Container // empty for base units
	Scale     float64
	Offset    float64
	Log       *definition.LogScale
	Prefixed  bool // synthesized from prefix + unit, not registered explicitly
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus metrics. Nil disables instrumentation.
func WithMetrics(metrics *metric.Metrics) Option {
	return func(r *Registry) {
		r.metrics = metrics
	}
}

// WithCacheSize bounds the memoization caches with LRU eviction.
// Sizes <= 0 (the default) leave them unbounded.
func WithCacheSize(size int) Option {
	return func(r *Registry) {
		r.cacheSize = size
	}
}

// Registry owns all unit and prefix definitions and answers resolution
// and conversion queries against them.
type Registry struct {
	id        string
	logger    *slog.Logger
	metrics   *metric.Metrics
	cacheSize int

	mu       sync.RWMutex
	dims     map[string]struct{}
	units    map[string]*ResolvedUnit     // canonical name -> definition
	index    map[string]string            // name, symbol or alias -> canonical name
	prefixes map[string]definition.Prefix // prefix name, symbol or alias -> record

	dimCache    cache.Cache[unit.Dimensionality]
	factorCache cache.Cache[reduced]
}

// New creates an empty registry. Populate it with Define or Load.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		id:       uuid.NewString(),
		logger:   slog.Default(),
		dims:     make(map[string]struct{}),
		units:    make(map[string]*ResolvedUnit),
		index:    make(map[string]string),
		prefixes: make(map[string]definition.Prefix),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.logger = r.logger.With("registry", r.id)

	var err error
	if r.dimCache, err = cache.New[unit.Dimensionality](r.cacheSize); err != nil {
		return nil, errors.Wrap(err, "Registry", "New", "create dimensionality cache")
	}
	if r.factorCache, err = cache.New[reduced](r.cacheSize); err != nil {
		return nil, errors.Wrap(err, "Registry", "New", "create factor cache")
	}
	return r, nil
}

// NewDefault creates a registry populated with the embedded default
// definition pack (SI plus common non-SI units).
func NewDefault(opts ...Option) (*Registry, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Load(definition.DefaultPack()); err != nil {
		return nil, errors.Wrap(err, "Registry", "NewDefault", "load default pack")
	}
	return r, nil
}

// ID returns the registry's unique identity. Derived caches are owned
// per registry, so identity never needs to appear in cache keys; the ID
// exists for logging and diagnostics.
func (r *Registry) ID() string {
	return r.id
}

// Load registers every record of a pack: dimensions, then prefixes,
// then units in order. It stops at the first failing record.
func (r *Registry) Load(pack definition.Pack) error {
	for _, d := range pack.Dimensions {
		if err := r.Define(d); err != nil {
			return err
		}
	}
	for _, p := range pack.Prefixes {
		if err := r.Define(p); err != nil {
			return err
		}
	}
	for _, u := range pack.Units {
		if err := r.Define(u); err != nil {
			return err
		}
	}
	return nil
}

// Define registers one definition record: a definition.Dimension,
// definition.Prefix or definition.Unit. Registration is atomic: on any
// error the registry is exactly as it was before the call.
func (r *Registry) Define(record definition.Record) error {
	if record == nil {
		return errors.WrapInvalid(errors.ErrEmptyName, "Registry", "Define", "validate record")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch rec := record.(type) {
	case definition.Dimension:
		return r.defineDimensionLocked(rec)
	case definition.Prefix:
		return r.definePrefixLocked(rec)
	case definition.Unit:
		return r.defineUnitLocked(rec)
	default:
		return errors.WrapInvalid(
			fmt.Errorf("unsupported record type %T", record),
			"Registry", "Define", "dispatch record")
	}
}

func (r *Registry) defineDimensionLocked(rec definition.Dimension) error {
	if _, exists := r.dims[rec.Name]; exists {
		return &errors.RedefinitionError{Name: rec.Name, Kind: "dimension"}
	}
	r.dims[rec.Name] = struct{}{}
	r.metrics.DefinitionCount("dimension", len(r.dims))
	r.logger.Debug("dimension defined", "name", rec.Name)
	return nil
}

func (r *Registry) definePrefixLocked(rec definition.Prefix) error {
	tokens := append([]string{rec.Name}, rec.Aliases...)
	if rec.Symbol != "" {
		tokens = append(tokens, rec.Symbol)
	}
	for _, token := range tokens {
		if _, exists := r.prefixes[token]; exists {
			return &errors.RedefinitionError{Name: token, Kind: "prefix"}
		}
	}
	for _, token := range tokens {
		r.prefixes[token] = rec
	}
	r.metrics.DefinitionCount("prefix", r.countPrefixesLocked())
	r.logger.Debug("prefix defined", "name", rec.Name, "factor", rec.Factor)
	return nil
}

func (r *Registry) defineUnitLocked(rec definition.Unit) error {
	tokens := append([]string{rec.Name}, rec.Aliases...)
	if rec.Symbol != "" {
		tokens = append(tokens, rec.Symbol)
	}
	for _, token := range tokens {
		if _, exists := r.index[token]; exists {
			return &errors.RedefinitionError{Name: token, Kind: "unit"}
		}
	}

	if rec.IsBase() {
		if _, known := r.dims[rec.Dimension]; !known {
			return errors.WrapInvalid(
				fmt.Errorf("%w: %q", errors.ErrUnknownDimension, rec.Dimension),
				"Registry", "Define", "validate base unit")
		}
	} else {
		// Referential integrity: every name in the reference expression
		// must already resolve. Prefix synthesis may register prefixed
		// units as a side effect, which is fine even if this record is
		// later rejected: a synthesized unit is valid on its own.
		for _, name := range rec.ReferenceContainer().Names() {
			if _, err := r.resolveLocked(name); err != nil {
				return errors.Wrap(err, "Registry", "Define", "resolve reference of "+rec.Name)
			}
		}
	}

	resolved := &ResolvedUnit{
		Name:      rec.Name,
		Symbol:    rec.Symbol,
		Aliases:   rec.Aliases,
		IsBase:    rec.IsBase(),
		Dimension: rec.Dimension,
		Reference: rec.ReferenceContainer(),
		Scale:     rec.EffectiveScale(),
		Offset:    rec.Offset,
		Log:       rec.Logarithmic,
	}
	r.units[rec.Name] = resolved
	for _, token := range tokens {
		r.index[token] = rec.Name
	}
	r.metrics.DefinitionCount("unit", len(r.units))
	r.logger.Debug("unit defined",
		"name", rec.Name,
		"base", resolved.IsBase,
		"scale", resolved.Scale,
		"offset", resolved.Offset)
	return nil
}

func (r *Registry) countPrefixesLocked() int {
	seen := make(map[string]struct{}, len(r.prefixes))
	for _, p := range r.prefixes {
		seen[p.Name] = struct{}{}
	}
	return len(seen)
}

// Resolve looks up a unit by name, symbol or alias. When the plain name
// is unknown it attempts a prefix split ("kilometer" = "kilo"+"meter",
// "km" = "k"+"m"); the synthesized unit is registered for reuse.
func (r *Registry) Resolve(name string) (*ResolvedUnit, error) {
	if name == "" {
		return nil, errors.WrapInvalid(errors.ErrEmptyName, "Registry", "Resolve", "validate name")
	}

	r.mu.RLock()
	if canonical, ok := r.index[name]; ok {
		u := r.units[canonical]
		r.mu.RUnlock()
		r.metrics.Resolution("hit")
		return u, nil
	}
	r.mu.RUnlock()

	// Prefix synthesis inserts into the tables, so take the write lock
	// and re-check under it.
	r.mu.Lock()
	defer r.mu.Unlock()
	u, err := r.resolveLocked(name)
	if err != nil {
		r.metrics.Resolution("undefined")
		return nil, err
	}
	r.metrics.Resolution("synthesized")
	return u, nil
}

// resolveLocked resolves a name under the write lock, synthesizing a
// prefixed unit when needed.
func (r *Registry) resolveLocked(name string) (*ResolvedUnit, error) {
	if canonical, ok := r.index[name]; ok {
		return r.units[canonical], nil
	}

	// Longest matching prefix token wins; the remainder must itself be
	// a known unit (no recursive prefixing).
	var (
		best     definition.Prefix
		bestLen  int
		baseName string
	)
	for token, pre := range r.prefixes {
		if len(token) >= len(name) || len(token) <= bestLen {
			continue
		}
		if name[:len(token)] != token {
			continue
		}
		rest := name[len(token):]
		if canonical, ok := r.index[rest]; ok {
			best = pre
			bestLen = len(token)
			baseName = canonical
		}
	}
	if bestLen == 0 {
		return nil, &errors.UndefinedUnitError{Name: name}
	}

	base := r.units[baseName]
	canonical := best.Name + base.Name
	if existing, ok := r.index[canonical]; ok {
		// Same unit reached through another spelling, e.g. "km" after
		// "kilometer". Index the new spelling and reuse it.
		r.index[name] = existing
		return r.units[existing], nil
	}

	synthesized := &ResolvedUnit{
		Name:      canonical,
		IsBase:    false,
		Reference: unit.Single(base.Name),
		Scale:     best.Factor,
		Prefixed:  true,
	}
	r.units[canonical] = synthesized
	r.index[canonical] = canonical
	if name != canonical {
		r.index[name] = canonical
	}
	r.metrics.DefinitionCount("unit", len(r.units))
	r.logger.Debug("prefixed unit synthesized",
		"name", canonical,
		"prefix", best.Name,
		"base", base.Name,
		"scale", best.Factor)
	return synthesized, nil
}

// CheckContainer validates that every unit name in a container resolves.
func (r *Registry) CheckContainer(c unit.Container) error {
	for _, name := range c.Names() {
		if _, err := r.Resolve(name); err != nil {
			return err
		}
	}
	return nil
}
