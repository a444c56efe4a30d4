// Package cache memoises InChI generation.  Identifiers depend only on the
// SMILES text, so results are kept in an in-process LRU and optionally in a
// shared Redis store that survives between runs.
package cache

import (
	"context"
	stderrors "errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/turtacn/computefp/internal/domain/molecule"
	redisinfra "github.com/turtacn/computefp/internal/infrastructure/database/redis"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

// Lookup tiers and results reported to a LookupObserver.
const (
	TierLRU   = "lru"
	TierRedis = "redis"

	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Store is the shared tier.  redis.Cache satisfies it; a missing key must be
// reported as redis.ErrCacheMiss.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// LookupObserver is told about every cache lookup.
type LookupObserver interface {
	ObserveCacheLookup(tier, result string)
}

// Factory decorates a molecule.GeneratorFactory so that every generator it
// hands out shares the same cache tiers.
type Factory struct {
	next     molecule.GeneratorFactory
	lru      *lru.Cache[string, molecule.IdentifierResult]
	store    Store
	ttl      time.Duration
	observer LookupObserver
	logger   logging.Logger
}

// Option customises a Factory.
type Option func(*Factory)

// WithStore enables the shared tier.  A zero ttl uses the store default.
func WithStore(store Store, ttl time.Duration) Option {
	return func(f *Factory) {
		f.store = store
		f.ttl = ttl
	}
}

// WithObserver reports lookups, typically to prometheus.
func WithObserver(o LookupObserver) Option {
	return func(f *Factory) { f.observer = o }
}

// WithLogger sets the logger used for store failures.
func WithLogger(l logging.Logger) Option {
	return func(f *Factory) { f.logger = l }
}

// NewFactory wraps next.  lruSize 0 disables the in-process tier.
func NewFactory(next molecule.GeneratorFactory, lruSize int, opts ...Option) (*Factory, error) {
	if lruSize < 0 {
		return nil, errors.InvalidParam("lru size must not be negative")
	}
	f := &Factory{next: next, logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(f)
	}
	if lruSize > 0 {
		c, err := lru.New[string, molecule.IdentifierResult](lruSize)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCacheError, "cannot create LRU cache")
		}
		f.lru = c
	}
	return f, nil
}

// Enabled reports whether any tier is configured.
func (f *Factory) Enabled() bool {
	return f.lru != nil || f.store != nil
}

// NewGenerator implements molecule.GeneratorFactory.  Errors from the
// wrapped factory are returned unchanged.
func (f *Factory) NewGenerator(ctx context.Context) (molecule.IdentifierGenerator, error) {
	g, err := f.next.NewGenerator(ctx)
	if err != nil {
		return nil, err
	}
	if !f.Enabled() {
		return g, nil
	}
	return &CachingGenerator{next: g, factory: f}, nil
}

// CachingGenerator answers from the cache tiers before delegating.
type CachingGenerator struct {
	next    molecule.IdentifierGenerator
	factory *Factory
}

// Generate implements molecule.IdentifierGenerator.  Only usable results
// are cached; the cached status is replayed so warnings are still reported.
func (g *CachingGenerator) Generate(ctx context.Context, m *molecule.Molecule) (molecule.IdentifierResult, error) {
	f := g.factory
	key := m.SMILES

	if res, ok := f.lookup(ctx, key); ok {
		return res, nil
	}

	res, err := g.next.Generate(ctx, m)
	if err != nil || !res.Usable() {
		return res, err
	}
	f.remember(ctx, key, res)
	return res, nil
}

func (f *Factory) lookup(ctx context.Context, key string) (molecule.IdentifierResult, bool) {
	if f.lru != nil {
		if res, ok := f.lru.Get(key); ok {
			f.observe(TierLRU, ResultHit)
			return res, true
		}
		f.observe(TierLRU, ResultMiss)
	}
	if f.store == nil {
		return molecule.IdentifierResult{}, false
	}

	var res molecule.IdentifierResult
	err := f.store.Get(ctx, key, &res)
	switch {
	case err == nil && res.Usable():
		f.observe(TierRedis, ResultHit)
		if f.lru != nil {
			f.lru.Add(key, res)
		}
		return res, true
	case err == nil, stderrors.Is(err, redisinfra.ErrCacheMiss):
		f.observe(TierRedis, ResultMiss)
	default:
		f.observe(TierRedis, ResultError)
		f.logger.Warn("identifier cache lookup failed", logging.String("smiles", key), logging.Err(err))
	}
	return molecule.IdentifierResult{}, false
}

func (f *Factory) remember(ctx context.Context, key string, res molecule.IdentifierResult) {
	if f.lru != nil {
		f.lru.Add(key, res)
	}
	if f.store == nil {
		return
	}
	if err := f.store.Set(ctx, key, res, f.ttl); err != nil {
		f.logger.Warn("identifier cache write failed", logging.String("smiles", key), logging.Err(err))
	}
}

func (f *Factory) observe(tier, result string) {
	if f.observer != nil {
		f.observer.ObserveCacheLookup(tier, result)
	}
}

//Personal.AI order the ending
