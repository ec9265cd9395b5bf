package memoize

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// opMu serializes Memoize, Unmemoize, FlushCache and FlushAll against each
// other so no operation ever observes a half-torn record. It is never held
// while a wrapped function runs: in-flight invocations complete against the
// record they captured.
var opMu sync.Mutex

// Memoize replaces the function *target points at with a caching wrapper and
// returns the wrapper. The wrapper computes the cache key with the record's
// normalizer, returns stored results unchanged on a hit, and calls the
// original exactly once per observed miss.
//
// By default the wrapper is installed in place (*target is overwritten) and
// backed by a fresh in-memory store; see WithInstallAt, WithoutInstall,
// WithStore and WithNormalizer. Memoizing an already-memoized target fails
// with ErrAlreadyMemoized.
func Memoize[F any](target *F, opts ...Option) (F, error) {
	var zero F
	if target == nil {
		return zero, ErrNotFunction
	}
	original := reflect.ValueOf(*target)
	if original.Kind() != reflect.Func || original.IsNil() {
		return zero, ErrNotFunction
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return zero, err
	}

	var dest *F
	switch cfg.install {
	case installInPlace:
		dest = target
	case installAt:
		d, ok := cfg.installDest.(*F)
		if !ok || d == nil {
			return zero, fmt.Errorf("%w: want %T, got %T", ErrInstallTarget, target, cfg.installDest)
		}
		dest = d
	case installNone:
	}

	rec := &memoRecord{
		id:         uuid.New().String(),
		original:   original,
		store:      cfg.store,
		ownedStore: !cfg.storeSet,
		normalizer: cfg.normalizer,
		logger:     cfg.logger,
		createdAt:  time.Now(),
	}
	if rec.store == nil {
		rec.store = newMemoryStore()
	}
	rec.wrapped = rec.makeWrapped()
	wrapped := rec.wrapped.Interface().(F)

	if dest != nil {
		originalFn := *target
		rec.restore = func() { *dest = originalFn }
	}

	opMu.Lock()
	defer opMu.Unlock()
	if err := records.insert(target, rec); err != nil {
		return zero, err
	}
	if dest != nil {
		*dest = wrapped
	}

	rec.logger.Debug("memoized target",
		zap.String("record_id", rec.id),
		zap.String("function", original.Type().String()),
		zap.Bool("installed", dest != nil),
		zap.Bool("owned_store", rec.ownedStore),
	)
	return wrapped, nil
}

// MustMemoize is the panic-on-failure variant of Memoize. Use when failure
// indicates a programming error that should be fatal.
func MustMemoize[F any](target *F, opts ...Option) F {
	wrapped, err := Memoize(target, opts...)
	if err != nil {
		panic(err)
	}
	return wrapped
}

// Unmemoize reverts Memoize: the installed binding, if any, is restored to
// the exact original function, the record is dropped, and the original is
// returned. An owned in-memory store dies with the record; a borrowed store
// keeps whatever entries it holds. Fails with ErrNotMemoized when target has
// no active record.
func Unmemoize[F any](target *F) (F, error) {
	var zero F
	opMu.Lock()
	defer opMu.Unlock()
	rec, ok := records.remove(target)
	if !ok {
		return zero, ErrNotMemoized
	}
	if rec.restore != nil {
		rec.restore()
	}
	rec.logger.Debug("unmemoized target",
		zap.String("record_id", rec.id),
		zap.String("function", rec.original.Type().String()),
	)
	return rec.original.Interface().(F), nil
}

// FlushCache empties the cache of a memoized target without disturbing the
// wrap. Fails with ErrNotMemoized when target has no record, and with
// ErrClearUnsupported when the record's store is not a ClearableStore.
func FlushCache[F any](target *F) error {
	opMu.Lock()
	defer opMu.Unlock()
	rec, ok := records.lookup(target)
	if !ok {
		return ErrNotMemoized
	}
	return rec.flush()
}

// FlushAll empties the caches of every memoized target. Records whose stores
// cannot be cleared are skipped and their errors combined into the result;
// the remaining records are still flushed.
func FlushAll() error {
	opMu.Lock()
	defer opMu.Unlock()
	var errs error
	for _, rec := range records.snapshot() {
		errs = multierr.Append(errs, rec.flush())
	}
	return errs
}

// IsMemoized reports whether target currently has an active record.
func IsMemoized[F any](target *F) bool {
	_, ok := records.lookup(target)
	return ok
}

// Stats describes one record's cache activity.
type Stats struct {
	// Hits counts invocations answered from the store.
	Hits uint64
	// Misses counts invocations that ran the original function. Under
	// concurrent first use this may exceed the number of distinct keys.
	Misses uint64
	// Lifetime spans from the Memoize call to the Stats call.
	Lifetime timespan.TimeSpan
}

// CacheStats returns hit/miss counters and the record's lifetime so far.
func CacheStats[F any](target *F) (Stats, error) {
	rec, ok := records.lookup(target)
	if !ok {
		return Stats{}, ErrNotMemoized
	}
	return Stats{
		Hits:     rec.hits.Load(),
		Misses:   rec.misses.Load(),
		Lifetime: timespan.BetweenTimes(rec.createdAt, time.Now()),
	}, nil
}
