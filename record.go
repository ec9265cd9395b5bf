package memoize

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// memoRecord is the unit of state for one memoized target: the original
// function, the wrapper standing in for it, the cache store, and the lock
// serializing store access. In-flight invocations hold the record they
// captured at wrap time, so Unmemoize never tears state out from under them.
type memoRecord struct {
	id         string
	original   reflect.Value
	wrapped    reflect.Value
	store      Store
	ownedStore bool
	normalizer Normalizer
	logger     *zap.Logger
	createdAt  time.Time

	// restore rebinds the installation location to the original function.
	// Nil when installation was suppressed.
	restore func()

	// mu serializes Get/Put/Clear on store. It is never held across a call
	// to the original function.
	mu     sync.Mutex
	hits   atomic.Uint64
	misses atomic.Uint64
}

// makeWrapped builds the intercepting wrapper with the original's exact type.
// On each invocation: normalize arguments, consult the store under the
// record's lock, and on a miss call the original outside the lock before
// storing the results. Two concurrent misses on one key may therefore both
// run the original; the last Put wins.
func (rec *memoRecord) makeWrapped() reflect.Value {
	fnType := rec.original.Type()
	return reflect.MakeFunc(fnType, func(in []reflect.Value) []reflect.Value {
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}
		key := rec.normalizer(args...)

		rec.mu.Lock()
		cached, ok := rec.store.Get(key)
		rec.mu.Unlock()
		if ok {
			rec.hits.Add(1)
			return cached.([]reflect.Value)
		}

		var out []reflect.Value
		if fnType.IsVariadic() {
			out = rec.original.CallSlice(in)
		} else {
			out = rec.original.Call(in)
		}
		rec.misses.Add(1)

		rec.mu.Lock()
		rec.store.Put(key, out)
		rec.mu.Unlock()
		return out
	})
}

// flush empties the record's store, failing when the store lacks the
// capability. Borrowed stores are cleared through the same capability
// surface; the engine never reaches behind it.
func (rec *memoRecord) flush() error {
	clearable, ok := rec.store.(ClearableStore)
	if !ok {
		return fmt.Errorf("%w: %T", ErrClearUnsupported, rec.store)
	}
	rec.mu.Lock()
	clearable.Clear()
	rec.mu.Unlock()
	rec.logger.Debug("flushed memoization cache",
		zap.String("record_id", rec.id),
		zap.String("function", rec.original.Type().String()),
	)
	return nil
}
