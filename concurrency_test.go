package memoize_test

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	memoize "github.com/lizmat/Memoize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestScenario_CounterGrid memoizes a counting function and drives it with
// 10 full passes over a shuffled 0..99, 1000 calls total. Only the first
// observation of each key may execute the original.
func TestScenario_CounterGrid(t *testing.T) {
	const keys = 100
	const passes = 10

	var seen [keys]int
	counter := func(n int) int {
		seen[n]++
		return n
	}

	_, err := memoize.Memoize(&counter)
	require.NoError(t, err)
	defer func() {
		_, err := memoize.Unmemoize(&counter)
		require.NoError(t, err)
	}()

	rng := rand.New(rand.NewSource(1))
	for pass := 0; pass < passes; pass++ {
		for _, n := range rng.Perm(keys) {
			require.Equal(t, n, counter(n))
		}
	}

	for n := 0; n < keys; n++ {
		assert.Equal(t, 1, seen[n], "key %d", n)
	}
}

// TestScenario_ConcurrentCounterGrid runs 10 concurrent rounds over all 100
// keys with randomized interleaving. Without single-flight deduplication a
// key's original may run more than once, but never zero times, and the cache
// must stay coherent throughout.
func TestScenario_ConcurrentCounterGrid(t *testing.T) {
	const keys = 100
	const rounds = 10

	var seen [keys]atomic.Int64
	counter := func(n int) int {
		seen[n].Add(1)
		return n
	}

	_, err := memoize.Memoize(&counter)
	require.NoError(t, err)
	defer func() {
		_, err := memoize.Unmemoize(&counter)
		require.NoError(t, err)
	}()

	var wg sync.WaitGroup
	for round := 0; round < rounds; round++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for _, n := range rng.Perm(keys) {
				if got := counter(n); got != n {
					t.Errorf("counter(%d) = %d", n, got)
					return
				}
			}
		}(int64(round))
	}
	wg.Wait()

	for n := 0; n < keys; n++ {
		assert.GreaterOrEqual(t, seen[n].Load(), int64(1), "key %d", n)
	}

	// the cache is coherent: every key answers from the store afterwards
	before, err := memoize.CacheStats(&counter)
	require.NoError(t, err)
	for n := 0; n < keys; n++ {
		require.Equal(t, n, counter(n))
	}
	after, err := memoize.CacheStats(&counter)
	require.NoError(t, err)
	assert.Equal(t, before.Misses, after.Misses)
	assert.Equal(t, before.Hits+keys, after.Hits)
}

// TestConcurrent_FlushAndInvoke interleaves invocations with cache flushes.
// Flushing only costs recomputation; results stay correct.
func TestConcurrent_FlushAndInvoke(t *testing.T) {
	fn := func(n int) int { return n * n }

	_, err := memoize.Memoize(&fn)
	require.NoError(t, err)
	defer func() {
		_, err := memoize.Unmemoize(&fn)
		require.NoError(t, err)
	}()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				n := i % 10
				if got := fn(n); got != n*n {
					t.Errorf("fn(%d) = %d", n, got)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if err := memoize.FlushCache(&fn); err != nil {
				t.Errorf("flush: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}
