// Package memoize makes functions faster by trading space for time.
//
// Memoize is not just a utility to add caching.
// Memoize is a tool that *forces the developer to ask*:
//
//	→ "Is this function really worth calling twice with the same arguments?"
//	→ "Can this computation be treated as a lazy table?"
//
// Given a pointer to a function variable, Memoize replaces its value with a
// wrapper that caches return values keyed by a normalized rendering of the
// call arguments. The original function is recorded so the wrap can be
// reverted with Unmemoize, and the cache emptied with FlushCache.
//
// Features:
//   - Memoize/Unmemoize/FlushCache over any function signature, including
//     variadic and multi-result functions.
//   - Pluggable normalization of arguments into cache keys.
//   - Pluggable cache stores behind a narrow Get/Put(/Clear) capability, so
//     callers can bring their own associative store.
//   - Installation control: wrap in place, install the wrapper elsewhere, or
//     suppress installation and only receive the wrapper.
//
// The engine assumes nothing about the purity of the wrapped function. If the
// function depends on anything other than its arguments, memoizing it returns
// stale results; that is a property of the caller's function, not of this
// package.
//
// Concurrent invocations of a wrapped function are safe. Cache access is
// serialized per memoized target, but the lock is never held while the
// original function runs, so two concurrent misses on the same key may both
// execute the original; the last store wins. There is no single-flight
// deduplication.
//
// WARNING: Do not memoize functions whose side effects matter (e.g., those
// depending on time, I/O, or mutable globals).
package memoize
