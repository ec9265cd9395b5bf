package memoize

import "errors"

// ErrNotMemoized indicates that the target has no active memoization record.
var ErrNotMemoized = errors.New("memoize: target is not memoized")

// ErrAlreadyMemoized indicates that Memoize was called twice on one target.
// Re-memoizing is rejected rather than replaced; Unmemoize first.
var ErrAlreadyMemoized = errors.New("memoize: target is already memoized")

// ErrClearUnsupported indicates that the record's store does not implement
// ClearableStore, so its cache cannot be flushed.
var ErrClearUnsupported = errors.New("memoize: cache store does not support clear")

// ErrNilStore indicates that WithStore was given a nil store.
var ErrNilStore = errors.New("memoize: nil cache store")

// ErrNotFunction indicates that the memoization target does not point to a
// non-nil function value.
var ErrNotFunction = errors.New("memoize: target must point to a non-nil function")

// ErrInstallTarget indicates that the WithInstallAt destination is not a
// pointer to the same function type as the target.
var ErrInstallTarget = errors.New("memoize: install destination does not match target function type")
