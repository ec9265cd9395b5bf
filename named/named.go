// Package named is a thin convenience adapter over the core engine for
// callers who want to address functions by name. The engine itself only ever
// accepts and returns function handles; this package maintains its own
// explicit name→cell table and forwards to the engine. It is not part of the
// cache engine's contract.
package named

import (
	"errors"
	"fmt"
	"sync"

	memoize "github.com/lizmat/Memoize"
)

// ErrUnknownName indicates a lookup for a name that was never registered.
var ErrUnknownName = errors.New("named: unknown function name")

// ErrDuplicateName indicates a second Register call for one name.
var ErrDuplicateName = errors.New("named: name already registered")

// entry carries typed closures built at Register time, so table operations
// stay non-generic while the engine calls remain fully typed.
type entry struct {
	cell      any
	memoize   func(opts ...memoize.Option) (any, error)
	unmemoize func() (any, error)
	flush     func() error
}

// Table maps names to registered function cells.
type Table struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewTable() *Table {
	return &Table{entries: make(map[string]entry)}
}

// Register binds name to cell, a pointer to the function variable the name
// should resolve to. The cell, not the name, is what the engine manages.
func Register[F any](t *Table, name string, cell *F) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	t.entries[name] = entry{
		cell: cell,
		memoize: func(opts ...memoize.Option) (any, error) {
			return memoize.Memoize(cell, opts...)
		},
		unmemoize: func() (any, error) {
			return memoize.Unmemoize(cell)
		},
		flush: func() error {
			return memoize.FlushCache(cell)
		},
	}
	return nil
}

// Lookup returns the registered cell for name as its original pointer type.
func (t *Table) Lookup(name string) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[name]
	if !ok {
		return nil, false
	}
	return e.cell, true
}

// Memoize memoizes the function registered under name and returns the
// wrapper as an untyped value.
func (t *Table) Memoize(name string, opts ...memoize.Option) (any, error) {
	e, err := t.entry(name)
	if err != nil {
		return nil, err
	}
	return e.memoize(opts...)
}

// Unmemoize reverts the function registered under name and returns the
// original as an untyped value.
func (t *Table) Unmemoize(name string) (any, error) {
	e, err := t.entry(name)
	if err != nil {
		return nil, err
	}
	return e.unmemoize()
}

// FlushCache empties the cache of the function registered under name.
func (t *Table) FlushCache(name string) error {
	e, err := t.entry(name)
	if err != nil {
		return err
	}
	return e.flush()
}

func (t *Table) entry(name string) (entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[name]
	if !ok {
		return entry{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return e, nil
}

// MemoizedAs safely asserts the result of a table operation to the expected
// function type F.
func MemoizedAs[F any](fn any, err error) (F, error) {
	var zero F
	if err != nil {
		return zero, err
	}
	typed, ok := fn.(F)
	if !ok {
		return zero, fmt.Errorf("named: unexpected function type: %T", fn)
	}
	return typed, nil
}
