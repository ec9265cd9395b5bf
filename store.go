package memoize

// Store is the capability a cache backend must provide. The engine performs
// only these operations and never assumes a particular implementation behind
// them; a Store may be backed by memory, disk, or any associative medium.
//
// Implementations need not be safe for concurrent use by the engine's
// account: all engine access to a record's store is serialized through the
// record's lock. A caller who shares an external store elsewhere owns any
// synchronization that sharing requires.
type Store interface {
	Get(key string) (value any, ok bool)
	Put(key string, value any)
}

// ClearableStore is a Store whose entries can be dropped wholesale.
// FlushCache requires it; a record backed by a plain Store cannot be flushed.
type ClearableStore interface {
	Store
	Clear()
}

// memoryStore is the default backend: a fresh, exclusively-owned map created
// and destroyed with its record.
type memoryStore struct {
	entries map[string]any
}

var _ ClearableStore = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]any)}
}

func (m *memoryStore) Get(key string) (value any, ok bool) {
	value, ok = m.entries[key]
	return
}

func (m *memoryStore) Put(key string, value any) {
	m.entries[key] = value
}

func (m *memoryStore) Clear() {
	m.entries = make(map[string]any)
}
