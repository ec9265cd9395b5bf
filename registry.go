package memoize

import "sync"

// registry maps a target's identity to its memoRecord. Identity is the *F
// pointer handed to Memoize: the settable cell a function variable lives in,
// not a name. Names are caller-scope concepts outside this engine.
type registry struct {
	mu      sync.RWMutex
	records map[any]*memoRecord
}

var records = &registry{records: make(map[any]*memoRecord)}

// insert registers rec under key, rejecting a second record for one target.
func (r *registry) insert(key any, rec *memoRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[key]; exists {
		return ErrAlreadyMemoized
	}
	r.records[key] = rec
	return nil
}

func (r *registry) lookup(key any) (*memoRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	return rec, ok
}

func (r *registry) remove(key any) (*memoRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key]
	if ok {
		delete(r.records, key)
	}
	return rec, ok
}

func (r *registry) snapshot() []*memoRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := make([]*memoRecord, 0, len(r.records))
	for _, rec := range r.records {
		recs = append(recs, rec)
	}
	return recs
}
