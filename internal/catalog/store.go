package catalog

import "sync/atomic"

// Store holds the current catalog snapshot. Readers load the snapshot without
// locking; the refresher replaces it with a single atomic pointer swap, so a
// reader always sees either the previous or the new complete generation.
type Store struct {
	cur atomic.Pointer[Snapshot]
}

// NewStore creates a store holding an empty snapshot.
func NewStore() *Store {
	s := &Store{}
	s.cur.Store(&Snapshot{})
	return s
}

// Snapshot returns the current catalog generation.
func (s *Store) Snapshot() *Snapshot {
	return s.cur.Load()
}

// Replace swaps in a new catalog generation.
func (s *Store) Replace(snap *Snapshot) {
	s.cur.Store(snap)
}

// Size returns the number of entries in the current generation.
func (s *Store) Size() int {
	return len(s.cur.Load().Entries)
}
