package metrics

import (
	"sync/atomic"
)

// Store hands the latest snapshot from the sampler to the renderer.
// Publish swaps the snapshot as a whole unit, so a reader never observes
// a partially built one, and Current never blocks waiting for a fresh
// publish: the renderer simply re-reads a stale snapshot while the
// sampler is mid-cycle.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// NewStore returns a store holding an empty snapshot, so readers have a
// well-defined zero-line value before the first publish.
func NewStore() *Store {
	s := &Store{}
	s.snap.Store(&Snapshot{})
	return s
}

// Publish replaces the current snapshot. Publishing the same snapshot
// again is a no-op as far as readers can tell.
func (s *Store) Publish(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.snap.Store(snap)
}

// Current returns the most recently published snapshot.
func (s *Store) Current() *Snapshot {
	return s.snap.Load()
}
