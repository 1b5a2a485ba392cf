package schedule

import "sync/atomic"

// Store publishes the current timetable snapshot to concurrent readers. The
// only write is the wholesale replacement performed on each periodic refresh;
// the pointer swap guarantees readers never observe a half-built index.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store with no snapshot loaded yet.
func NewStore() *Store {
	return &Store{}
}

// Current returns the most recently published snapshot, or nil before the
// first Replace.
func (s *Store) Current() *Snapshot {
	if s == nil {
		return nil
	}
	return s.current.Load()
}

// Replace publishes a new snapshot and reports whether its fingerprint differs
// from the one it displaced. The previous snapshot is simply discarded;
// in-flight readers keep their reference until they finish.
func (s *Store) Replace(next *Snapshot) bool {
	if s == nil || next == nil {
		return false
	}
	previous := s.current.Swap(next)
	return previous == nil || previous.Fingerprint() != next.Fingerprint()
}
