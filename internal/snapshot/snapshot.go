// internal/snapshot/snapshot.go
package snapshot

import "sync"

// Snapshot is the single most-recent sensor reading.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	// VisibleIR is the broadband photodiode count (visible + infrared).
	VisibleIR uint16
	// IR is the infrared-only photodiode count.
	IR uint16
	// Lux is the derived illuminance.
	Lux float64
	// CapturedAtMs is milliseconds since boot at the time of the write.
	// Non-decreasing across successive writes.
	CapturedAtMs uint64
}

// Store holds the latest Snapshot. Exactly one writer (the sampler)
// exists at any time; readers may arrive from transport goroutines,
// so reads and writes are guarded. A reader always observes one whole
// value, never fields from two different samples.
type Store struct {
	mu   sync.RWMutex
	last Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Put overwrites the latest reading in place.
func (s *Store) Put(snap Snapshot) {
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
}

// Latest returns the current reading. Before the first Put it returns
// the zero-valued default, not an error.
func (s *Store) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
