package feed

import (
	"sync"
	"time"

	"github.com/kalshiwhale/tracker/internal/model"
)

// Store holds the latest accepted snapshot and the latest cycle error.
// Empty data and error state are kept distinct so downstream consumers can
// render them differently.
type Store struct {
	mu         sync.RWMutex
	snap       *model.Snapshot
	highestSeq uint64

	lastErr   error
	lastErrAt time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Publish accepts snap only if its Seq is higher than any seen so far
// (last-writer-wins by logical cycle order, not completion order). A
// successful publish clears any recorded error state. Returns whether the
// snapshot was accepted.
func (s *Store) Publish(snap *model.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Seq <= s.highestSeq {
		return false
	}

	s.snap = snap
	s.highestSeq = snap.Seq
	s.lastErr = nil
	s.lastErrAt = time.Time{}
	return true
}

// Fail records a cycle failure. The previous snapshot, if any, is retained
// for fallback display.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err
	s.lastErrAt = time.Now().UTC()
}

// Current returns the latest accepted snapshot (nil if none yet) and the
// latest unrecovered cycle error (nil if the most recent cycle succeeded).
func (s *Store) Current() (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.lastErr
}

// LastErrorAt returns when the latest unrecovered error was recorded.
func (s *Store) LastErrorAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErrAt
}
