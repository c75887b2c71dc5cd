package ipc

import (
	"sync/atomic"

	"github.com/bnema/gowlc/wlc"
)

// Store holds the latest snapshot published by the loop thread. Socket
// goroutines read it without ever touching the binding.
type Store struct {
	cur     atomic.Pointer[wlc.Snapshot]
	updates atomic.Uint64
}

// Publish replaces the current snapshot.
func (s *Store) Publish(snap wlc.Snapshot) {
	s.cur.Store(&snap)
	s.updates.Add(1)
}

// Load returns the current snapshot and how many have been published.
func (s *Store) Load() (wlc.Snapshot, uint64) {
	n := s.updates.Load()
	if p := s.cur.Load(); p != nil {
		return *p, n
	}
	return wlc.Snapshot{}, n
}
