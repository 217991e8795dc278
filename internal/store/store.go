// Package store holds the single authoritative in-memory profile.
//
// Every write bumps a monotonically increasing revision. The revision is
// how the synchronization engine detects that a background hydration result
// is older than an edit the user already made: the fetch records the
// revision it started from and is discarded if anything landed since.
package store

import (
	"sync"

	"github.com/matchbook-app/matchbook-client/internal/domain"
)

// Store owns the current profile. All accessors work on clones; callers
// never alias the internal value.
type Store struct {
	mu       sync.RWMutex
	profile  *domain.Profile
	revision uint64
}

// New returns an empty store at revision zero.
func New() *Store {
	return &Store{}
}

// Get returns a clone of the current profile (nil when signed out) and the
// revision it was read at.
func (s *Store) Get() (*domain.Profile, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone(), s.revision
}

// Revision returns the current revision without copying the profile.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Replace installs the profile as current and returns the new revision.
func (s *Store) Replace(p *domain.Profile) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p.Clone()
	s.revision++
	return s.revision
}

// ReplaceIf installs the profile only when no write happened since the
// caller observed expectedRev. It reports whether the write was applied.
func (s *Store) ReplaceIf(expectedRev uint64, p *domain.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revision != expectedRev {
		return false
	}
	s.profile = p.Clone()
	s.revision++
	return true
}

// Clear drops the current profile. The revision still advances so a racing
// hydration result from before the clear is rejected.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.revision++
}
