package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/efreitasn/metaexchange/internal/domain"
)

// VenueStore is a thread-safe in-memory holder of the current venue
// snapshot. Replace swaps the whole snapshot; a slice handed out by
// Snapshot is never modified afterwards.
type VenueStore struct {
	mu       sync.RWMutex
	venues   []domain.Venue
	index    map[string]int // venue id → position in venues
	loaded   bool
	loadedAt time.Time
}

// NewVenueStore creates an empty VenueStore with no snapshot loaded.
func NewVenueStore() *VenueStore {
	return &VenueStore{
		index: make(map[string]int),
	}
}

// Replace installs venues as the current snapshot. It returns
// domain.ErrInvalidSnapshot if two venues share an identifier.
func (s *VenueStore) Replace(venues []domain.Venue) error {
	index := make(map[string]int, len(venues))
	for i, v := range venues {
		if _, dup := index[v.ID]; dup {
			return fmt.Errorf("%w: duplicate exchange identifier %q", domain.ErrInvalidSnapshot, v.ID)
		}
		index[v.ID] = i
	}

	// Copy so later changes to the caller's slice don't leak in.
	cp := make([]domain.Venue, len(venues))
	copy(cp, venues)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.venues = cp
	s.index = index
	s.loaded = true
	s.loadedAt = time.Now()
	return nil
}

// Snapshot returns the current venues in snapshot order. Callers must treat
// the result as read-only. It returns domain.ErrSnapshotNotLoaded if
// Replace has never been called.
func (s *VenueStore) Snapshot() ([]domain.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, domain.ErrSnapshotNotLoaded
	}
	return s.venues, nil
}

// Get retrieves a venue by identifier. It returns
// domain.ErrVenueNotFound if the venue does not exist.
func (s *VenueStore) Get(id string) (domain.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return domain.Venue{}, domain.ErrSnapshotNotLoaded
	}
	i, ok := s.index[id]
	if !ok {
		return domain.Venue{}, domain.ErrVenueNotFound
	}
	return s.venues[i], nil
}

// LoadedAt returns when the current snapshot was installed, or the zero
// time if none has been.
func (s *VenueStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadedAt
}
