package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
// Tallies are copied on the way in and out.
type StateStore struct {
	mu         sync.RWMutex
	tallies    map[string]*domain.Tally
	timestamp  string
	hasStamp   bool
	tallySaves int
}

// NewStateStore creates a new in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{
		tallies: make(map[string]*domain.Tally),
	}
}

// Tally loads the tally of a category.
func (s *StateStore) Tally(_ context.Context, category string) (*domain.Tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tally, ok := s.tallies[category]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return tally.Clone(), nil
}

// SaveTally replaces the tally of a category.
func (s *StateStore) SaveTally(_ context.Context, category string, tally *domain.Tally) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tallies[category] = tally.Clone()
	s.tallySaves++
	return nil
}

// Timestamp loads the last processed timestamp.
func (s *StateStore) Timestamp(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasStamp {
		return "", domain.ErrNotFound
	}
	return s.timestamp, nil
}

// SaveTimestamp replaces the last processed timestamp.
func (s *StateStore) SaveTimestamp(_ context.Context, timestamp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timestamp = timestamp
	s.hasStamp = true
	return nil
}

// TallySaves returns the number of SaveTally calls.
func (s *StateStore) TallySaves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tallySaves
}

// Close is a no-op.
func (s *StateStore) Close() error {
	return nil
}
