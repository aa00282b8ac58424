package memory

import (
	"context"
	"sync"

	"techo/backend/internal/domain"
)

// Store keeps the snapshot slot in process memory. It is the default backend
// when no durable store is configured, and the test double everywhere else.
type Store struct {
	mu   sync.RWMutex
	slot *domain.Snapshot
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) (domain.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.slot == nil {
		return domain.Snapshot{}, false, nil
	}
	return s.slot.Clone(), true, nil
}

func (s *Store) Save(_ context.Context, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := snap.Clone()
	s.slot = &stored
	return nil
}
