package service

import (
	"context"
	"log"
	"time"

	"techo/backend/internal/domain"
	"techo/backend/internal/state"
	"techo/backend/internal/store"
	"techo/backend/internal/xid"
)

// Service exposes the inventory and billing operations over an owned State.
// Every mutating operation completes its in-memory update and the snapshot
// write before returning, so callers always re-read fully persisted state.
type Service struct {
	state             *state.State
	snapshots         store.SnapshotStore
	lowStockThreshold int
	clock             func() time.Time
}

func New(st *state.State, snapshots store.SnapshotStore, lowStockThreshold int) *Service {
	if lowStockThreshold < 0 {
		lowStockThreshold = domain.DefaultLowStockThreshold
	}

	return &Service{
		state:             st,
		snapshots:         snapshots,
		lowStockThreshold: lowStockThreshold,
		clock:             time.Now,
	}
}

// Load restores state from the snapshot slot. An absent slot is a first run:
// the state is seeded with one default category and item so the UI is never
// empty, and the seeded snapshot is written back immediately.
func (s *Service) Load(ctx context.Context) error {
	snap, found, err := s.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	if found {
		s.state.Restore(snap)
	}

	if !s.state.Empty() {
		return nil
	}

	starter := domain.Category{ID: xid.New("cat"), Name: "General"}
	s.state.AddCategory(starter)
	if err := s.state.CreateItem(domain.Item{
		ID:         xid.New("item"),
		Name:       "Sample Item",
		PriceCents: 19900,
		Quantity:   12,
		CategoryID: starter.ID,
	}); err != nil {
		return err
	}

	log.Printf("[service] seeded default category and item")
	return s.persist(ctx)
}

func (s *Service) persist(ctx context.Context) error {
	return s.snapshots.Save(ctx, s.state.Snapshot())
}
