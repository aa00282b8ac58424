package store

import (
	"context"

	"techo/backend/internal/domain"
)

// SnapshotStore is the durable key-value slot holding the whole state blob.
// Load reports found=false when the slot has never been written; that is not
// an error. Save replaces the slot content wholesale.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Snapshot, bool, error)
	Save(ctx context.Context, snap domain.Snapshot) error
}
