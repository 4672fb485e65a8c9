package ports

import (
	"context"
	"errors"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
)

// ErrSnapshotNotFound is returned by SnapshotStore.Load when nothing was saved yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the full persisted state of the entity store.
// Couriers are in roster order and batches in store order.
type Snapshot struct {
	Couriers []*courier.Courier
	Batches  []*batch.Batch
}

// SnapshotStore is the durable load/save contract of the entity store.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or ErrSnapshotNotFound.
	// Any other error means the stored snapshot could not be read or is malformed.
	Load(ctx context.Context) (Snapshot, error)

	// Save replaces the stored snapshot with s.
	Save(ctx context.Context, s Snapshot) error
}
