package ports

import (
	"context"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for batch aggregates.
// Batches are kept newest-inserted first.
type BatchRepository interface {
	// Add stores a new batch in front of the existing ones.
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Update replaces an existing batch in place, keeping its position.
	// Returns errs.ErrObjectNotFound when the ID is unknown.
	Update(ctx context.Context, aggregate *batch.Batch) error

	// Delete removes a batch by ID.
	// Returns errs.ErrObjectNotFound when the ID is unknown.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteByCourier removes every batch of a courier and returns how many were removed.
	DeleteByCourier(ctx context.Context, courierID kernel.UUID) (int, error)

	// Get retrieves a batch by ID.
	// Returns errs.ErrObjectNotFound when the ID is unknown.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// GetAll returns every batch in store order.
	GetAll(ctx context.Context) ([]*batch.Batch, error)
}
