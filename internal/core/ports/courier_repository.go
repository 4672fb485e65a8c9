// Package ports defines the contracts between the batch lifecycle core and its adapters.
// These interfaces establish the boundary between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
// Implementations bound to a unit of work stage their changes until Commit.
type CourierRepository interface {
	// Add stores a new courier. The courier must be valid and its ID unused.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update replaces an existing courier.
	// Returns errs.ErrObjectNotFound when the ID is unknown.
	Update(ctx context.Context, courier *courier.Courier) error

	// Delete removes a courier by ID. It does not touch batches: cascading is the caller's job.
	// Returns errs.ErrObjectNotFound when the ID is unknown.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a courier by ID.
	// Returns errs.ErrObjectNotFound when the ID is unknown.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAll returns every courier in roster order (by name, Brazilian Portuguese collation).
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
