package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary over the entity store.
// Changes made through its repositories become visible to readers only on Commit, all at once.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin acquires the single writer slot and stages a private copy of the store.
	Begin(ctx context.Context) error

	// Commit publishes the staged state and releases the writer slot.
	// Returns error if no active transaction exists.
	Commit(ctx context.Context) error

	// Rollback discards the staged state and releases the writer slot.
	// Returns error if no active transaction exists.
	Rollback(ctx context.Context) error

	// CourierRepository returns a repository bound to the staged state.
	CourierRepository() CourierRepository

	// BatchRepository returns a repository bound to the staged state.
	BatchRepository() BatchRepository
}
