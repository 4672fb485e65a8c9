package memory

import (
	"context"
	"errors"

	"intimacoes/internal/core/ports"
)

// ErrNoActiveTransaction is returned when a unit of work is used outside Begin/Commit.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a fresh unit of work. It is not safe for concurrent use.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages mutations on a private copy of the store.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.CourierRepository().Delete(ctx, id); err != nil {
//	    return err
//	}
//	if _, err := uow.BatchRepository().DeleteByCourier(ctx, id); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
type UnitOfWork struct {
	store   *Store
	staged  *state
	changed bool
}

// Begin waits for the writer slot and stages a copy of the committed state.
// Calling Begin again on an active unit of work is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.staged != nil {
		return nil
	}

	if err := uow.store.acquire(ctx); err != nil {
		return err
	}

	staged := uow.store.current().clone()
	uow.staged = &staged
	uow.changed = false
	return nil
}

// Commit publishes the staged state when it was changed and releases the writer slot.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.staged == nil {
		return ErrNoActiveTransaction
	}
	defer uow.finish()

	if uow.changed {
		uow.store.publish(ctx, *uow.staged)
	}
	return nil
}

// Rollback discards the staged state and releases the writer slot.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.staged == nil {
		return ErrNoActiveTransaction
	}
	uow.finish()
	return nil
}

// CourierRepository returns a courier repository over the staged state.
func (uow *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &courierRepository{uow: uow}
}

// BatchRepository returns a batch repository over the staged state.
func (uow *UnitOfWork) BatchRepository() ports.BatchRepository {
	return &batchRepository{uow: uow}
}

func (uow *UnitOfWork) finish() {
	uow.staged = nil
	uow.changed = false
	uow.store.release()
}

func (uow *UnitOfWork) state() (*state, error) {
	if uow.staged == nil {
		return nil, ErrNoActiveTransaction
	}
	return uow.staged, nil
}
