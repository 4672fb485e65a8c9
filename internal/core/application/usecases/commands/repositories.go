// Package commands contains business operations that modify the entity store.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, unit of work, persistence.
package commands

import (
	"errors"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/ports"
	"intimacoes/internal/pkg/metrics"
)

// Operation labels reported to metrics.
const (
	OperationCreateCourier = "create_courier"
	OperationUpdateCourier = "update_courier"
	OperationDeleteCourier = "delete_courier"
	OperationCreateBatch   = "create_batch"
	OperationUpdateBatch   = "update_batch"
	OperationFinalizeBatch = "finalize_batch"
	OperationDeleteBatch   = "delete_batch"
)

// UoWFactory creates the unit of work a command handler runs in.
// Every handler opens exactly one unit of work, so a command is applied entirely or not at all.
//
// Example:
//
//	uow := factory.Create()
//	err := uow.Begin(ctx)
//	defer uow.Rollback(ctx)
//
//	courierRepo := uow.CourierRepository()
//	batchRepo := uow.BatchRepository()
//	// ... perform operations
//
//	err = uow.Commit(ctx)
type UoWFactory interface {
	Create() ports.UnitOfWork
}

// observe records the outcome of a handler, including each category a reconciliation left unbalanced.
func observe(m *metrics.Metrics, operation string, err error) {
	m.ObserveMutation(operation, err)

	var conservationErr *batch.ConservationError
	if errors.As(err, &conservationErr) {
		for _, category := range conservationErr.Categories() {
			m.IncrementConservationRejection(string(category))
		}
	}
}
