package commands

import (
	"context"

	"intimacoes/internal/pkg/metrics"
)

// DeleteCourierCommandHandler deletes a courier and cascades to its batches.
// Both removals share one unit of work: readers see either the courier with all its batches
// or neither.
type DeleteCourierCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.Metrics
}

func NewDeleteCourierCommandHandler(uowFactory UoWFactory, m *metrics.Metrics) DeleteCourierCommandHandler {
	return DeleteCourierCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

// Handle returns how many batches were removed along with the courier.
// Returns errs.ErrObjectNotFound when the courier does not exist.
func (h *DeleteCourierCommandHandler) Handle(ctx context.Context, cmd DeleteCourierCommand) (removed int, err error) {
	defer func() {
		observe(h.metrics, OperationDeleteCourier, err)
	}()

	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Delete(ctx, cmd.CourierID()); err != nil {
		return 0, err
	}

	removed, err = uow.BatchRepository().DeleteByCourier(ctx, cmd.CourierID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
