package commands

import (
	"context"

	"intimacoes/internal/pkg/metrics"
)

// DeleteBatchCommandHandler removes a batch.
// Returns errs.ErrObjectNotFound when the batch does not exist.
type DeleteBatchCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.Metrics
}

func NewDeleteBatchCommandHandler(uowFactory UoWFactory, m *metrics.Metrics) DeleteBatchCommandHandler {
	return DeleteBatchCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

func (h *DeleteBatchCommandHandler) Handle(ctx context.Context, cmd DeleteBatchCommand) (err error) {
	defer func() {
		observe(h.metrics, OperationDeleteBatch, err)
	}()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BatchRepository().Delete(ctx, cmd.BatchID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
