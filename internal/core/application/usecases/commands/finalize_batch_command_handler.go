package commands

import (
	"context"

	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/metrics"
)

// FinalizeBatchCommandHandler reconciles a pending batch and moves it to finalized.
// A rejected reconciliation leaves the stored batch untouched.
//
// Returns:
//   - errs.ErrObjectNotFound when the batch does not exist
//   - batch.ErrAlreadyFinalized when the batch was finalized before
//   - batch.ErrConservationViolation, as *batch.ConservationError, when a category does not balance
type FinalizeBatchCommandHandler struct {
	uowFactory  UoWFactory
	deliveryFee kernel.Money
	metrics     *metrics.Metrics
}

func NewFinalizeBatchCommandHandler(
	uowFactory UoWFactory,
	deliveryFee kernel.Money,
	m *metrics.Metrics,
) FinalizeBatchCommandHandler {
	return FinalizeBatchCommandHandler{
		uowFactory:  uowFactory,
		deliveryFee: deliveryFee,
		metrics:     m,
	}
}

func (h *FinalizeBatchCommandHandler) Handle(ctx context.Context, cmd FinalizeBatchCommand) (err error) {
	defer func() {
		observe(h.metrics, OperationFinalizeBatch, err)
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

	batchRepo := uow.BatchRepository()
	existing, err := batchRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	if err = existing.Finalize(cmd.ReturnAt(), cmd.Counts(), h.deliveryFee); err != nil {
		return err
	}

	if err = batchRepo.Update(ctx, existing); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
