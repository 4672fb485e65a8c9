package commands

import (
	"context"

	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/metrics"
)

// UpdateBatchCommandHandler applies an UpdateBatchCommand.
//
// Returns:
//   - errs.ErrObjectNotFound when the batch does not exist
//   - batch.ErrFinalizedBatchLocked when details are sent for a finalized batch
//   - batch.ErrBatchNotFinalized when counts are sent for a pending batch
//   - batch.ErrConservationViolation when corrected counts do not balance
type UpdateBatchCommandHandler struct {
	uowFactory  UoWFactory
	deliveryFee kernel.Money
	metrics     *metrics.Metrics
}

// NewUpdateBatchCommandHandler creates the handler. deliveryFee re-derives the total value
// of corrected batches.
func NewUpdateBatchCommandHandler(
	uowFactory UoWFactory,
	deliveryFee kernel.Money,
	m *metrics.Metrics,
) UpdateBatchCommandHandler {
	return UpdateBatchCommandHandler{
		uowFactory:  uowFactory,
		deliveryFee: deliveryFee,
		metrics:     m,
	}
}

func (h *UpdateBatchCommandHandler) Handle(ctx context.Context, cmd UpdateBatchCommand) (err error) {
	defer func() {
		observe(h.metrics, OperationUpdateBatch, err)
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

	if details, ok := cmd.Details(); ok {
		if err = existing.UpdateDetails(details); err != nil {
			return err
		}
	}
	if counts, ok := cmd.Counts(); ok {
		if err = existing.AdjustCounts(counts, h.deliveryFee); err != nil {
			return err
		}
	}

	if err = batchRepo.Update(ctx, existing); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
