package commands

import (
	"context"
	"errors"
	"fmt"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/pkg/errs"
	"intimacoes/internal/pkg/metrics"
)

// CreateBatchCommandHandler registers a pending batch in front of the store.
type CreateBatchCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.Metrics
}

func NewCreateBatchCommandHandler(uowFactory UoWFactory, m *metrics.Metrics) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

// Handle creates the batch.
// Returns courier.ErrUnknownCourier when the referenced courier does not exist.
func (h *CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) (err error) {
	defer func() {
		observe(h.metrics, OperationCreateBatch, err)
	}()

	if err = cmd.Validate(); err != nil {
		return err
	}

	newBatch, err := batch.NewBatch(
		cmd.BatchID(),
		cmd.CourierID(),
		cmd.PGFNInitial(),
		cmd.NormalInitial(),
		cmd.Details(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.CourierRepository().Get(ctx, cmd.CourierID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fmt.Errorf("%w: %s", courier.ErrUnknownCourier, cmd.CourierID())
		}
		return err
	}

	if err = uow.BatchRepository().Add(ctx, newBatch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
