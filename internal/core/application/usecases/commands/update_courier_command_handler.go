package commands

import (
	"context"

	"intimacoes/internal/pkg/metrics"
)

// UpdateCourierCommandHandler rewrites a courier's name and profile.
// Returns errs.ErrObjectNotFound when the courier does not exist.
type UpdateCourierCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.Metrics
}

func NewUpdateCourierCommandHandler(uowFactory UoWFactory, m *metrics.Metrics) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

func (h *UpdateCourierCommandHandler) Handle(ctx context.Context, cmd UpdateCourierCommand) (err error) {
	defer func() {
		observe(h.metrics, OperationUpdateCourier, err)
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

	courierRepo := uow.CourierRepository()
	existing, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = existing.Update(cmd.Name(), cmd.Profile()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, existing); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
