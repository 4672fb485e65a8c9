package commands

import (
	"context"

	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/pkg/metrics"
)

// CreateCourierCommandHandler adds a courier to the roster, which is re-sorted by name.
type CreateCourierCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.Metrics
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
// m may be nil.
func NewCreateCourierCommandHandler(uowFactory UoWFactory, m *metrics.Metrics) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

// Handle processes the courier creation command.
func (h *CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) (err error) {
	defer func() {
		observe(h.metrics, OperationCreateCourier, err)
	}()

	if err = cmd.Validate(); err != nil {
		return err
	}

	newCourier, err := courier.NewCourier(cmd.CourierID(), cmd.Name(), cmd.Profile())
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

	if err = uow.CourierRepository().Add(ctx, newCourier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
