package commands

import (
	"errors"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"
	"intimacoes/internal/pkg/guard"
)

var ErrCreateBatchCommandIsNotConstructed = errors.New(
	"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
)

// CreateBatchCommand represents a request to dispatch a new batch with a courier.
//
// Example:
//
//	cmd, err := NewCreateBatchCommand(courierID, 10, 5, batch.Details{
//	    DepartureAt:     time.Now(),
//	    EstimatedReturn: kernel.NewDate(2024, time.May, 3),
//	    Description:     "Centro",
//	})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	batchID       kernel.UUID
	courierID     kernel.UUID
	pgfnInitial   int
	normalInitial int
	details       batch.Details

	guard guard.ConstructorGuard
}

// NewCreateBatchCommand creates a command for a new pending batch and generates its ID.
// The initial counts must be non-negative with at least one positive.
func NewCreateBatchCommand(
	courierID kernel.UUID,
	pgfnInitial, normalInitial int,
	details batch.Details,
) (CreateBatchCommand, error) {
	command := CreateBatchCommand{
		batchID: kernel.NewUUID(),
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(courierID),
		command.setInitialCounts(pgfnInitial, normalInitial),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

// BatchID returns the ID the new batch will get.
func (c CreateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c CreateBatchCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CreateBatchCommand) PGFNInitial() int {
	return c.pgfnInitial
}

func (c CreateBatchCommand) NormalInitial() int {
	return c.normalInitial
}

func (c CreateBatchCommand) Details() batch.Details {
	return c.details
}

func (c *CreateBatchCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}

	c.courierID = id
	return nil
}

func (c *CreateBatchCommand) setInitialCounts(pgfnInitial, normalInitial int) error {
	if err := batch.ValidateInitialCounts(pgfnInitial, normalInitial); err != nil {
		return err
	}

	c.pgfnInitial = pgfnInitial
	c.normalInitial = normalInitial
	return nil
}
