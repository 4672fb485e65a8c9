package commands

import (
	"errors"
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"
	"intimacoes/internal/pkg/guard"
)

var ErrFinalizeBatchCommandIsNotConstructed = errors.New(
	"FinalizeBatchCommand must be created via NewFinalizeBatchCommand constructor",
)

// FinalizeBatchCommand closes a pending batch with the counts reported on return.
//
// Example:
//
//	cmd, err := NewFinalizeBatchCommand(batchID, time.Now(), batch.Counts{
//	    PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); errors.Is(err, batch.ErrConservationViolation) {
//	    // tell the operator which category does not balance
//	}
type FinalizeBatchCommand struct { //nolint:recvcheck //using for validation
	batchID  kernel.UUID
	returnAt time.Time
	counts   batch.Counts

	guard guard.ConstructorGuard
}

func NewFinalizeBatchCommand(batchID kernel.UUID, returnAt time.Time, counts batch.Counts) (FinalizeBatchCommand, error) {
	command := FinalizeBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setReturnAt(returnAt),
		command.setCounts(counts),
	); err != nil {
		return FinalizeBatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeBatchCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeBatchCommandIsNotConstructed)
}

func (c FinalizeBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c FinalizeBatchCommand) ReturnAt() time.Time {
	return c.returnAt
}

func (c FinalizeBatchCommand) Counts() batch.Counts {
	return c.counts
}

func (c *FinalizeBatchCommand) setBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.batchID = id
	return nil
}

func (c *FinalizeBatchCommand) setReturnAt(returnAt time.Time) error {
	if returnAt.IsZero() {
		return errs.NewValueIsRequiredError("returnAt")
	}

	c.returnAt = returnAt
	return nil
}

func (c *FinalizeBatchCommand) setCounts(counts batch.Counts) error {
	if err := counts.Validate(); err != nil {
		return err
	}

	c.counts = counts
	return nil
}
