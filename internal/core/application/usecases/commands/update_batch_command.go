package commands

import (
	"errors"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"
	"intimacoes/internal/pkg/guard"
)

var ErrUpdateBatchCommandIsNotConstructed = errors.New(
	"UpdateBatchCommand must be created via NewUpdateBatchCommand constructor",
)

// UpdateBatchCommand edits a batch. Pending batches accept new details, finalized batches
// accept corrected counts. Which of the two applies is decided by the handler against the
// stored status, so the command carries either or both.
type UpdateBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID
	details *batch.Details
	counts  *batch.Counts

	guard guard.ConstructorGuard
}

// NewUpdateBatchCommand requires at least one of details and counts.
func NewUpdateBatchCommand(batchID kernel.UUID, details *batch.Details, counts *batch.Counts) (UpdateBatchCommand, error) {
	command := UpdateBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setChanges(details, counts),
	); err != nil {
		return UpdateBatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateBatchCommand) Validate() error {
	return c.guard.Validate(ErrUpdateBatchCommandIsNotConstructed)
}

func (c UpdateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// Details returns the new details, if any.
func (c UpdateBatchCommand) Details() (batch.Details, bool) {
	if c.details == nil {
		return batch.Details{}, false
	}
	return *c.details, true
}

// Counts returns the corrected counts, if any.
func (c UpdateBatchCommand) Counts() (batch.Counts, bool) {
	if c.counts == nil {
		return batch.Counts{}, false
	}
	return *c.counts, true
}

func (c *UpdateBatchCommand) setBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.batchID = id
	return nil
}

func (c *UpdateBatchCommand) setChanges(details *batch.Details, counts *batch.Counts) error {
	if details == nil && counts == nil {
		return errs.NewValueIsRequiredError("details or counts")
	}
	if counts != nil {
		if err := counts.Validate(); err != nil {
			return err
		}
		copied := *counts
		c.counts = &copied
	}
	if details != nil {
		copied := *details
		c.details = &copied
	}
	return nil
}
