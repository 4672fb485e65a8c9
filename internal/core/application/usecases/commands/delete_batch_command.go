package commands

import (
	"errors"

	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/guard"
)

var ErrDeleteBatchCommandIsNotConstructed = errors.New(
	"DeleteBatchCommand must be created via NewDeleteBatchCommand constructor",
)

// DeleteBatchCommand removes one batch, whatever its status.
type DeleteBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteBatchCommand(batchID kernel.UUID) (DeleteBatchCommand, error) {
	if err := batchID.Validate(); err != nil {
		return DeleteBatchCommand{}, err
	}

	return DeleteBatchCommand{
		batchID: batchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrDeleteBatchCommandIsNotConstructed)
}

func (c DeleteBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}
