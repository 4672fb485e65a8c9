package commands

import (
	"errors"

	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/guard"
)

var ErrDeleteCourierCommandIsNotConstructed = errors.New(
	"DeleteCourierCommand must be created via NewDeleteCourierCommand constructor",
)

// DeleteCourierCommand removes a courier together with every batch assigned to it.
type DeleteCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteCourierCommand(courierID kernel.UUID) (DeleteCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return DeleteCourierCommand{}, err
	}

	return DeleteCourierCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteCourierCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCourierCommandIsNotConstructed)
}

func (c DeleteCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}
