package commands

import (
	"errors"
	"strings"

	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/guard"
)

var ErrUpdateCourierCommandIsNotConstructed = errors.New(
	"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
)

// UpdateCourierCommand replaces every field of a courier except its ID.
type UpdateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	profile   courier.Profile

	guard guard.ConstructorGuard
}

func NewUpdateCourierCommand(courierID kernel.UUID, name string, profile courier.Profile) (UpdateCourierCommand, error) {
	command := UpdateCourierCommand{
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(courierID),
		command.setName(name),
	); err != nil {
		return UpdateCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

func (c UpdateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c UpdateCourierCommand) Name() string {
	return c.name
}

func (c UpdateCourierCommand) Profile() courier.Profile {
	return c.profile
}

func (c *UpdateCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *UpdateCourierCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return courier.ErrNameIsRequired
	}

	c.name = name
	return nil
}
