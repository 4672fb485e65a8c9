package commands

import (
	"errors"
	"strings"

	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand represents a request to register a new courier on the roster.
//
// Example:
//
//	cmd, err := NewCreateCourierCommand("Maria Souza", courier.Profile{Phone: "11 99999-0000"})
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//
//	handler := NewCreateCourierCommandHandler(uowFactory, m)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create courier: %w", err)
//	}
//	fmt.Printf("Created courier with ID: %s", cmd.CourierID())
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	profile   courier.Profile

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
// Automatically generates a unique ID for the courier.
func NewCreateCourierCommand(name string, profile courier.Profile) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(kernel.NewUUID()),
		command.setName(name),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the ID the new courier will get.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CreateCourierCommand) Name() string {
	return c.name
}

func (c CreateCourierCommand) Profile() courier.Profile {
	return c.profile
}

func (c *CreateCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return courier.ErrNameIsRequired
	}

	c.name = name
	return nil
}
