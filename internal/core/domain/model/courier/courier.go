package courier

import (
	"errors"
	"strings"

	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"
	"intimacoes/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when a courier would be left without a display name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrUnknownCourier is returned when a batch references a courier that does not exist.
	ErrUnknownCourier = errors.New("unknown courier")
)

// Profile groups the optional descriptive fields of a courier. All fields are free text
// with no cross-field constraints.
type Profile struct {
	Document       string
	Address        string
	Phone          string
	SecondaryPhone string
	PaymentKey     string
	PreferredRoute string
}

// Courier is the delivery person responsible for taking notification batches out and
// bringing them back for reconciliation. It is an aggregate root of its own: batches refer
// to it by ID only.
//
// Business rules:
//   - the ID is assigned at creation and never changes
//   - the name is required and never blank
//   - every other field is optional free text
//
// Example:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "Maria Souza", courier.Profile{Phone: "11 99999-0000"})
//	if err != nil {
//	    return err
//	}
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the display name used for ordering the roster
	name string
	// profile carries the optional contact and payment data
	profile Profile
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a courier. Leading and trailing blanks are trimmed from the name.
//
// Returns:
//   - *Courier: the new courier
//   - error: joined validation errors when the ID is invalid or the name is blank
func NewCourier(id kernel.UUID, name string, profile Profile) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}
	c.profile = profile

	return c, nil
}

// RestoreCourier rebuilds a courier loaded from a snapshot. It applies the same rules as
// NewCourier so a malformed snapshot is detected on load.
func RestoreCourier(id kernel.UUID, name string, profile Profile) (*Courier, error) {
	return NewCourier(id, name, profile)
}

// Validate fails for nil or zero-value couriers.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the display name.
func (c *Courier) Name() string {
	return c.name
}

// Profile returns the optional descriptive fields.
func (c *Courier) Profile() Profile {
	return c.profile
}

// Update replaces every field except the ID. On error the courier is left unchanged.
func (c *Courier) Update(name string, profile Profile) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameIsRequired
	}

	c.name = trimmed
	c.profile = profile
	return nil
}

// Clone returns an independent copy, used by the entity store to stage mutations.
func (c *Courier) Clone() *Courier {
	clone := *c
	return &clone
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameIsRequired
	}
	c.name = trimmed
	return nil
}
