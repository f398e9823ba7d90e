package commands

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a pharmacist attempting to take exclusive
// ownership of a queued order.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	pharmacistID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command to claim a queued order.
func NewClaimOrderCommand(orderID kernel.UUID, pharmacistID kernel.UUID) (ClaimOrderCommand, error) {
	command := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPharmacistID(pharmacistID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PharmacistID returns the claiming pharmacist ID from the command.
func (c ClaimOrderCommand) PharmacistID() kernel.UUID {
	return c.pharmacistID
}

func (c *ClaimOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *ClaimOrderCommand) setPharmacistID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.pharmacistID = id
	return nil
}
