package commands

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrRequesterRoleIsInvalid = errors.New("requester role must be customer or pharmacist")
)

// CancelOrderCommand represents a request to cancel an order, carrying who is
// asking so the cancellation policy can be applied.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID
	role        ports.Role

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
func NewCancelOrderCommand(orderID kernel.UUID, requesterID kernel.UUID, role ports.Role) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setRequesterID(requesterID),
		command.setRole(role),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequesterID returns the ID of the user requesting cancellation.
func (c CancelOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Role returns the requester's role from the command.
func (c CancelOrderCommand) Role() ports.Role {
	return c.role
}

func (c *CancelOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *CancelOrderCommand) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.requesterID = id
	return nil
}

func (c *CancelOrderCommand) setRole(role ports.Role) error {
	if role != ports.RoleCustomer && role != ports.RolePharmacist {
		return ErrRequesterRoleIsInvalid
	}

	c.role = role
	return nil
}
