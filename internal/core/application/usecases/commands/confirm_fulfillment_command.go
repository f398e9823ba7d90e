package commands

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/guard"
)

var ErrConfirmFulfillmentCommandIsNotConstructed = errors.New(
	"ConfirmFulfillmentCommand must be created via NewConfirmFulfillmentCommand constructor",
)

// ConfirmFulfillmentCommand represents a pharmacist marking a paid order as
// handed over to the customer.
type ConfirmFulfillmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmFulfillmentCommand creates a command to confirm fulfillment.
func NewConfirmFulfillmentCommand(orderID kernel.UUID) (ConfirmFulfillmentCommand, error) {
	command := ConfirmFulfillmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return ConfirmFulfillmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmFulfillmentCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c ConfirmFulfillmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ConfirmFulfillmentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}
