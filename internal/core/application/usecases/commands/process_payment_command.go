package commands

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/guard"
)

var (
	ErrProcessPaymentCommandIsNotConstructed = errors.New(
		"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
	)
	ErrPaymentMethodIsRequired = errors.New("payment method is required")
)

// ProcessPaymentCommand represents a customer paying for a fulfillable order.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	method     string

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command to settle an order's payment.
func NewProcessPaymentCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	method string,
) (ProcessPaymentCommand, error) {
	command := ProcessPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setMethod(method),
	); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c ProcessPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the paying customer ID from the command.
func (c ProcessPaymentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Method returns the payment method from the command.
func (c ProcessPaymentCommand) Method() string {
	return c.method
}

func (c *ProcessPaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *ProcessPaymentCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *ProcessPaymentCommand) setMethod(method string) error {
	if method == "" {
		return ErrPaymentMethodIsRequired
	}

	c.method = method
	return nil
}
