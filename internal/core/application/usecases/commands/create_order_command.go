package commands

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOTCItemsRequired = errors.New("OTC orders must carry at least one item")
)

// CreateOrderCommand represents a request to create a new pharmacy order.
// Prescription orders may start with an empty item list (the claiming
// pharmacist fills it during consultation); OTC orders must name their
// items up front.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	orderType  order.Type
	items      []ItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers, the order type, and the item list rules per type.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	orderType order.Type,
	items []ItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setType(orderType),
		cmd.setItems(orderType, items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the owning customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// OrderType returns the requested order type.
func (c CreateOrderCommand) OrderType() order.Type {
	return c.orderType
}

// Items returns the submitted, unpriced item inputs.
func (c CreateOrderCommand) Items() []ItemInput {
	return append([]ItemInput(nil), c.items...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setItems(orderType order.Type, items []ItemInput) error {
	if orderType == order.TypeOTC && len(items) == 0 {
		return ErrOTCItemsRequired
	}
	if err := validateItemInputs(items); err != nil {
		return err
	}
	c.items = append([]ItemInput(nil), items...)
	return nil
}
