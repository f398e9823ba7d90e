package commands

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/guard"
)

var (
	ErrFinalizeItemsCommandIsNotConstructed = errors.New(
		"FinalizeItemsCommand must be created via NewFinalizeItemsCommand constructor",
	)
	ErrFinalItemsRequired = errors.New("at least one item is required to finalize an order")
)

// FinalizeItemsCommand represents the pharmacist closing a consultation with
// the agreed list of medicines.
type FinalizeItemsCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	pharmacistID kernel.UUID
	items        []ItemInput

	guard guard.ConstructorGuard
}

// NewFinalizeItemsCommand creates a command to finalize the order's items.
// The item list must be non-empty: a consultation that ends with nothing to
// dispense is a cancellation, not a finalization.
func NewFinalizeItemsCommand(
	orderID kernel.UUID,
	pharmacistID kernel.UUID,
	items []ItemInput,
) (FinalizeItemsCommand, error) {
	command := FinalizeItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPharmacistID(pharmacistID),
		command.setItems(items),
	); err != nil {
		return FinalizeItemsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeItemsCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeItemsCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c FinalizeItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PharmacistID returns the pharmacist ID from the command.
func (c FinalizeItemsCommand) PharmacistID() kernel.UUID {
	return c.pharmacistID
}

// Items returns the finalized item inputs from the command.
func (c FinalizeItemsCommand) Items() []ItemInput {
	return c.items
}

func (c *FinalizeItemsCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *FinalizeItemsCommand) setPharmacistID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.pharmacistID = id
	return nil
}

func (c *FinalizeItemsCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrFinalItemsRequired
	}
	if err := validateItemInputs(items); err != nil {
		return err
	}

	c.items = items
	return nil
}
