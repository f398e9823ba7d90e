package commands

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/guard"
)

var ErrStartConsultationCommandIsNotConstructed = errors.New(
	"StartConsultationCommand must be created via NewStartConsultationCommand constructor",
)

// StartConsultationCommand represents the claiming pharmacist opening the
// consultation for a claimed order.
type StartConsultationCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	pharmacistID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartConsultationCommand creates a command to start a consultation.
func NewStartConsultationCommand(orderID kernel.UUID, pharmacistID kernel.UUID) (StartConsultationCommand, error) {
	command := StartConsultationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPharmacistID(pharmacistID),
	); err != nil {
		return StartConsultationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartConsultationCommand) Validate() error {
	return c.guard.Validate(ErrStartConsultationCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c StartConsultationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PharmacistID returns the pharmacist ID from the command.
func (c StartConsultationCommand) PharmacistID() kernel.UUID {
	return c.pharmacistID
}

func (c *StartConsultationCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *StartConsultationCommand) setPharmacistID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.pharmacistID = id
	return nil
}
