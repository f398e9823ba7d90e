package commands

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/guard"
)

var (
	ErrAttachPrescriptionCommandIsNotConstructed = errors.New(
		"AttachPrescriptionCommand must be created via NewAttachPrescriptionCommand constructor",
	)
	ErrFilenameIsRequired = errors.New("filename is required")
	ErrContentIsRequired  = errors.New("content is required")
)

// AttachPrescriptionCommand represents a customer uploading a prescription
// document for an order.
type AttachPrescriptionCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	filename   string
	content    []byte

	guard guard.ConstructorGuard
}

// NewAttachPrescriptionCommand creates a command to attach a prescription.
// Validates that both IDs are valid and the document is non-empty.
func NewAttachPrescriptionCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	filename string,
	content []byte,
) (AttachPrescriptionCommand, error) {
	command := AttachPrescriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setFilename(filename),
		command.setContent(content),
	); err != nil {
		return AttachPrescriptionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachPrescriptionCommand) Validate() error {
	return c.guard.Validate(ErrAttachPrescriptionCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c AttachPrescriptionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer ID from the command.
func (c AttachPrescriptionCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Filename returns the uploaded document name.
func (c AttachPrescriptionCommand) Filename() string {
	return c.filename
}

// Content returns the uploaded document bytes.
func (c AttachPrescriptionCommand) Content() []byte {
	return c.content
}

func (c *AttachPrescriptionCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *AttachPrescriptionCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *AttachPrescriptionCommand) setFilename(filename string) error {
	if filename == "" {
		return ErrFilenameIsRequired
	}

	c.filename = filename
	return nil
}

func (c *AttachPrescriptionCommand) setContent(content []byte) error {
	if len(content) == 0 {
		return ErrContentIsRequired
	}

	c.content = content
	return nil
}
