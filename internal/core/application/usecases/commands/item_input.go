package commands

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/errs"
)

// ErrQuantityIsInvalid is returned when a line item input carries a
// non-positive quantity.
var ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")

// ItemInput is an unpriced line item as submitted by a caller. Prices are
// resolved against the catalog inside the handlers, never trusted from the
// request.
type ItemInput struct {
	MedicineID kernel.UUID
	Quantity   int
}

// Validate checks the item input's medicine id and quantity.
func (i ItemInput) Validate() error {
	if err := i.MedicineID.Validate(); err != nil {
		return err
	}
	if i.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", ErrQuantityIsInvalid)
	}
	return nil
}

// validateItemInputs validates a whole input list.
func validateItemInputs(items []ItemInput) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}
