package order

import (
	"fmt"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is a priced line item on an order. Items are value objects: once the
// claiming pharmacist finalizes the list during consultation it becomes the
// basis for the settlement amount and does not change afterwards.
type Item struct {
	medicineID kernel.UUID
	quantity   int
	unitPrice  decimal.Decimal
}

// NewItem creates a validated line item. The medicine ID must be a valid
// UUID, the quantity positive, and the unit price non-negative.
func NewItem(medicineID kernel.UUID, quantity int, unitPrice decimal.Decimal) (Item, error) {
	if err := medicineID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%s is negative", unitPrice))
	}
	return Item{
		medicineID: medicineID,
		quantity:   quantity,
		unitPrice:  unitPrice,
	}, nil
}

// MedicineID returns the catalog identifier of the line item.
func (i Item) MedicineID() kernel.UUID {
	return i.medicineID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the catalog price captured at finalization time.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Total returns quantity times unit price.
func (i Item) Total() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
