package commands

import (
	"context"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"
)

// FinalizeItemsCommandHandler closes a consultation with the agreed item list
// and makes the order payable. Items are re-priced from the catalog at
// finalization time so the customer pays current prices.
type FinalizeItemsCommandHandler struct {
	orders  ports.OrderRepository
	catalog ports.Catalog
}

// NewFinalizeItemsCommandHandler creates a handler for consultation finalization.
func NewFinalizeItemsCommandHandler(orders ports.OrderRepository, catalog ports.Catalog) FinalizeItemsCommandHandler {
	return FinalizeItemsCommandHandler{
		orders:  orders,
		catalog: catalog,
	}
}

// Handle processes the finalize items command.
func (h FinalizeItemsCommandHandler) Handle(ctx context.Context, cmd FinalizeItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	items, err := h.priceItems(ctx, cmd.Items())
	if err != nil {
		return err
	}
	if err = aggregate.Finalize(cmd.PharmacistID(), items); err != nil {
		return err
	}

	if err = h.orders.SaveItems(ctx, cmd.OrderID(), items); err != nil {
		return err
	}

	ok, err := h.orders.CompareAndSwapState(ctx, cmd.OrderID(), order.InConsultation, order.Fulfillable)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewConflictError("finalize consultation")
	}

	return nil
}

func (h FinalizeItemsCommandHandler) priceItems(ctx context.Context, inputs []ItemInput) ([]order.Item, error) {
	items := make([]order.Item, 0, len(inputs))
	for _, input := range inputs {
		medicine, err := h.catalog.GetMedicine(ctx, input.MedicineID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(input.MedicineID, input.Quantity, medicine.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
