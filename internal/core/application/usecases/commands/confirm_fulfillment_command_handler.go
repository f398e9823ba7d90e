package commands

import (
	"context"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"
)

// ConfirmFulfillmentCommandHandler closes the lifecycle of a paid order.
type ConfirmFulfillmentCommandHandler struct {
	orders ports.OrderRepository
}

// NewConfirmFulfillmentCommandHandler creates a handler for fulfillment confirmation.
func NewConfirmFulfillmentCommandHandler(orders ports.OrderRepository) ConfirmFulfillmentCommandHandler {
	return ConfirmFulfillmentCommandHandler{
		orders: orders,
	}
}

// Handle processes the confirm fulfillment command.
func (h ConfirmFulfillmentCommandHandler) Handle(ctx context.Context, cmd ConfirmFulfillmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = aggregate.Fulfill(); err != nil {
		return err
	}

	ok, err := h.orders.CompareAndSwapState(ctx, cmd.OrderID(), order.Paid, order.Fulfilled)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewConflictError("confirm fulfillment")
	}

	return nil
}
