package commands

import (
	"context"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order on behalf of a customer or a
// pharmacist, subject to the configured cancellation policy. Customers may
// only cancel their own orders.
type CancelOrderCommandHandler struct {
	orders ports.OrderRepository
	queue  ports.Queue
	policy CancellationPolicy
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	orders ports.OrderRepository,
	queue ports.Queue,
	policy CancellationPolicy,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		orders: orders,
		queue:  queue,
		policy: policy,
	}
}

// Handle processes the cancel order command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !h.policy.Allows(cmd.Role()) {
		return errs.NewUnauthorizedError("cancellation is not allowed for this role")
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if cmd.Role() == ports.RoleCustomer && aggregate.CustomerID() != cmd.RequesterID() {
		return errs.NewUnauthorizedError("order belongs to another customer")
	}
	if aggregate.Status().IsTerminal() {
		return errs.NewInvalidStateError("cancel order", aggregate.Status().String())
	}

	current := aggregate.Status()
	ok, err := h.orders.CompareAndSwapState(ctx, cmd.OrderID(), current, order.Cancelled)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewConflictError("cancel order")
	}

	if current == order.Queued {
		if _, err = h.queue.Remove(ctx, cmd.OrderID()); err != nil {
			return err
		}
	}

	return nil
}
