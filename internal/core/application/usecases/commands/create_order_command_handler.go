package commands

import (
	"context"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order creation and initial routing.
//
// Every order is persisted in Created status and then routed by type through
// the compare-and-swap primitive:
//   - PRESCRIPTION -> AwaitingPrescription (the prescription gate takes over)
//   - OTC, review required -> Queued (and enqueued for pharmacists)
//   - OTC, no review -> Fulfillable (immediately payable)
type CreateOrderCommandHandler struct {
	orders  ports.OrderRepository
	queue   ports.Queue
	catalog ports.Catalog
	routing RoutingPolicy
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	orders ports.OrderRepository,
	queue ports.Queue,
	catalog ports.Catalog,
	routing RoutingPolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orders:  orders,
		queue:   queue,
		catalog: catalog,
		routing: routing,
	}
}

// Handle processes the order creation command and returns the stored order
// after routing.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.OrderType())
	if err != nil {
		return nil, err
	}

	if err = h.orders.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	switch cmd.OrderType() {
	case order.TypePrescription:
		err = h.routePrescription(ctx, cmd)
	case order.TypeOTC:
		err = h.routeOTC(ctx, cmd)
	}
	if err != nil {
		return nil, err
	}

	return h.orders.Get(ctx, cmd.OrderID())
}

func (h CreateOrderCommandHandler) routePrescription(ctx context.Context, cmd CreateOrderCommand) error {
	ok, err := h.orders.CompareAndSwapState(ctx, cmd.OrderID(), order.Created, order.AwaitingPrescription)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewConflictError("route prescription order")
	}
	return nil
}

func (h CreateOrderCommandHandler) routeOTC(ctx context.Context, cmd CreateOrderCommand) error {
	items, err := h.priceItems(ctx, cmd.Items())
	if err != nil {
		return err
	}
	if err = h.orders.SaveItems(ctx, cmd.OrderID(), items); err != nil {
		return err
	}

	next := order.Fulfillable
	if h.routing.OTCRequiresReview {
		next = order.Queued
	}

	ok, err := h.orders.CompareAndSwapState(ctx, cmd.OrderID(), order.Created, next)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewConflictError("route OTC order")
	}

	if next == order.Queued {
		return h.queue.Enqueue(ctx, cmd.OrderID())
	}
	return nil
}

// priceItems resolves submitted items against the catalog, capturing the
// current unit price onto each line item.
func (h CreateOrderCommandHandler) priceItems(ctx context.Context, inputs []ItemInput) ([]order.Item, error) {
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
