package queries

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
)

// OrderItemResponse is one line item of an order.
type OrderItemResponse struct {
	MedicineID string
	Quantity   int
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
}

// CustomerOrderResponse is one order in a customer's history.
type CustomerOrderResponse struct {
	OrderID              string
	OrderType            string
	Status               string
	PaymentStatus        string
	PrescriptionAttached bool
	ClaimedBy            string
	Items                []OrderItemResponse
	Amount               decimal.Decimal
	CreatedAt            time.Time
	StateChangedAt       time.Time
}

// GetCustomerOrdersQueryHandler retrieves a customer's order history,
// newest first.
type GetCustomerOrdersQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetCustomerOrdersQueryHandler creates a handler for order history queries.
func NewGetCustomerOrdersQueryHandler(orders ports.OrderRepository) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{
		orders: orders,
	}
}

// Handle executes the customer order history query.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]CustomerOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.orders.GetAllByCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerOrderResponse, 0, len(aggregates))
	for _, aggregate := range aggregates {
		responses = append(responses, toCustomerOrderResponse(aggregate))
	}

	return responses, nil
}

func toCustomerOrderResponse(aggregate *order.Order) CustomerOrderResponse {
	items := make([]OrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemResponse{
			MedicineID: item.MedicineID().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			Total:      item.Total(),
		})
	}

	claimedBy := ""
	if aggregate.ClaimedBy() != nil {
		claimedBy = aggregate.ClaimedBy().String()
	}

	return CustomerOrderResponse{
		OrderID:              aggregate.ID().String(),
		OrderType:            aggregate.Type().String(),
		Status:               aggregate.Status().String(),
		PaymentStatus:        aggregate.PaymentStatus().String(),
		PrescriptionAttached: aggregate.PrescriptionAttached(),
		ClaimedBy:            claimedBy,
		Items:                items,
		Amount:               aggregate.Amount(),
		CreatedAt:            aggregate.CreatedAt(),
		StateChangedAt:       aggregate.StateChangedAt(),
	}
}
