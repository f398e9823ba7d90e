package commands

import (
	"context"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"
)

// ProcessPaymentCommandHandler settles payment for a fulfillable order.
//
// Ordering matters here: the already-paid guard runs before the gateway is
// ever contacted, so a duplicate payment request can never charge twice. A
// declined settlement records PaymentFailed but leaves the order in
// Fulfillable, so the customer can retry.
type ProcessPaymentCommandHandler struct {
	orders     ports.OrderRepository
	settlement ports.SettlementGateway
}

// NewProcessPaymentCommandHandler creates a handler for payment processing.
func NewProcessPaymentCommandHandler(
	orders ports.OrderRepository,
	settlement ports.SettlementGateway,
) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		orders:     orders,
		settlement: settlement,
	}
}

// Handle processes the payment command and returns the settlement reference.
func (h ProcessPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}
	if aggregate.CustomerID() != cmd.CustomerID() {
		return "", errs.NewUnauthorizedError("order belongs to another customer")
	}
	if aggregate.PaymentStatus() == order.PaymentPaid {
		return "", errs.ErrAlreadyPaid
	}
	if aggregate.Status() != order.Fulfillable {
		return "", errs.NewInvalidStateError("process payment", aggregate.Status().String())
	}

	txnRef, err := h.settlement.Settle(ctx, cmd.OrderID(), aggregate.Amount(), cmd.Method())
	if err != nil {
		if saveErr := h.orders.SavePaymentStatus(ctx, cmd.OrderID(), order.PaymentFailed); saveErr != nil {
			return "", saveErr
		}
		return "", errs.NewExternalFailureError("settlement gateway", err)
	}

	ok, err := h.orders.CompareAndSwapState(ctx, cmd.OrderID(), order.Fulfillable, order.Paid)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errs.NewConflictError("record payment")
	}
	if err = h.orders.SavePaymentStatus(ctx, cmd.OrderID(), order.PaymentPaid); err != nil {
		return "", err
	}

	return txnRef, nil
}
