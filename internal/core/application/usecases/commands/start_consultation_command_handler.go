package commands

import (
	"context"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"
)

// StartConsultationCommandHandler moves a claimed order into consultation.
// Only the pharmacist who holds the claim may start the consultation.
type StartConsultationCommandHandler struct {
	orders ports.OrderRepository
}

// NewStartConsultationCommandHandler creates a handler for starting consultations.
func NewStartConsultationCommandHandler(orders ports.OrderRepository) StartConsultationCommandHandler {
	return StartConsultationCommandHandler{
		orders: orders,
	}
}

// Handle processes the start consultation command.
func (h StartConsultationCommandHandler) Handle(ctx context.Context, cmd StartConsultationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = aggregate.StartConsultation(cmd.PharmacistID()); err != nil {
		return err
	}

	ok, err := h.orders.CompareAndSwapState(ctx, cmd.OrderID(), order.Claimed, order.InConsultation)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewConflictError("start consultation")
	}

	return nil
}
