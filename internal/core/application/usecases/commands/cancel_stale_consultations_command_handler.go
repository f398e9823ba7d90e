package commands

import (
	"context"
	"time"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
)

// CancelStaleConsultationsCommandHandler reclaims orders abandoned by
// pharmacists. An order that stays Claimed or InConsultation past the timeout
// is cancelled through the same compare-and-swap path as every other
// transition, so a pharmacist finishing at the last moment always wins over
// the sweep.
type CancelStaleConsultationsCommandHandler struct {
	orders ports.OrderRepository
}

// NewCancelStaleConsultationsCommandHandler creates a handler for the stale
// consultation sweep.
func NewCancelStaleConsultationsCommandHandler(orders ports.OrderRepository) CancelStaleConsultationsCommandHandler {
	return CancelStaleConsultationsCommandHandler{
		orders: orders,
	}
}

// Handle processes the sweep and returns how many orders were cancelled.
func (h CancelStaleConsultationsCommandHandler) Handle(
	ctx context.Context,
	cmd CancelStaleConsultationsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-cmd.Timeout())

	cancelled := 0
	for _, status := range []order.Status{order.Claimed, order.InConsultation} {
		stale, err := h.orders.GetAllInStatus(ctx, status)
		if err != nil {
			return cancelled, err
		}

		for _, aggregate := range stale {
			if aggregate.StateChangedAt().After(cutoff) {
				continue
			}

			// A lost swap means the pharmacist moved the order first;
			// that is the outcome we want, not a failure.
			ok, err := h.orders.CompareAndSwapState(ctx, aggregate.ID(), status, order.Cancelled)
			if err != nil {
				return cancelled, err
			}
			if ok {
				cancelled++
			}
		}
	}

	return cancelled, nil
}
