package commands

import (
	"context"

	"mediflow/internal/core/domain/services"
	"mediflow/internal/core/ports"
)

// ClaimOrderCommandHandler handles the claim race between pharmacists.
//
// The single atomic Claim operation on the repository decides the winner.
// Losers never receive an error from the race itself: the handler re-reads
// the order and classifies the outcome so callers can tell a lost race apart
// from an order that was cancelled or already moved on.
type ClaimOrderCommandHandler struct {
	orders ports.OrderRepository
	queue  ports.Queue
}

// NewClaimOrderCommandHandler creates a handler for claim attempts.
func NewClaimOrderCommandHandler(orders ports.OrderRepository, queue ports.Queue) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		orders: orders,
		queue:  queue,
	}
}

// Handle processes a claim attempt and reports its outcome.
// Exactly one pharmacist observes ClaimResultClaimed for any given order.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (services.ClaimResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.ClaimResultUnknown, err
	}

	claimed, err := h.orders.Claim(ctx, cmd.OrderID(), cmd.PharmacistID())
	if err != nil {
		return services.ClaimResultUnknown, err
	}
	if claimed {
		// Queue removal is cleanup, not arbitration. The claim already
		// happened; a missing queue entry is not an error.
		if _, err = h.queue.Remove(ctx, cmd.OrderID()); err != nil {
			return services.ClaimResultUnknown, err
		}
		return services.ClaimResultClaimed, nil
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return services.ClaimResultUnknown, err
	}

	return services.NewClaimArbiter().ClassifyLoss(aggregate), nil
}
