package ports

import (
	"context"

	"mediflow/internal/core/domain/model/kernel"
)

// Queue maintains the ordered set of orders eligible for pharmacist claim.
//
// Ordering is strict FIFO by enqueue time; ties are broken by order id
// ascending for determinism. The queue holds at most one entry per order id,
// enforced here rather than by callers.
//
// ListPending is a read-only snapshot: it neither reserves nor locks entries.
// The queue is deliberately not linearizable with the claim transition; a
// pharmacist may list an order another pharmacist has just claimed and will
// simply lose the subsequent claim. That staleness is a designed property,
// resolved by the claim arbiter, not an error to eliminate.
type Queue interface {
	// Enqueue adds an order to the tail of the queue. Enqueueing an order
	// that is already present is a no-op.
	Enqueue(ctx context.Context, orderID kernel.UUID) error

	// ListPending returns up to limit order ids in service order.
	// A limit <= 0 means no limit.
	ListPending(ctx context.Context, limit int) ([]kernel.UUID, error)

	// Remove deletes an order from the queue. Idempotent: removing an absent
	// entry returns false without error.
	Remove(ctx context.Context, orderID kernel.UUID) (bool, error)
}
