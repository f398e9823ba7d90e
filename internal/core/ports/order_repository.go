// Package ports defines the contracts between the core and its adapters:
// repositories for the order and pharmacist aggregates, the shared pharmacist
// queue, and the external collaborators (auth, catalog, artifact storage,
// settlement). These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// It is the single source of truth for order state.
//
// The lifecycle state has exactly one mutation path: the conditional
// transitions CompareAndSwapState and Claim. Both are atomic with respect to
// all other mutators of the same order (single-order linearizability) and
// fail silently, returning false with no side effect, so callers can run
// lock-free optimistic transitions. All other mutators change non-state
// fields only.
type OrderRepository interface {
	// Add persists a new order aggregate. The order must be valid and not
	// already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier. Returns an
	// errs.ObjectNotFoundError when the id is unknown. Reads are immediately
	// consistent with the last successful conditional write.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByCustomer retrieves all orders owned by a customer, newest first.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given lifecycle
	// status. Used by the consultation watchdog to find stuck orders.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// CompareAndSwapState atomically transitions the order's state from
	// expected to next and stamps stateChangedAt. Returns (false, nil) when
	// the current state does not match expected; no side effect occurs.
	CompareAndSwapState(ctx context.Context, id kernel.UUID, expected, next order.Status) (bool, error)

	// Claim is the specialized conditional transition Queued -> Claimed,
	// additionally conditioned on claimedBy being unset, which it sets to
	// pharmacistID. The check and both writes are a single indivisible
	// operation: under arbitrary concurrent calls at most one returns true.
	Claim(ctx context.Context, id kernel.UUID, pharmacistID kernel.UUID) (bool, error)

	// SavePrescription records the prescription artifact reference and sets
	// the monotonic attached flag. Re-saving overwrites the reference only.
	SavePrescription(ctx context.Context, id kernel.UUID, artifactRef string) error

	// SaveItems replaces the order's line item list.
	SaveItems(ctx context.Context, id kernel.UUID, items []order.Item) error

	// SavePaymentStatus records the settlement outcome.
	SavePaymentStatus(ctx context.Context, id kernel.UUID, status order.PaymentStatus) error
}
