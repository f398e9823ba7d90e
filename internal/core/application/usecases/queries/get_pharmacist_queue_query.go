// Package queries contains read-only operations for presenting system state.
// Implements the query side of the CQRS architecture: no query mutates
// anything, and results are plain response structs decoupled from aggregates.
package queries

import (
	"errors"

	"mediflow/internal/pkg/guard"
)

var ErrGetPharmacistQueueQueryIsNotConstructed = errors.New(
	"GetPharmacistQueueQuery must be created via NewGetPharmacistQueueQuery constructor",
)

// GetPharmacistQueueQuery retrieves the shared work queue in service order.
//
// The snapshot is advisory: between listing and claiming, another pharmacist
// may win any entry. Callers resolve that through the claim operation, never
// by trusting the listing.
type GetPharmacistQueueQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetPharmacistQueueQuery creates a query for the pharmacist queue.
// A limit <= 0 returns the whole queue.
func NewGetPharmacistQueueQuery(limit int) GetPharmacistQueueQuery {
	return GetPharmacistQueueQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetPharmacistQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetPharmacistQueueQueryIsNotConstructed)
}

// Limit returns the maximum number of entries to return.
func (q GetPharmacistQueueQuery) Limit() int {
	return q.limit
}
