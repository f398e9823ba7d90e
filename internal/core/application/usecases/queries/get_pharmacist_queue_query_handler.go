package queries

import (
	"context"
	"errors"
	"time"

	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"
)

// QueueEntryResponse is one pending order as presented to pharmacists.
type QueueEntryResponse struct {
	OrderID              string
	OrderType            string
	PrescriptionAttached bool
	EnqueuedSince        time.Time
}

// GetPharmacistQueueQueryHandler reads the queue and joins each entry with
// its order. Entries whose order has already left Queued (a claim or cancel
// that has not swept the queue yet) are filtered out rather than surfaced.
type GetPharmacistQueueQueryHandler struct {
	orders ports.OrderRepository
	queue  ports.Queue
}

// NewGetPharmacistQueueQueryHandler creates a handler for queue listings.
func NewGetPharmacistQueueQueryHandler(orders ports.OrderRepository, queue ports.Queue) GetPharmacistQueueQueryHandler {
	return GetPharmacistQueueQueryHandler{
		orders: orders,
		queue:  queue,
	}
}

// Handle executes the queue listing query.
func (h GetPharmacistQueueQueryHandler) Handle(
	ctx context.Context,
	query GetPharmacistQueueQuery,
) ([]QueueEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ids, err := h.queue.ListPending(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	entries := make([]QueueEntryResponse, 0, len(ids))
	for _, id := range ids {
		aggregate, getErr := h.orders.Get(ctx, id)
		if errors.Is(getErr, errs.ErrObjectNotFound) {
			continue
		}
		if getErr != nil {
			return nil, getErr
		}
		if aggregate.Status() != order.Queued {
			continue
		}

		entries = append(entries, QueueEntryResponse{
			OrderID:              aggregate.ID().String(),
			OrderType:            aggregate.Type().String(),
			PrescriptionAttached: aggregate.PrescriptionAttached(),
			EnqueuedSince:        aggregate.StateChangedAt(),
		})
	}

	return entries, nil
}
