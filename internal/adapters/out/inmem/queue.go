package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"mediflow/internal/core/domain/model/kernel"
)

type queueEntry struct {
	orderID    kernel.UUID
	enqueuedAt time.Time
}

// Queue is an in-memory pharmacist queue. FIFO by enqueue time with order id
// as the deterministic tie-break, one entry per order.
type Queue struct {
	mu      sync.Mutex
	entries map[kernel.UUID]queueEntry
	clock   func() time.Time
}

// NewQueue creates an empty in-memory queue.
func NewQueue() *Queue {
	return &Queue{
		entries: make(map[kernel.UUID]queueEntry),
		clock:   time.Now,
	}
}

// Enqueue adds an order to the tail of the queue. No-op when already present.
func (q *Queue) Enqueue(_ context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.entries[orderID]; exists {
		return nil
	}

	q.entries[orderID] = queueEntry{
		orderID:    orderID,
		enqueuedAt: q.clock().UTC(),
	}
	return nil
}

// ListPending returns up to limit order ids in service order.
func (q *Queue) ListPending(_ context.Context, limit int) ([]kernel.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries := make([]queueEntry, 0, len(q.entries))
	for _, entry := range q.entries {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].enqueuedAt.Equal(entries[j].enqueuedAt) {
			return entries[i].orderID.String() < entries[j].orderID.String()
		}
		return entries[i].enqueuedAt.Before(entries[j].enqueuedAt)
	})

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	ids := make([]kernel.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.orderID)
	}
	return ids, nil
}

// Remove deletes an order from the queue. Returns false when absent.
func (q *Queue) Remove(_ context.Context, orderID kernel.UUID) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.entries[orderID]; !exists {
		return false, nil
	}

	delete(q.entries, orderID)
	return true, nil
}
