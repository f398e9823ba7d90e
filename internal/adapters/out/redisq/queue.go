// Package redisq implements the pharmacist queue on a Redis sorted set,
// letting several service instances share one queue. The score is the
// enqueue timestamp; Redis orders equal scores lexicographically by member,
// which yields the order-id tie-break for free.
package redisq

import (
	"context"
	"time"

	"mediflow/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const defaultKey = "pharmacist:queue"

// Queue is a Redis-backed pharmacist queue.
type Queue struct {
	client *redis.Client
	key    string
}

// NewQueue creates a queue on the given Redis client using the default key.
func NewQueue(client *redis.Client) *Queue {
	return &Queue{
		client: client,
		key:    defaultKey,
	}
}

// Enqueue adds an order to the tail of the queue. ZAddNX keeps the original
// score when the order is already queued, so re-enqueueing never moves an
// entry back.
func (q *Queue) Enqueue(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return q.client.ZAddNX(ctx, q.key, redis.Z{
		Score:  float64(time.Now().UnixNano()),
		Member: orderID.String(),
	}).Err()
}

// ListPending returns up to limit order ids in service order.
func (q *Queue) ListPending(ctx context.Context, limit int) ([]kernel.UUID, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	members, err := q.client.ZRange(ctx, q.key, 0, stop).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(members))
	for _, member := range members {
		id, idErr := kernel.UUIDFromString(member)
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Remove deletes an order from the queue. Returns false when absent.
func (q *Queue) Remove(ctx context.Context, orderID kernel.UUID) (bool, error) {
	removed, err := q.client.ZRem(ctx, q.key, orderID.String()).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}
