package queries_test

import (
	"testing"
	"time"

	"mediflow/internal/adapters/out/inmem"
	"mediflow/internal/core/application/usecases/queries"
	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T, store *inmem.OrderStore, status order.Status, changedAt time.Time) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	var claimedBy *kernel.UUID
	if status == order.Claimed || status == order.InConsultation {
		claimant := kernel.NewUUID()
		claimedBy = &claimant
	}
	attached := status != order.Created && status != order.AwaitingPrescription

	aggregate, err := order.RestoreOrder(
		id, kernel.NewUUID(),
		order.TypePrescription,
		nil,
		status,
		attached,
		"",
		claimedBy,
		order.PaymentUnpaid,
		changedAt.Add(-time.Minute), changedAt,
	)
	require.NoError(t, err)
	require.NoError(t, store.Add(t.Context(), aggregate))

	return id
}

func TestGetPharmacistQueueQueryHandler_JoinsQueueWithOrders(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	queue := inmem.NewQueue()
	handler := queries.NewGetPharmacistQueueQueryHandler(store, queue)

	base := time.Now().UTC().Add(-time.Hour)
	first := storedOrder(t, store, order.Queued, base)
	second := storedOrder(t, store, order.Queued, base.Add(time.Minute))

	require.NoError(t, queue.Enqueue(ctx, first))
	require.NoError(t, queue.Enqueue(ctx, second))

	entries, err := handler.Handle(ctx, queries.NewGetPharmacistQueueQuery(0))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, first.String(), entries[0].OrderID)
	assert.Equal(t, second.String(), entries[1].OrderID)
	assert.Equal(t, order.TypePrescription.String(), entries[0].OrderType)
	assert.True(t, entries[0].PrescriptionAttached)
	assert.Equal(t, base, entries[0].EnqueuedSince)
}

func TestGetPharmacistQueueQueryHandler_FiltersEntriesThatLeftQueued(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	queue := inmem.NewQueue()
	handler := queries.NewGetPharmacistQueueQueryHandler(store, queue)

	now := time.Now().UTC()
	queued := storedOrder(t, store, order.Queued, now)
	claimed := storedOrder(t, store, order.Claimed, now)
	cancelled := storedOrder(t, store, order.Cancelled, now)

	for _, id := range []kernel.UUID{queued, claimed, cancelled} {
		require.NoError(t, queue.Enqueue(ctx, id))
	}
	// An entry whose order is gone entirely is skipped, not an error.
	require.NoError(t, queue.Enqueue(ctx, kernel.NewUUID()))

	entries, err := handler.Handle(ctx, queries.NewGetPharmacistQueueQuery(0))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, queued.String(), entries[0].OrderID)
}

func TestGetPharmacistQueueQueryHandler_AppliesLimit(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	queue := inmem.NewQueue()
	handler := queries.NewGetPharmacistQueueQueryHandler(store, queue)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		id := storedOrder(t, store, order.Queued, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, queue.Enqueue(ctx, id))
	}

	entries, err := handler.Handle(ctx, queries.NewGetPharmacistQueueQuery(2))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
