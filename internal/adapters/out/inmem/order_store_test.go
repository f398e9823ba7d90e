package inmem_test

import (
	"sync"
	"testing"
	"time"

	"mediflow/internal/adapters/out/inmem"
	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addOrder(t *testing.T, store *inmem.OrderStore, customerID kernel.UUID) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(kernel.NewUUID(), customerID, order.TypeOTC)
	require.NoError(t, err)
	require.NoError(t, store.Add(t.Context(), aggregate))

	return aggregate
}

func addQueuedOrder(t *testing.T, store *inmem.OrderStore) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	now := time.Now().UTC()
	aggregate, err := order.RestoreOrder(
		id, kernel.NewUUID(),
		order.TypePrescription,
		nil,
		order.Queued,
		true, "rx/ref",
		nil,
		order.PaymentUnpaid,
		now, now,
	)
	require.NoError(t, err)
	require.NoError(t, store.Add(t.Context(), aggregate))

	return id
}

func TestOrderStore_AddAndGet(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	aggregate := addOrder(t, store, kernel.NewUUID())

	restored, err := store.Get(ctx, aggregate.ID())
	require.NoError(t, err)
	assert.True(t, restored.ID().IsEqual(aggregate.ID()))
	assert.Equal(t, order.Created, restored.Status())
	assert.Equal(t, order.PaymentUnpaid, restored.PaymentStatus())

	t.Run("duplicate add is rejected", func(t *testing.T) {
		err := store.Add(ctx, aggregate)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Get(ctx, kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrderStore_GetReturnsIsolatedSnapshot(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	id := addQueuedOrder(t, store)

	first, err := store.Get(ctx, id)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the store.
	require.NoError(t, first.Claim(kernel.NewUUID()))

	second, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order.Queued, second.Status())
	assert.Nil(t, second.ClaimedBy())
}

func TestOrderStore_CompareAndSwapState(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	aggregate := addOrder(t, store, kernel.NewUUID())

	t.Run("swap succeeds when expectation holds", func(t *testing.T) {
		ok, err := store.CompareAndSwapState(ctx, aggregate.ID(), order.Created, order.Fulfillable)
		require.NoError(t, err)
		assert.True(t, ok)

		current, err := store.Get(ctx, aggregate.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Fulfillable, current.Status())
	})

	t.Run("swap fails without error when expectation is stale", func(t *testing.T) {
		ok, err := store.CompareAndSwapState(ctx, aggregate.ID(), order.Created, order.Queued)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown id is an error, not a failed swap", func(t *testing.T) {
		_, err := store.CompareAndSwapState(ctx, kernel.NewUUID(), order.Created, order.Queued)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrderStore_Claim(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	id := addQueuedOrder(t, store)
	pharmacistID := kernel.NewUUID()

	ok, err := store.Claim(ctx, id, pharmacistID)
	require.NoError(t, err)
	require.True(t, ok)

	claimed, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order.Claimed, claimed.Status())
	require.NotNil(t, claimed.ClaimedBy())
	assert.True(t, claimed.ClaimedBy().IsEqual(pharmacistID))

	t.Run("second claim loses", func(t *testing.T) {
		ok, err := store.Claim(ctx, id, kernel.NewUUID())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Claim(ctx, kernel.NewUUID(), pharmacistID)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrderStore_Claim_ConcurrentExactlyOneWinner(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	id := addQueuedOrder(t, store)

	const contenders = 64
	wins := make([]bool, contenders)
	claimErrs := make([]error, contenders)
	pharmacists := make([]kernel.UUID, contenders)
	for i := range pharmacists {
		pharmacists[i] = kernel.NewUUID()
	}

	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins[i], claimErrs[i] = store.Claim(ctx, id, pharmacists[i])
		}(i)
	}
	wg.Wait()

	winners := 0
	var winnerID kernel.UUID
	for i := range wins {
		require.NoError(t, claimErrs[i])
		if wins[i] {
			winners++
			winnerID = pharmacists[i]
		}
	}
	require.Equal(t, 1, winners)

	claimed, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, claimed.ClaimedBy())
	assert.True(t, claimed.ClaimedBy().IsEqual(winnerID))
}

func TestOrderStore_GetAllByCustomer_NewestFirst(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	customerID := kernel.NewUUID()

	base := time.Now().UTC().Add(-time.Hour)
	ids := make([]kernel.UUID, 3)
	for i := range ids {
		ids[i] = kernel.NewUUID()
		createdAt := base.Add(time.Duration(i) * time.Minute)
		aggregate, err := order.RestoreOrder(
			ids[i], customerID,
			order.TypeOTC, nil,
			order.Created, false, "", nil,
			order.PaymentUnpaid,
			createdAt, createdAt,
		)
		require.NoError(t, err)
		require.NoError(t, store.Add(ctx, aggregate))
	}
	addOrder(t, store, kernel.NewUUID())

	orders, err := store.GetAllByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.True(t, orders[0].ID().IsEqual(ids[2]))
	assert.True(t, orders[1].ID().IsEqual(ids[1]))
	assert.True(t, orders[2].ID().IsEqual(ids[0]))
}

func TestOrderStore_GetAllInStatus(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()

	queued := addQueuedOrder(t, store)
	addOrder(t, store, kernel.NewUUID())

	orders, err := store.GetAllInStatus(ctx, order.Queued)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].ID().IsEqual(queued))
}

func TestOrderStore_SaveItemsAndPaymentStatus(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	aggregate := addOrder(t, store, kernel.NewUUID())

	item, err := order.NewItem(kernel.NewUUID(), 2, decimal.RequireFromString("45.00"))
	require.NoError(t, err)
	require.NoError(t, store.SaveItems(ctx, aggregate.ID(), []order.Item{item}))
	require.NoError(t, store.SavePaymentStatus(ctx, aggregate.ID(), order.PaymentFailed))

	current, err := store.Get(ctx, aggregate.ID())
	require.NoError(t, err)
	require.Len(t, current.Items(), 1)
	assert.True(t, current.Amount().Equal(decimal.RequireFromString("90.00")))
	assert.Equal(t, order.PaymentFailed, current.PaymentStatus())

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, store.SaveItems(ctx, kernel.NewUUID(), []order.Item{item}), errs.ErrObjectNotFound)
		assert.ErrorIs(t, store.SavePaymentStatus(ctx, kernel.NewUUID(), order.PaymentPaid), errs.ErrObjectNotFound)
	})
}

func TestOrderStore_SavePrescription(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.TypePrescription)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, aggregate))

	require.NoError(t, store.SavePrescription(ctx, aggregate.ID(), "rx/first.pdf"))
	require.NoError(t, store.SavePrescription(ctx, aggregate.ID(), "rx/second.pdf"))

	current, err := store.Get(ctx, aggregate.ID())
	require.NoError(t, err)
	assert.True(t, current.PrescriptionAttached())
	assert.Equal(t, "rx/second.pdf", current.PrescriptionRef())

	assert.ErrorIs(t, store.SavePrescription(ctx, kernel.NewUUID(), "rx/x.pdf"), errs.ErrObjectNotFound)
}
