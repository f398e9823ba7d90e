package queries_test

import (
	"testing"
	"time"

	"mediflow/internal/adapters/out/inmem"
	"mediflow/internal/core/application/usecases/queries"
	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCustomerOrdersQueryHandler_ReturnsOwnOrdersNewestFirst(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewOrderStore()
	handler := queries.NewGetCustomerOrdersQueryHandler(store)

	customerID := kernel.NewUUID()
	otherCustomer := kernel.NewUUID()
	base := time.Now().UTC().Add(-time.Hour)

	item, err := order.NewItem(kernel.NewUUID(), 3, decimal.RequireFromString("24.50"))
	require.NoError(t, err)

	older, err := order.RestoreOrder(
		kernel.NewUUID(), customerID,
		order.TypeOTC, []order.Item{item},
		order.Fulfillable, false, "", nil,
		order.PaymentUnpaid,
		base, base,
	)
	require.NoError(t, err)

	newer, err := order.RestoreOrder(
		kernel.NewUUID(), customerID,
		order.TypePrescription, nil,
		order.AwaitingPrescription, false, "", nil,
		order.PaymentUnpaid,
		base.Add(time.Minute), base.Add(time.Minute),
	)
	require.NoError(t, err)

	foreign, err := order.NewOrder(kernel.NewUUID(), otherCustomer, order.TypeOTC)
	require.NoError(t, err)

	for _, aggregate := range []*order.Order{older, newer, foreign} {
		require.NoError(t, store.Add(ctx, aggregate))
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	require.NoError(t, err)
	responses, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	require.Len(t, responses, 2)

	assert.Equal(t, newer.ID().String(), responses[0].OrderID)
	assert.Equal(t, older.ID().String(), responses[1].OrderID)

	otc := responses[1]
	assert.Equal(t, order.TypeOTC.String(), otc.OrderType)
	assert.Equal(t, order.Fulfillable.String(), otc.Status)
	require.Len(t, otc.Items, 1)
	assert.Equal(t, 3, otc.Items[0].Quantity)
	assert.True(t, otc.Items[0].Total.Equal(decimal.RequireFromString("73.50")))
	assert.True(t, otc.Amount.Equal(decimal.RequireFromString("73.50")))
	assert.Equal(t, "", otc.ClaimedBy)
}

func TestGetCustomerOrdersQueryHandler_EmptyHistory(t *testing.T) {
	ctx := t.Context()
	handler := queries.NewGetCustomerOrdersQueryHandler(inmem.NewOrderStore())

	query, err := queries.NewGetCustomerOrdersQuery(kernel.NewUUID())
	require.NoError(t, err)
	responses, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestGetCustomerOrdersQueryHandler_NotConstructedQuery(t *testing.T) {
	handler := queries.NewGetCustomerOrdersQueryHandler(inmem.NewOrderStore())

	_, err := handler.Handle(t.Context(), queries.GetCustomerOrdersQuery{})
	assert.ErrorIs(t, err, queries.ErrGetCustomerOrdersQueryIsNotConstructed)
}
