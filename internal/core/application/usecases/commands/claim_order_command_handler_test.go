package commands_test

import (
	"testing"

	"mediflow/internal/core/application/usecases/commands"
	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/domain/services"
	"mediflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func queuedSnapshot(t *testing.T, orderID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(orderID, kernel.NewUUID(), order.TypePrescription)
	require.NoError(t, err)
	require.NoError(t, o.AwaitPrescription())
	require.NoError(t, o.AttachPrescription("ref"))
	require.NoError(t, o.Enqueue())
	return o
}

func TestClaimOrderCommandHandler_Won(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	pharmacistID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, pharmacistID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	queue := new(MockQueue)
	mock.InOrder(
		repo.On("Claim", mock.Anything, orderID, pharmacistID).Return(true, nil).Once(),
		queue.On("Remove", mock.Anything, orderID).Return(true, nil).Once(),
	)

	h := commands.NewClaimOrderCommandHandler(repo, queue)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, services.ClaimResultClaimed, result)

	repo.AssertExpectations(t)
	queue.AssertExpectations(t)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_LostToOtherPharmacist(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, kernel.NewUUID())
	require.NoError(t, err)

	snapshot := queuedSnapshot(t, orderID)
	require.NoError(t, snapshot.Claim(kernel.NewUUID()))

	repo := new(MockOrderRepository)
	queue := new(MockQueue)
	mock.InOrder(
		repo.On("Claim", mock.Anything, orderID, mock.Anything).Return(false, nil).Once(),
		repo.On("Get", mock.Anything, orderID).Return(snapshot, nil).Once(),
	)

	h := commands.NewClaimOrderCommandHandler(repo, queue)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, services.ClaimResultAlreadyClaimed, result)

	// Losing the race is an outcome, not an error: the queue entry is the
	// winner's to sweep.
	queue.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_OrderNotQueued(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, kernel.NewUUID())
	require.NoError(t, err)

	snapshot := queuedSnapshot(t, orderID)
	require.NoError(t, snapshot.Cancel())

	repo := new(MockOrderRepository)
	mock.InOrder(
		repo.On("Claim", mock.Anything, orderID, mock.Anything).Return(false, nil).Once(),
		repo.On("Get", mock.Anything, orderID).Return(snapshot, nil).Once(),
	)

	h := commands.NewClaimOrderCommandHandler(repo, new(MockQueue))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, services.ClaimResultNotQueued, result)
}

func TestClaimOrderCommandHandler_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	mock.InOrder(
		repo.On("Claim", mock.Anything, orderID, mock.Anything).Return(false, nil).Once(),
		repo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once(),
	)

	h := commands.NewClaimOrderCommandHandler(repo, new(MockQueue))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
