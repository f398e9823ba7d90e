package services_test

import (
	"testing"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/order"
	"mediflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimArbiter_ClassifyLoss(t *testing.T) {
	arbiter := services.NewClaimArbiter()

	t.Run("claimed by someone else", func(t *testing.T) {
		o := queuedOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID()))

		assert.Equal(t, services.ClaimResultAlreadyClaimed, arbiter.ClassifyLoss(o))
	})

	t.Run("winner not visible yet", func(t *testing.T) {
		// The loser's re-read can race the winner's write and still see
		// Queued; that is classified as a lost claim, never retried blindly.
		o := queuedOrder(t)

		assert.Equal(t, services.ClaimResultAlreadyClaimed, arbiter.ClassifyLoss(o))
	})

	t.Run("order was cancelled", func(t *testing.T) {
		o := queuedOrder(t)
		require.NoError(t, o.Cancel())

		assert.Equal(t, services.ClaimResultNotQueued, arbiter.ClassifyLoss(o))
	})

	t.Run("order never queued", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.TypePrescription)
		require.NoError(t, err)

		assert.Equal(t, services.ClaimResultNotQueued, arbiter.ClassifyLoss(o))
	})
}

func TestClaimResult_String(t *testing.T) {
	assert.Equal(t, "Claimed", services.ClaimResultClaimed.String())
	assert.Equal(t, "AlreadyClaimed", services.ClaimResultAlreadyClaimed.String())
	assert.Equal(t, "NotQueued", services.ClaimResultNotQueued.String())
	assert.Equal(t, "Unknown", services.ClaimResultUnknown.String())
}

func queuedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.TypePrescription)
	require.NoError(t, err)
	require.NoError(t, o.AwaitPrescription())
	require.NoError(t, o.AttachPrescription("prescriptions/test.pdf"))
	require.NoError(t, o.Enqueue())
	return o
}
