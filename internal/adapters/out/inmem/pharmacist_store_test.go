package inmem_test

import (
	"testing"

	"mediflow/internal/adapters/out/inmem"
	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/pharmacist"
	"mediflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPharmacistStore_AddAndGet(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewPharmacistStore()

	aggregate, err := pharmacist.NewPharmacist(
		kernel.NewUUID(), "Dr. Mehta", "Dr.Mehta@Example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, aggregate))

	byID, err := store.Get(ctx, aggregate.ID())
	require.NoError(t, err)
	assert.Equal(t, "Dr. Mehta", byID.Name())
	assert.True(t, byID.Active())

	byEmail, err := store.GetByEmail(ctx, "  dr.mehta@example.com ")
	require.NoError(t, err)
	assert.True(t, byEmail.ID().IsEqual(aggregate.ID()))

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup, err := pharmacist.NewPharmacist(
			kernel.NewUUID(), "Dr. Clone", "dr.mehta@example.com", "hash")
		require.NoError(t, err)
		assert.ErrorIs(t, store.Add(ctx, dup), errs.ErrValueIsInvalid)
	})

	t.Run("unknown lookups", func(t *testing.T) {
		_, err := store.Get(ctx, kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = store.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
