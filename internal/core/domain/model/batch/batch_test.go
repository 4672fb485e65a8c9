package batch_test

import (
	"testing"
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fee       = kernel.MustMoney("3")
	departure = time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC)
	returnAt  = time.Date(2024, time.April, 2, 17, 30, 0, 0, time.UTC)
)

func validDetails() batch.Details {
	return batch.Details{
		DepartureAt:     departure,
		EstimatedReturn: kernel.NewDate(2024, time.April, 3),
		Description:     "Centro e Zona Sul",
	}
}

func createPendingBatch(t *testing.T, pgfnInitial, normalInitial int) *batch.Batch {
	t.Helper()
	b, err := batch.NewBatch(kernel.NewUUID(), kernel.NewUUID(), pgfnInitial, normalInitial, validDetails())
	require.NoError(t, err)
	require.NotNil(t, b)
	return b
}

func TestNewBatch(t *testing.T) {
	t.Run("should create pending batch", func(t *testing.T) {
		id := kernel.NewUUID()
		courierID := kernel.NewUUID()

		b, err := batch.NewBatch(id, courierID, 10, 5, validDetails())

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.True(t, b.ID().IsEqual(id))
		assert.True(t, b.CourierID().IsEqual(courierID))
		assert.Equal(t, 10, b.PGFNInitial())
		assert.Equal(t, 5, b.NormalInitial())
		assert.Equal(t, validDetails(), b.Details())
		assert.Equal(t, departure, b.DepartureAt())
		assert.Equal(t, batch.Pending, b.Status())
		assert.True(t, b.IsPending())
		assert.False(t, b.IsFinalized())
		_, ok := b.Reconciliation()
		assert.False(t, ok)
	})

	t.Run("should reject zero items of both kinds", func(t *testing.T) {
		b, err := batch.NewBatch(kernel.NewUUID(), kernel.NewUUID(), 0, 0, validDetails())

		require.ErrorIs(t, err, batch.ErrInvalidBatch)
		assert.Nil(t, b)
	})

	t.Run("should reject negative initial counts", func(t *testing.T) {
		_, err := batch.NewBatch(kernel.NewUUID(), kernel.NewUUID(), -1, 3, validDetails())

		require.ErrorIs(t, err, batch.ErrInvalidBatch)
		assert.Contains(t, err.Error(), "pgfnInitial")
	})

	t.Run("should require schedule", func(t *testing.T) {
		_, err := batch.NewBatch(kernel.NewUUID(), kernel.NewUUID(), 1, 0, batch.Details{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "departureAt")
		assert.Contains(t, err.Error(), "estimatedReturnDate")
	})

	t.Run("should require courier", func(t *testing.T) {
		var noCourier kernel.UUID

		_, err := batch.NewBatch(kernel.NewUUID(), noCourier, 1, 0, validDetails())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "courierID")
	})
}

func TestBatch_Validate(t *testing.T) {
	var nilBatch *batch.Batch
	var zeroBatch batch.Batch

	assert.Equal(t, batch.ErrBatchIsNotConstructed, nilBatch.Validate())
	assert.Equal(t, batch.ErrBatchIsNotConstructed, zeroBatch.Validate())
}

func TestBatch_Finalize(t *testing.T) {
	t.Run("should reconcile and derive total value", func(t *testing.T) {
		b := createPendingBatch(t, 10, 0)
		counts := batch.Counts{PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1}

		err := b.Finalize(returnAt, counts, fee)

		require.NoError(t, err)
		assert.Equal(t, batch.Finalized, b.Status())
		r, ok := b.Reconciliation()
		require.True(t, ok)
		assert.Equal(t, returnAt, r.ReturnAt)
		assert.Equal(t, counts, r.Counts)
		assert.True(t, r.TotalValue.IsEqual(kernel.MustMoney("27")))
	})

	t.Run("should fail a second time and keep fields", func(t *testing.T) {
		b := createPendingBatch(t, 10, 0)
		counts := batch.Counts{PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1}
		require.NoError(t, b.Finalize(returnAt, counts, fee))
		before, _ := b.Reconciliation()

		err := b.Finalize(returnAt.Add(time.Hour), batch.Counts{PGFNDelivered: 10}, kernel.MustMoney("5"))

		require.ErrorIs(t, err, batch.ErrAlreadyFinalized)
		after, _ := b.Reconciliation()
		assert.Equal(t, before, after)
		assert.Equal(t, batch.Finalized, b.Status())
	})

	t.Run("should leave batch unchanged on conservation violation", func(t *testing.T) {
		b := createPendingBatch(t, 10, 4)

		err := b.Finalize(returnAt, batch.Counts{PGFNDelivered: 10, NormalDelivered: 3}, fee)

		var conservationErr *batch.ConservationError
		require.ErrorAs(t, err, &conservationErr)
		assert.Equal(t, []batch.Category{batch.CategoryNormal}, conservationErr.Categories())
		assert.True(t, b.IsPending())
		_, ok := b.Reconciliation()
		assert.False(t, ok)
	})

	t.Run("should reject counts whose sum overflows", func(t *testing.T) {
		b := createPendingBatch(t, 5, 0)
		huge := 6148914691236517207 // 3*huge wraps a 64-bit int to 5

		err := b.Finalize(returnAt, batch.Counts{PGFNDelivered: huge, PGFNReturned: huge, PGFNAbsent: huge}, fee)

		require.ErrorIs(t, err, batch.ErrConservationViolation)
		assert.True(t, b.IsPending())
		_, ok := b.Reconciliation()
		assert.False(t, ok)
	})

	t.Run("should reject negative counts", func(t *testing.T) {
		b := createPendingBatch(t, 1, 0)

		err := b.Finalize(returnAt, batch.Counts{PGFNDelivered: 2, PGFNAbsent: -1}, fee)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, b.IsPending())
	})

	t.Run("should require return time", func(t *testing.T) {
		b := createPendingBatch(t, 1, 0)

		err := b.Finalize(time.Time{}, batch.Counts{PGFNDelivered: 1}, fee)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, b.IsPending())
	})
}

func TestBatch_AdjustCounts(t *testing.T) {
	t.Run("should re-derive total value and keep return time", func(t *testing.T) {
		b := createPendingBatch(t, 10, 0)
		require.NoError(t, b.Finalize(returnAt, batch.Counts{PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1}, fee))

		err := b.AdjustCounts(batch.Counts{PGFNDelivered: 5, PGFNAbsent: 5}, fee)

		require.NoError(t, err)
		r, _ := b.Reconciliation()
		assert.Equal(t, returnAt, r.ReturnAt)
		assert.Equal(t, 5, r.Counts.PGFNDelivered)
		assert.Equal(t, "15.00", r.TotalValue.String())
	})

	t.Run("should leave counts unchanged on violation", func(t *testing.T) {
		b := createPendingBatch(t, 10, 0)
		original := batch.Counts{PGFNDelivered: 10}
		require.NoError(t, b.Finalize(returnAt, original, fee))

		err := b.AdjustCounts(batch.Counts{PGFNDelivered: 9}, fee)

		require.ErrorIs(t, err, batch.ErrConservationViolation)
		r, _ := b.Reconciliation()
		assert.Equal(t, original, r.Counts)
		assert.Equal(t, "30.00", r.TotalValue.String())
	})

	t.Run("should refuse pending batch", func(t *testing.T) {
		b := createPendingBatch(t, 1, 0)

		err := b.AdjustCounts(batch.Counts{PGFNDelivered: 1}, fee)

		require.ErrorIs(t, err, batch.ErrBatchNotFinalized)
		assert.True(t, b.IsPending())
	})
}

func TestBatch_UpdateDetails(t *testing.T) {
	t.Run("should replace details while pending", func(t *testing.T) {
		b := createPendingBatch(t, 1, 0)
		details := batch.Details{
			DepartureAt:     departure.Add(2 * time.Hour),
			EstimatedReturn: kernel.NewDate(2024, time.April, 5),
			Description:     "Zona Norte",
		}

		require.NoError(t, b.UpdateDetails(details))

		assert.Equal(t, details, b.Details())
	})

	t.Run("should keep details on invalid input", func(t *testing.T) {
		b := createPendingBatch(t, 1, 0)

		err := b.UpdateDetails(batch.Details{Description: "x"})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, validDetails(), b.Details())
	})

	t.Run("should refuse finalized batch", func(t *testing.T) {
		b := createPendingBatch(t, 1, 0)
		require.NoError(t, b.Finalize(returnAt, batch.Counts{PGFNDelivered: 1}, fee))

		err := b.UpdateDetails(validDetails())

		require.ErrorIs(t, err, batch.ErrFinalizedBatchLocked)
	})
}

func TestBatch_DisplayStatus(t *testing.T) {
	b := createPendingBatch(t, 1, 0)

	assert.Equal(t, batch.DisplayPending, b.DisplayStatus(kernel.NewDate(2024, time.April, 2)))
	assert.Equal(t, batch.DisplayPending, b.DisplayStatus(kernel.NewDate(2024, time.April, 3)))
	assert.Equal(t, batch.DisplayOverdue, b.DisplayStatus(kernel.NewDate(2024, time.April, 4)))

	require.NoError(t, b.Finalize(returnAt, batch.Counts{PGFNDelivered: 1}, fee))
	assert.Equal(t, batch.DisplayFinalized, b.DisplayStatus(kernel.NewDate(2024, time.April, 4)))
}

func TestBatch_Clone(t *testing.T) {
	b := createPendingBatch(t, 2, 0)
	require.NoError(t, b.Finalize(returnAt, batch.Counts{PGFNDelivered: 2}, fee))

	clone := b.Clone()
	require.NoError(t, clone.AdjustCounts(batch.Counts{PGFNAbsent: 2}, fee))

	original, _ := b.Reconciliation()
	cloned, _ := clone.Reconciliation()
	assert.Equal(t, 2, original.Counts.PGFNDelivered)
	assert.Equal(t, 0, cloned.Counts.PGFNDelivered)
	assert.True(t, clone.IsEqual(b))
	require.NoError(t, clone.Validate())
}

func TestRestoreBatch(t *testing.T) {
	id := kernel.NewUUID()
	courierID := kernel.NewUUID()

	t.Run("should restore finalized batch", func(t *testing.T) {
		r := &batch.Reconciliation{
			ReturnAt:   returnAt,
			Counts:     batch.Counts{PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1},
			TotalValue: kernel.MustMoney("27"),
		}

		b, err := batch.RestoreBatch(id, courierID, 10, 0, validDetails(), batch.Finalized, r)

		require.NoError(t, err)
		assert.True(t, b.IsFinalized())
		got, ok := b.Reconciliation()
		require.True(t, ok)
		assert.Equal(t, *r, got)
	})

	t.Run("should restore pending batch", func(t *testing.T) {
		b, err := batch.RestoreBatch(id, courierID, 10, 0, validDetails(), batch.Pending, nil)

		require.NoError(t, err)
		assert.True(t, b.IsPending())
	})

	t.Run("should reject unbalanced finalized batch", func(t *testing.T) {
		r := &batch.Reconciliation{ReturnAt: returnAt, Counts: batch.Counts{PGFNDelivered: 1}}

		_, err := batch.RestoreBatch(id, courierID, 10, 0, validDetails(), batch.Finalized, r)

		require.ErrorIs(t, err, batch.ErrConservationViolation)
	})

	t.Run("should reject finalized batch without reconciliation", func(t *testing.T) {
		_, err := batch.RestoreBatch(id, courierID, 10, 0, validDetails(), batch.Finalized, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject pending batch with reconciliation", func(t *testing.T) {
		r := &batch.Reconciliation{ReturnAt: returnAt, Counts: batch.Counts{PGFNDelivered: 10}}

		_, err := batch.RestoreBatch(id, courierID, 10, 0, validDetails(), batch.Pending, r)

		require.ErrorIs(t, err, batch.ErrBatchNotFinalized)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := batch.RestoreBatch(id, courierID, 10, 0, validDetails(), batch.Unknown, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
