package batch_test

import (
	"math"
	"testing"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	t.Run("should accept balanced counts", func(t *testing.T) {
		counts := batch.Counts{
			PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1,
			NormalDelivered: 3, NormalReturned: 0, NormalAbsent: 2,
		}

		require.NoError(t, batch.Reconcile(counts, 10, 5))
	})

	t.Run("should accept all zero counts for empty category", func(t *testing.T) {
		require.NoError(t, batch.Reconcile(batch.Counts{NormalDelivered: 4}, 0, 4))
	})

	t.Run("should name the pgfn category", func(t *testing.T) {
		counts := batch.Counts{PGFNDelivered: 7, PGFNReturned: 2}

		err := batch.Reconcile(counts, 10, 0)

		require.ErrorIs(t, err, batch.ErrConservationViolation)
		var conservationErr *batch.ConservationError
		require.ErrorAs(t, err, &conservationErr)
		assert.Equal(t, []batch.Category{batch.CategoryPGFN}, conservationErr.Categories())
		assert.Equal(t, batch.Imbalance{Category: batch.CategoryPGFN, Initial: 10, Accounted: 9},
			conservationErr.Imbalances[0])
		assert.Equal(t, "conservation violation: pgfn expects 10, accounted 9", err.Error())
	})

	t.Run("should name the normal category", func(t *testing.T) {
		err := batch.Reconcile(batch.Counts{NormalDelivered: 6}, 0, 5)

		var conservationErr *batch.ConservationError
		require.ErrorAs(t, err, &conservationErr)
		assert.Equal(t, []batch.Category{batch.CategoryNormal}, conservationErr.Categories())
	})

	t.Run("should name both categories", func(t *testing.T) {
		err := batch.Reconcile(batch.Counts{PGFNDelivered: 1, NormalDelivered: 1}, 2, 2)

		var conservationErr *batch.ConservationError
		require.ErrorAs(t, err, &conservationErr)
		assert.Equal(t, []batch.Category{batch.CategoryPGFN, batch.CategoryNormal}, conservationErr.Categories())
	})

	t.Run("should not let oversized counts wrap around to the initial count", func(t *testing.T) {
		// three times this value wraps a 64-bit int back to 5
		const huge = 6148914691236517207
		counts := batch.Counts{PGFNDelivered: huge, PGFNReturned: huge, PGFNAbsent: huge}

		err := batch.Reconcile(counts, 5, 0)

		var conservationErr *batch.ConservationError
		require.ErrorAs(t, err, &conservationErr)
		assert.Equal(t, []batch.Category{batch.CategoryPGFN}, conservationErr.Categories())
		assert.Equal(t, math.MaxInt, conservationErr.Imbalances[0].Accounted)
	})

	t.Run("should saturate derived totals", func(t *testing.T) {
		counts := batch.Counts{PGFNDelivered: math.MaxInt, NormalReturned: 1}

		assert.Equal(t, math.MaxInt, counts.Payable())
		assert.Equal(t, math.MaxInt, counts.Delivered())
	})

	t.Run("should reject negative fields before checking balance", func(t *testing.T) {
		counts := batch.Counts{PGFNDelivered: 12, PGFNReturned: -2, NormalAbsent: -1, NormalDelivered: 1}

		err := batch.Reconcile(counts, 10, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.NotErrorIs(t, err, batch.ErrConservationViolation)
		assert.Contains(t, err.Error(), "pgfnReturned")
		assert.Contains(t, err.Error(), "normalAbsent")
		assert.NotContains(t, err.Error(), "pgfnDelivered")
	})
}

func TestValidateInitialCounts(t *testing.T) {
	tests := []struct {
		name          string
		pgfnInitial   int
		normalInitial int
		wantErr       bool
		field         string
	}{
		{name: "only pgfn", pgfnInitial: 10},
		{name: "only normal", normalInitial: 1},
		{name: "both positive", pgfnInitial: 3, normalInitial: 4},
		{name: "both zero", wantErr: true},
		{name: "negative pgfn", pgfnInitial: -1, normalInitial: 5, wantErr: true, field: "pgfnInitial"},
		{name: "negative normal", pgfnInitial: 5, normalInitial: -3, wantErr: true, field: "normalInitial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := batch.ValidateInitialCounts(tt.pgfnInitial, tt.normalInitial)

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, batch.ErrInvalidBatch)
			if tt.field != "" {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Contains(t, err.Error(), tt.field)
			}
		})
	}
}

func TestTotalValue(t *testing.T) {
	fee := kernel.MustMoney("3")

	t.Run("should pay delivered and returned items only", func(t *testing.T) {
		counts := batch.Counts{PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1}

		assert.True(t, batch.TotalValue(counts, fee).IsEqual(kernel.MustMoney("27")))
	})

	t.Run("should add both categories", func(t *testing.T) {
		counts := batch.Counts{
			PGFNDelivered: 1, PGFNReturned: 1, PGFNAbsent: 5,
			NormalDelivered: 2, NormalReturned: 3, NormalAbsent: 5,
		}

		assert.Equal(t, "21.00", batch.TotalValue(counts, fee).String())
	})

	t.Run("should be zero when everything is absent", func(t *testing.T) {
		counts := batch.Counts{PGFNAbsent: 4, NormalAbsent: 4}

		assert.True(t, batch.TotalValue(counts, fee).IsZero())
	})

	t.Run("should keep fractional fees exact", func(t *testing.T) {
		counts := batch.Counts{NormalDelivered: 3}

		assert.Equal(t, "7.50", batch.TotalValue(counts, kernel.MustMoney("2.50")).String())
	})
}

func TestCounts_Totals(t *testing.T) {
	counts := batch.Counts{
		PGFNDelivered: 1, PGFNReturned: 2, PGFNAbsent: 3,
		NormalDelivered: 4, NormalReturned: 5, NormalAbsent: 6,
	}

	assert.Equal(t, 5, counts.Delivered())
	assert.Equal(t, 7, counts.Returned())
	assert.Equal(t, 9, counts.Absent())
	assert.Equal(t, 12, counts.Payable())
	assert.Equal(t, 6, counts.PGFN())
	assert.Equal(t, 15, counts.Normal())
}
