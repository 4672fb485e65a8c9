package queries_test

import (
	"testing"
	"time"

	"intimacoes/internal/core/application/usecases/queries"
	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/services"
	"intimacoes/internal/core/ports"
	"intimacoes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    queries.Scope
		wantErr bool
	}{
		{in: "", want: queries.ScopeActive},
		{in: "active", want: queries.ScopeActive},
		{in: "archived", want: queries.ScopeArchived},
		{in: "all", want: queries.ScopeAll},
		{in: "ALL", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := queries.ParseScope(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetReportQueryHandler_Handle(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	ana := newCourier(t, "Ana")
	bruno := newCourier(t, "Bruno")
	carla := newCourier(t, "Carla")
	partitioner, err := services.NewPartitioner(services.DefaultArchivalDelay)
	require.NoError(t, err)

	recent := newFinalized(t, ana.ID(), now.Add(-48*time.Hour), now.Add(-24*time.Hour),
		batch.Counts{PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1})
	old := newFinalized(t, bruno.ID(), now.Add(-30*24*time.Hour), now.Add(-20*24*time.Hour),
		batch.Counts{NormalDelivered: 4, NormalAbsent: 1})

	store := fakeStore{snapshot: ports.Snapshot{
		Couriers: []*courier.Courier{ana, bruno, carla},
		Batches:  []*batch.Batch{recent, old},
	}}
	h := queries.NewGetReportQueryHandler(store, fixedClock{now: now}, partitioner, services.NewAggregator())

	t.Run("should aggregate active scope by default", func(t *testing.T) {
		query, err := queries.NewGetReportQuery("")
		require.NoError(t, err)

		result, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, queries.ScopeActive, result.Scope)
		assert.Equal(t, "27.00", result.System.PayableValue.String())
		assert.Equal(t, 7, result.System.Delivered)
		require.Len(t, result.Couriers, 3)
		assert.Equal(t, "27.00", result.Couriers[0].PayableValue.String())
		assert.Equal(t, "0.00", result.Couriers[1].PayableValue.String())
		assert.Equal(t, 0, result.Couriers[2].Finalized)
	})

	t.Run("should aggregate archived scope", func(t *testing.T) {
		query, _ := queries.NewGetReportQuery(queries.ScopeArchived)

		result, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, "12.00", result.System.PayableValue.String())
		assert.Equal(t, 1, result.System.Absent)
		assert.Equal(t, 1, result.Couriers[1].Finalized)
	})

	t.Run("should aggregate everything", func(t *testing.T) {
		query, _ := queries.NewGetReportQuery(queries.ScopeAll)

		result, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, "39.00", result.System.PayableValue.String())
		assert.Equal(t, 11, result.System.Delivered)
		assert.Equal(t, 2, result.System.Returned)
		assert.Equal(t, 2, result.System.Absent)
	})

	t.Run("should reject unknown scope", func(t *testing.T) {
		_, err := queries.NewGetReportQuery("weekly")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
