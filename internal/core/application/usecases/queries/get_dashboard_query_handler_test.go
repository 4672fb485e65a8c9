package queries_test

import (
	"testing"
	"time"

	"intimacoes/internal/core/application/usecases/queries"
	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/core/domain/services"
	"intimacoes/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardQueryHandler_Handle(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	ana := newCourier(t, "Ana")
	partitioner, err := services.NewPartitioner(services.DefaultArchivalDelay)
	require.NoError(t, err)

	overdue := newPending(t, ana.ID(), now.Add(-72*time.Hour), kernel.NewDate(2024, time.May, 9))
	onTime := newPending(t, ana.ID(), now.Add(-1*time.Hour), kernel.NewDate(2024, time.May, 10))
	atBoundary := newFinalized(t, ana.ID(), now.Add(-200*time.Hour), now.Add(-services.DefaultArchivalDelay),
		batch.Counts{PGFNDelivered: 1})
	archived := newFinalized(t, ana.ID(), now.Add(-300*time.Hour), now.Add(-services.DefaultArchivalDelay-time.Second),
		batch.Counts{PGFNDelivered: 1})

	store := fakeStore{snapshot: ports.Snapshot{
		Couriers: []*courier.Courier{ana},
		Batches:  []*batch.Batch{archived, atBoundary, overdue, onTime},
	}}
	h := queries.NewGetDashboardQueryHandler(store, fixedClock{now: now}, partitioner)

	result, err := h.Handle(t.Context(), queries.NewGetDashboardQuery())

	require.NoError(t, err)
	assert.Equal(t, now, result.GeneratedAt)
	require.Len(t, result.Active, 3)
	assert.Equal(t, onTime.ID(), result.Active[0].ID)
	assert.Equal(t, overdue.ID(), result.Active[1].ID)
	assert.Equal(t, atBoundary.ID(), result.Active[2].ID)
	require.Len(t, result.Archived, 1)
	assert.Equal(t, archived.ID(), result.Archived[0].ID)

	assert.Equal(t, batch.DisplayPending, result.Active[0].DisplayStatus)
	assert.Equal(t, batch.DisplayOverdue, result.Active[1].DisplayStatus)
	assert.Equal(t, batch.DisplayFinalized, result.Active[2].DisplayStatus)
	assert.Equal(t, "Ana", result.Active[0].CourierName)
	assert.Nil(t, result.Active[0].Reconciliation)
	require.NotNil(t, result.Archived[0].Reconciliation)
	assert.Equal(t, "3.00", result.Archived[0].Reconciliation.TotalValue.String())
	assert.Equal(t, 1, result.Overdue())
}
