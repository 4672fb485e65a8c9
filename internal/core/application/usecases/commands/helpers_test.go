package commands_test

import (
	"testing"
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

var fee = kernel.MustMoney("3.00")

func validDetails() batch.Details {
	return batch.Details{
		DepartureAt:     time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC),
		EstimatedReturn: kernel.NewDate(2024, time.May, 3),
		Description:     "Centro",
	}
}

func newTestCourier(t *testing.T, name string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, courier.Profile{})
	require.NoError(t, err)
	return c
}

func newTestBatch(t *testing.T, courierID kernel.UUID, pgfn, normal int) *batch.Batch {
	t.Helper()
	b, err := batch.NewBatch(kernel.NewUUID(), courierID, pgfn, normal, validDetails())
	require.NoError(t, err)
	return b
}

func newFinalizedBatch(t *testing.T, courierID kernel.UUID) *batch.Batch {
	t.Helper()
	b := newTestBatch(t, courierID, 10, 0)
	require.NoError(t, b.Finalize(
		time.Date(2024, time.May, 2, 17, 0, 0, 0, time.UTC),
		batch.Counts{PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1},
		fee,
	))
	return b
}
