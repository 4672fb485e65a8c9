package queries_test

import (
	"context"
	"testing"
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fee = kernel.MustMoney("3.00")

type fakeStore struct {
	snapshot ports.Snapshot
}

func (f fakeStore) Snapshot(_ context.Context) ports.Snapshot {
	return f.snapshot
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type MockTextGenerator struct{ mock.Mock }

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func newCourier(t *testing.T, name string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, courier.Profile{})
	require.NoError(t, err)
	return c
}

func newPending(t *testing.T, courierID kernel.UUID, departure time.Time, estimated kernel.Date) *batch.Batch {
	t.Helper()
	b, err := batch.NewBatch(kernel.NewUUID(), courierID, 10, 0, batch.Details{
		DepartureAt:     departure,
		EstimatedReturn: estimated,
	})
	require.NoError(t, err)
	return b
}

func newFinalized(t *testing.T, courierID kernel.UUID, departure, returnAt time.Time, counts batch.Counts) *batch.Batch {
	t.Helper()
	b, err := batch.NewBatch(kernel.NewUUID(), courierID, counts.PGFN(), counts.Normal(), batch.Details{
		DepartureAt:     departure,
		EstimatedReturn: kernel.DateOf(departure),
	})
	require.NoError(t, err)
	require.NoError(t, b.Finalize(returnAt, counts, fee))
	return b
}
