package commands_test

import (
	"context"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*courier.Courier), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBatchRepository) DeleteByCourier(ctx context.Context, courierID kernel.UUID) (int, error) {
	args := m.Called(ctx, courierID)
	return args.Int(0), args.Error(1)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*batch.Batch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) GetAll(ctx context.Context) ([]*batch.Batch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*batch.Batch), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}
