package commands_test

import (
	"errors"
	"testing"

	"intimacoes/internal/core/application/usecases/commands"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteCourierCommandHandler_Handle(t *testing.T) {
	t.Run("should delete courier and cascade to its batches in one unit of work", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewDeleteCourierCommand(id)
		require.NoError(t, err)

		courierRepo := new(MockCourierRepository)
		batchRepo := new(MockBatchRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CourierRepository").Return(courierRepo).Once(),
			courierRepo.On("Delete", ctx, id).Return(nil).Once(),
			uow.On("BatchRepository").Return(batchRepo).Once(),
			batchRepo.On("DeleteByCourier", ctx, id).Return(3, nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewDeleteCourierCommandHandler(factory, nil)
		removed, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 3, removed)
		factory.AssertNumberOfCalls(t, "Create", 1)
		uow.AssertExpectations(t)
		courierRepo.AssertExpectations(t)
		batchRepo.AssertExpectations(t)
	})

	t.Run("should not touch batches when courier is unknown", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, _ := commands.NewDeleteCourierCommand(id)

		courierRepo := new(MockCourierRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CourierRepository").Return(courierRepo).Once(),
			courierRepo.On("Delete", ctx, id).Return(errs.NewObjectNotFoundError("courierID", id)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewDeleteCourierCommandHandler(factory, nil)
		removed, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Zero(t, removed)
		uow.AssertNotCalled(t, "BatchRepository")
		uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should roll back when cascade fails", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, _ := commands.NewDeleteCourierCommand(id)

		courierRepo := new(MockCourierRepository)
		batchRepo := new(MockBatchRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CourierRepository").Return(courierRepo).Once(),
			courierRepo.On("Delete", ctx, id).Return(nil).Once(),
			uow.On("BatchRepository").Return(batchRepo).Once(),
			batchRepo.On("DeleteByCourier", ctx, id).Return(0, errors.New("cascade error")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewDeleteCourierCommandHandler(factory, nil)
		_, err := h.Handle(ctx, cmd)

		require.EqualError(t, err, "cascade error")
		uow.AssertNotCalled(t, "Commit", ctx)
		uow.AssertExpectations(t)
	})

	t.Run("should reject zero id", func(t *testing.T) {
		_, err := commands.NewDeleteCourierCommand(kernel.UUID{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
