package commands_test

import (
	"testing"

	"intimacoes/internal/core/application/usecases/commands"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteBatchCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDeleteBatchCommand(id)
	require.NoError(t, err)

	repo := new(MockBatchRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(repo).Once(),
		repo.On("Delete", ctx, id).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteBatchCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestDeleteBatchCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewDeleteBatchCommand(id)

	repo := new(MockBatchRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(repo).Once(),
		repo.On("Delete", ctx, id).Return(errs.NewObjectNotFoundError("batchID", id)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteBatchCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestDeleteBatchCommand_NotConstructed(t *testing.T) {
	h := commands.NewDeleteBatchCommandHandler(new(MockUoWFactory), nil)

	err := h.Handle(t.Context(), commands.DeleteBatchCommand{})

	require.ErrorIs(t, err, commands.ErrDeleteBatchCommandIsNotConstructed)
}
