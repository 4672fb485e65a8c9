package memory

import (
	"context"
	"fmt"
	"slices"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"
)

// batchRepository keeps the staged batches newest-inserted first.
type batchRepository struct {
	uow *UnitOfWork
}

func (r *batchRepository) Add(_ context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	st, err := r.uow.state()
	if err != nil {
		return err
	}

	if r.indexOf(st, aggregate.ID()) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("batch",
			fmt.Errorf("id %s already exists", aggregate.ID()))
	}

	st.batches = slices.Insert(st.batches, 0, aggregate.Clone())
	r.uow.changed = true
	return nil
}

func (r *batchRepository) Update(_ context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	st, err := r.uow.state()
	if err != nil {
		return err
	}

	i := r.indexOf(st, aggregate.ID())
	if i < 0 {
		return errs.NewObjectNotFoundError("batch", aggregate.ID().String())
	}

	st.batches[i] = aggregate.Clone()
	r.uow.changed = true
	return nil
}

func (r *batchRepository) Delete(_ context.Context, id kernel.UUID) error {
	st, err := r.uow.state()
	if err != nil {
		return err
	}

	i := r.indexOf(st, id)
	if i < 0 {
		return errs.NewObjectNotFoundError("batch", id.String())
	}

	st.batches = slices.Delete(st.batches, i, i+1)
	r.uow.changed = true
	return nil
}

func (r *batchRepository) DeleteByCourier(_ context.Context, courierID kernel.UUID) (int, error) {
	st, err := r.uow.state()
	if err != nil {
		return 0, err
	}

	before := len(st.batches)
	st.batches = slices.DeleteFunc(st.batches, func(b *batch.Batch) bool {
		return b.CourierID().IsEqual(courierID)
	})
	removed := before - len(st.batches)
	if removed > 0 {
		r.uow.changed = true
	}
	return removed, nil
}

func (r *batchRepository) Get(_ context.Context, id kernel.UUID) (*batch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	st, err := r.uow.state()
	if err != nil {
		return nil, err
	}

	i := r.indexOf(st, id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("batch", id.String())
	}
	return st.batches[i].Clone(), nil
}

func (r *batchRepository) GetAll(_ context.Context) ([]*batch.Batch, error) {
	st, err := r.uow.state()
	if err != nil {
		return nil, err
	}

	result := make([]*batch.Batch, 0, len(st.batches))
	for _, b := range st.batches {
		result = append(result, b.Clone())
	}
	return result, nil
}

func (r *batchRepository) indexOf(st *state, id kernel.UUID) int {
	return slices.IndexFunc(st.batches, func(b *batch.Batch) bool {
		return b.ID().IsEqual(id)
	})
}
