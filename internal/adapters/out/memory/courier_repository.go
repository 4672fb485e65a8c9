package memory

import (
	"context"
	"fmt"
	"slices"

	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"
)

// courierRepository keeps the staged roster sorted by name after every write.
type courierRepository struct {
	uow *UnitOfWork
}

func (r *courierRepository) Add(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	st, err := r.uow.state()
	if err != nil {
		return err
	}

	if r.indexOf(st, aggregate.ID()) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier",
			fmt.Errorf("id %s already exists", aggregate.ID()))
	}

	st.couriers = append(st.couriers, aggregate.Clone())
	courier.SortByName(st.couriers)
	r.uow.changed = true
	return nil
}

func (r *courierRepository) Update(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	st, err := r.uow.state()
	if err != nil {
		return err
	}

	i := r.indexOf(st, aggregate.ID())
	if i < 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
	}

	st.couriers[i] = aggregate.Clone()
	courier.SortByName(st.couriers)
	r.uow.changed = true
	return nil
}

func (r *courierRepository) Delete(_ context.Context, id kernel.UUID) error {
	st, err := r.uow.state()
	if err != nil {
		return err
	}

	i := r.indexOf(st, id)
	if i < 0 {
		return errs.NewObjectNotFoundError("courier", id.String())
	}

	st.couriers = slices.Delete(st.couriers, i, i+1)
	r.uow.changed = true
	return nil
}

func (r *courierRepository) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	st, err := r.uow.state()
	if err != nil {
		return nil, err
	}

	i := r.indexOf(st, id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("courier", id.String())
	}
	return st.couriers[i].Clone(), nil
}

func (r *courierRepository) GetAll(_ context.Context) ([]*courier.Courier, error) {
	st, err := r.uow.state()
	if err != nil {
		return nil, err
	}

	result := make([]*courier.Courier, 0, len(st.couriers))
	for _, c := range st.couriers {
		result = append(result, c.Clone())
	}
	return result, nil
}

func (r *courierRepository) indexOf(st *state, id kernel.UUID) int {
	return slices.IndexFunc(st.couriers, func(c *courier.Courier) bool {
		return c.ID().IsEqual(id)
	})
}
