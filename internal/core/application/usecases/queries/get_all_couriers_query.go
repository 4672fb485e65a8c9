// Package queries contains read operations over the committed state of the entity store.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries never mutate and always work on one consistent snapshot.
package queries

import (
	"errors"

	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/guard"
)

var ErrGetAllCouriersQueryIsNotConstructed = errors.New(
	"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
)

// GetAllCouriersQuery retrieves the courier roster.
//
// Example:
//
//	query := NewGetAllCouriersQuery()
//	handler := NewGetAllCouriersQueryHandler(store)
//
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve couriers: %w", err)
//	}
type GetAllCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery creates a query to retrieve all couriers.
func NewGetAllCouriersQuery() GetAllCouriersQuery {
	return GetAllCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

// GetAllCouriersQueryResponse is the read model of one courier.
type GetAllCouriersQueryResponse struct {
	ID      kernel.UUID
	Name    string
	Profile courier.Profile
}
