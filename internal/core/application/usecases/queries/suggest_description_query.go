package queries

import (
	"errors"
	"strings"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/pkg/guard"
)

var ErrSuggestDescriptionQueryIsNotConstructed = errors.New(
	"SuggestDescriptionQuery must be created via NewSuggestDescriptionQuery constructor",
)

// SuggestDescriptionQuery asks the text assistant for a batch description. The answer is
// only a suggestion for the description field: nothing is stored.
type SuggestDescriptionQuery struct {
	courierName   string
	route         string
	pgfnInitial   int
	normalInitial int
	notes         string

	guard guard.ConstructorGuard
}

// NewSuggestDescriptionQuery applies the same initial count rule as batch creation, so a
// description is never drafted for a batch that could not be created.
func NewSuggestDescriptionQuery(
	courierName, route string,
	pgfnInitial, normalInitial int,
	notes string,
) (SuggestDescriptionQuery, error) {
	if err := batch.ValidateInitialCounts(pgfnInitial, normalInitial); err != nil {
		return SuggestDescriptionQuery{}, err
	}

	return SuggestDescriptionQuery{
		courierName:   strings.TrimSpace(courierName),
		route:         strings.TrimSpace(route),
		pgfnInitial:   pgfnInitial,
		normalInitial: normalInitial,
		notes:         strings.TrimSpace(notes),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q SuggestDescriptionQuery) Validate() error {
	return q.guard.Validate(ErrSuggestDescriptionQueryIsNotConstructed)
}

func (q SuggestDescriptionQuery) CourierName() string {
	return q.courierName
}

func (q SuggestDescriptionQuery) Route() string {
	return q.route
}

func (q SuggestDescriptionQuery) PGFNInitial() int {
	return q.pgfnInitial
}

func (q SuggestDescriptionQuery) NormalInitial() int {
	return q.normalInitial
}

func (q SuggestDescriptionQuery) Notes() string {
	return q.notes
}

// SuggestDescriptionQueryResponse carries the suggested text. Generated is false when the
// text is the fallback apology.
type SuggestDescriptionQueryResponse struct {
	Description string
	Generated   bool
}
