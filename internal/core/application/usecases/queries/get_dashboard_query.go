package queries

import (
	"errors"
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/pkg/guard"
)

var ErrGetDashboardQueryIsNotConstructed = errors.New(
	"GetDashboardQuery must be created via NewGetDashboardQuery constructor",
)

// GetDashboardQuery retrieves every batch split into the active and archived groups.
type GetDashboardQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDashboardQuery() GetDashboardQuery {
	return GetDashboardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardQueryIsNotConstructed)
}

// GetDashboardQueryResponse holds both groups, each ordered by departure, newest first.
type GetDashboardQueryResponse struct {
	GeneratedAt time.Time
	Active      []BatchView
	Archived    []BatchView
}

// Overdue counts the overdue batches of the active group. Archived batches are never overdue.
func (r GetDashboardQueryResponse) Overdue() int {
	n := 0
	for _, v := range r.Active {
		if v.DisplayStatus == batch.DisplayOverdue {
			n++
		}
	}
	return n
}
