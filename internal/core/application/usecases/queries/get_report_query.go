package queries

import (
	"errors"
	"fmt"
	"time"

	"intimacoes/internal/core/domain/services"
	"intimacoes/internal/pkg/errs"
	"intimacoes/internal/pkg/guard"
)

var ErrGetReportQueryIsNotConstructed = errors.New(
	"GetReportQuery must be created via NewGetReportQuery constructor",
)

// Scope selects which batches a report aggregates.
type Scope string

const (
	ScopeActive   Scope = "active"
	ScopeArchived Scope = "archived"
	ScopeAll      Scope = "all"
)

// ParseScope reads a scope name. The empty string selects ScopeActive.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "":
		return ScopeActive, nil
	case ScopeActive, ScopeArchived, ScopeAll:
		return Scope(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("scope",
			fmt.Errorf("%q is not one of %s, %s, %s", s, ScopeActive, ScopeArchived, ScopeAll))
	}
}

// GetReportQuery aggregates the performance of every courier over one scope.
//
// Example:
//
//	query, err := NewGetReportQuery(ScopeActive)
//	if err != nil {
//	    return err
//	}
//	report, err := handler.Handle(ctx, query)
//	fmt.Println(report.System.PayableValue)
type GetReportQuery struct {
	scope Scope

	guard guard.ConstructorGuard
}

func NewGetReportQuery(scope Scope) (GetReportQuery, error) {
	if _, err := ParseScope(string(scope)); err != nil {
		return GetReportQuery{}, err
	}
	if scope == "" {
		scope = ScopeActive
	}

	return GetReportQuery{
		scope: scope,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReportQuery) Validate() error {
	return q.guard.Validate(ErrGetReportQueryIsNotConstructed)
}

func (q GetReportQuery) Scope() Scope {
	return q.scope
}

// GetReportQueryResponse is the aggregated report of one scope.
type GetReportQueryResponse struct {
	Scope       Scope
	GeneratedAt time.Time
	services.Report
}
