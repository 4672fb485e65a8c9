package batch

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"
)

var (
	// ErrInvalidBatch is returned when a batch is created with negative initial counts or
	// with no documents at all.
	ErrInvalidBatch = errors.New("invalid batch")
	// ErrConservationViolation is the sentinel behind ConservationError.
	ErrConservationViolation = errors.New("conservation violation")
)

// Category names one of the two document kinds carried by a batch.
type Category string

const (
	// CategoryPGFN is the category of documents issued by the PGFN.
	CategoryPGFN Category = "pgfn"
	// CategoryNormal is every other notification.
	CategoryNormal Category = "normal"
)

// Counts is the reconciliation outcome of a batch: how many documents of each category were
// delivered, returned to the office, or reported absent.
type Counts struct {
	PGFNDelivered   int
	PGFNReturned    int
	PGFNAbsent      int
	NormalDelivered int
	NormalReturned  int
	NormalAbsent    int
}

// Delivered returns delivered documents across both categories.
func (c Counts) Delivered() int {
	return saturatingSum(c.PGFNDelivered, c.NormalDelivered)
}

// Returned returns returned documents across both categories.
func (c Counts) Returned() int {
	return saturatingSum(c.PGFNReturned, c.NormalReturned)
}

// Absent returns documents reported absent across both categories.
func (c Counts) Absent() int {
	return saturatingSum(c.PGFNAbsent, c.NormalAbsent)
}

// Payable returns the number of documents the courier is paid for. Absent documents never pay.
func (c Counts) Payable() int {
	return saturatingSum(c.Delivered(), c.Returned())
}

// PGFN returns the accounted total of the PGFN category.
func (c Counts) PGFN() int {
	return saturatingSum(c.PGFNDelivered, c.PGFNReturned, c.PGFNAbsent)
}

// Normal returns the accounted total of the normal category.
func (c Counts) Normal() int {
	return saturatingSum(c.NormalDelivered, c.NormalReturned, c.NormalAbsent)
}

// Validate rejects negative fields. Every offending field is reported.
func (c Counts) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"pgfnDelivered", c.PGFNDelivered},
		{"pgfnReturned", c.PGFNReturned},
		{"pgfnAbsent", c.PGFNAbsent},
		{"normalDelivered", c.NormalDelivered},
		{"normalReturned", c.NormalReturned},
		{"normalAbsent", c.NormalAbsent},
	}

	var errList []error
	for _, f := range fields {
		if f.value < 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				f.name, fmt.Errorf("%d is negative", f.value)))
		}
	}
	return errors.Join(errList...)
}

// saturatingSum adds non-negative values, stopping at math.MaxInt instead of wrapping.
func saturatingSum(values ...int) int {
	total := 0
	for _, v := range values {
		if v > math.MaxInt-total {
			return math.MaxInt
		}
		total += v
	}
	return total
}

// Imbalance describes one category whose counts do not add up to its initial count.
type Imbalance struct {
	Category  Category
	Initial   int
	Accounted int
}

// ConservationError lists the unbalanced categories of a reconciliation attempt.
// It matches ErrConservationViolation with errors.Is.
type ConservationError struct {
	Imbalances []Imbalance
}

func (e *ConservationError) Error() string {
	parts := make([]string, 0, len(e.Imbalances))
	for _, im := range e.Imbalances {
		parts = append(parts, fmt.Sprintf("%s expects %d, accounted %d", im.Category, im.Initial, im.Accounted))
	}
	return fmt.Sprintf("%s: %s", ErrConservationViolation, strings.Join(parts, "; "))
}

func (e *ConservationError) Unwrap() error {
	return ErrConservationViolation
}

// Categories returns the unbalanced categories in a fixed order: pgfn before normal.
func (e *ConservationError) Categories() []Category {
	categories := make([]Category, 0, len(e.Imbalances))
	for _, im := range e.Imbalances {
		categories = append(categories, im.Category)
	}
	return categories
}

// Reconcile checks counts against the initial counts of a batch.
//
// Returns:
//   - nil when every field is non-negative and both categories balance
//   - joined errs.ValueIsInvalidError values naming each negative field
//   - *ConservationError naming each unbalanced category
func Reconcile(counts Counts, pgfnInitial, normalInitial int) error {
	if err := counts.Validate(); err != nil {
		return err
	}

	var imbalances []Imbalance
	if accounted := counts.PGFN(); accounted != pgfnInitial {
		imbalances = append(imbalances, Imbalance{Category: CategoryPGFN, Initial: pgfnInitial, Accounted: accounted})
	}
	if accounted := counts.Normal(); accounted != normalInitial {
		imbalances = append(imbalances, Imbalance{Category: CategoryNormal, Initial: normalInitial, Accounted: accounted})
	}
	if len(imbalances) > 0 {
		return &ConservationError{Imbalances: imbalances}
	}
	return nil
}

// ValidateInitialCounts enforces the creation rule: both counts non-negative and at least one
// of them positive. Failures wrap ErrInvalidBatch.
func ValidateInitialCounts(pgfnInitial, normalInitial int) error {
	var errList []error
	if pgfnInitial < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"pgfnInitial", fmt.Errorf("%d is negative", pgfnInitial)))
	}
	if normalInitial < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"normalInitial", fmt.Errorf("%d is negative", normalInitial)))
	}
	if len(errList) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidBatch, errors.Join(errList...))
	}

	if pgfnInitial+normalInitial == 0 {
		return fmt.Errorf("%w: at least one of pgfnInitial and normalInitial must be positive", ErrInvalidBatch)
	}
	return nil
}

// TotalValue is the amount owed to the courier for a reconciled batch:
// (delivered + returned) * fee.
func TotalValue(counts Counts, fee kernel.Money) kernel.Money {
	return fee.Times(counts.Payable())
}
