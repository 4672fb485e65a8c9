package batch

import (
	"errors"
	"time"

	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"
	"intimacoes/internal/pkg/guard"
)

var (
	// ErrBatchIsNotConstructed is returned when using an improperly initialized Batch.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")
	// ErrAlreadyFinalized is returned when finalizing a batch that is not pending.
	ErrAlreadyFinalized = errors.New("batch is already finalized")
	// ErrBatchNotFinalized is returned when editing reconciliation counts of a pending batch.
	ErrBatchNotFinalized = errors.New("batch is not finalized")
	// ErrFinalizedBatchLocked is returned when editing the schedule or description of a finalized batch.
	ErrFinalizedBatchLocked = errors.New("finalized batch only accepts count edits")
)

// Details are the fields of a batch that may be edited while it is pending.
type Details struct {
	// DepartureAt is when the courier left with the batch.
	DepartureAt time.Time
	// EstimatedReturn is the date the batch is expected back. It only drives the overdue flag.
	EstimatedReturn kernel.Date
	// Description is opaque free text.
	Description string
}

// Reconciliation holds the fields a batch only has once finalized.
type Reconciliation struct {
	ReturnAt   time.Time
	Counts     Counts
	TotalValue kernel.Money
}

// Batch is a group of notifications dispatched with one courier. It is the aggregate root of
// the reconciliation lifecycle.
//
// Business rules:
//   - the initial counts are non-negative, at least one is positive, and they never change
//   - the courier reference never changes
//   - the status only moves from Pending to Finalized, through Finalize
//   - a finalized batch always satisfies the conservation rule per category
//   - totalValue is always derived from the counts and the delivery fee
//
// Example:
//
//	b, err := batch.NewBatch(kernel.NewUUID(), courierID, 10, 0, batch.Details{
//	    DepartureAt:     time.Now(),
//	    EstimatedReturn: kernel.NewDate(2024, time.May, 3),
//	})
//	if err != nil {
//	    return err
//	}
//	err = b.Finalize(time.Now(), batch.Counts{PGFNDelivered: 7, PGFNReturned: 2, PGFNAbsent: 1}, fee)
type Batch struct {
	// id uniquely identifies the batch
	id kernel.UUID

	// courierID references the courier that carries the batch
	courierID kernel.UUID

	// pgfnInitial and normalInitial are the documents entrusted at dispatch
	pgfnInitial   int
	normalInitial int

	// details are editable while pending
	details Details

	// status is the stored lifecycle state
	status Status

	// reconciliation is set once finalized
	reconciliation *Reconciliation

	// guard ensures the batch was properly constructed
	guard guard.ConstructorGuard
}

// NewBatch creates a pending batch.
//
// Returns:
//   - *Batch: the new batch
//   - error: joined validation errors; initial count problems wrap ErrInvalidBatch
func NewBatch(id, courierID kernel.UUID, pgfnInitial, normalInitial int, details Details) (*Batch, error) {
	b := &Batch{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setCourierID(courierID),
		b.setInitialCounts(pgfnInitial, normalInitial),
		b.setDetails(details),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBatch rebuilds a batch loaded from a snapshot. A finalized batch must carry its
// reconciliation and it must still balance; a pending one must not carry any.
func RestoreBatch(
	id, courierID kernel.UUID,
	pgfnInitial, normalInitial int,
	details Details,
	status Status,
	reconciliation *Reconciliation,
) (*Batch, error) {
	b, err := NewBatch(id, courierID, pgfnInitial, normalInitial, details)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	switch status {
	case Pending:
		if reconciliation != nil {
			return nil, ErrBatchNotFinalized
		}
	case Finalized:
		if reconciliation == nil {
			return nil, errs.NewValueIsRequiredError("reconciliation")
		}
		if reconciliation.ReturnAt.IsZero() {
			return nil, errs.NewValueIsRequiredError("returnAt")
		}
		if err = Reconcile(reconciliation.Counts, pgfnInitial, normalInitial); err != nil {
			return nil, err
		}
		r := *reconciliation
		b.reconciliation = &r
	}

	b.status = status
	return b, nil
}

// Validate fails for nil or zero-value batches.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

// IsEqual compares batches by identity.
func (b *Batch) IsEqual(other *Batch) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the batch identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// CourierID returns the courier carrying the batch.
func (b *Batch) CourierID() kernel.UUID {
	return b.courierID
}

// PGFNInitial returns the PGFN documents entrusted at dispatch.
func (b *Batch) PGFNInitial() int {
	return b.pgfnInitial
}

// NormalInitial returns the normal documents entrusted at dispatch.
func (b *Batch) NormalInitial() int {
	return b.normalInitial
}

// Details returns the editable schedule and description.
func (b *Batch) Details() Details {
	return b.details
}

// DepartureAt returns when the batch left.
func (b *Batch) DepartureAt() time.Time {
	return b.details.DepartureAt
}

// Status returns the stored lifecycle state.
func (b *Batch) Status() Status {
	return b.status
}

// IsPending reports whether the batch is still out.
func (b *Batch) IsPending() bool {
	return b.status == Pending
}

// IsFinalized reports whether the batch was reconciled.
func (b *Batch) IsFinalized() bool {
	return b.status == Finalized
}

// Reconciliation returns the closure data and true for finalized batches.
func (b *Batch) Reconciliation() (Reconciliation, bool) {
	if b.reconciliation == nil {
		return Reconciliation{}, false
	}
	return *b.reconciliation, true
}

// DisplayStatus classifies the batch for reporting. A pending batch is overdue once today is
// later than its estimated return date.
func (b *Batch) DisplayStatus(today kernel.Date) DisplayStatus {
	switch {
	case b.status == Finalized:
		return DisplayFinalized
	case today.After(b.details.EstimatedReturn):
		return DisplayOverdue
	default:
		return DisplayPending
	}
}

// Finalize reconciles a pending batch. On any error the batch is left unchanged.
//
// Returns:
//   - ErrAlreadyFinalized when the batch is not pending
//   - errs.ValueIsRequiredError when returnAt is zero
//   - the errors of Reconcile when the counts are negative or unbalanced
func (b *Batch) Finalize(returnAt time.Time, counts Counts, fee kernel.Money) error {
	newStatus, err := b.status.Finalize()
	if err != nil {
		return err
	}
	if returnAt.IsZero() {
		return errs.NewValueIsRequiredError("returnAt")
	}
	if err = Reconcile(counts, b.pgfnInitial, b.normalInitial); err != nil {
		return err
	}

	b.status = newStatus
	b.reconciliation = &Reconciliation{
		ReturnAt:   returnAt,
		Counts:     counts,
		TotalValue: TotalValue(counts, fee),
	}
	return nil
}

// AdjustCounts corrects the counts of a finalized batch and re-derives its total value.
// The return time is kept. On any error the batch is left unchanged.
func (b *Batch) AdjustCounts(counts Counts, fee kernel.Money) error {
	if b.status != Finalized || b.reconciliation == nil {
		return ErrBatchNotFinalized
	}
	if err := Reconcile(counts, b.pgfnInitial, b.normalInitial); err != nil {
		return err
	}

	b.reconciliation = &Reconciliation{
		ReturnAt:   b.reconciliation.ReturnAt,
		Counts:     counts,
		TotalValue: TotalValue(counts, fee),
	}
	return nil
}

// UpdateDetails replaces the schedule and description of a pending batch.
// On any error the batch is left unchanged.
func (b *Batch) UpdateDetails(details Details) error {
	if b.status != Pending {
		return ErrFinalizedBatchLocked
	}

	candidate := *b
	if err := candidate.setDetails(details); err != nil {
		return err
	}
	b.details = candidate.details
	return nil
}

// Clone returns an independent copy, used by the entity store to stage mutations.
func (b *Batch) Clone() *Batch {
	clone := *b
	if b.reconciliation != nil {
		r := *b.reconciliation
		clone.reconciliation = &r
	}
	return &clone
}

func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Batch) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	b.courierID = courierID
	return nil
}

func (b *Batch) setInitialCounts(pgfnInitial, normalInitial int) error {
	if err := ValidateInitialCounts(pgfnInitial, normalInitial); err != nil {
		return err
	}
	b.pgfnInitial = pgfnInitial
	b.normalInitial = normalInitial
	return nil
}

func (b *Batch) setDetails(details Details) error {
	var errList []error
	if details.DepartureAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("departureAt"))
	}
	if details.EstimatedReturn.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("estimatedReturnDate"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	b.details = details
	return nil
}
