package batch

import (
	"fmt"

	"intimacoes/internal/pkg/errs"
)

// Status is the stored lifecycle state of a batch.
//
// State transitions:
//
//	Pending ──(reconciliation)──> Finalized
//
// There is no way back: a finalized batch stays finalized until it is deleted.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the state of a batch that is still out with its courier.
	Pending

	// Finalized is the state of a reconciled batch. It is final.
	Finalized
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Finalized: "finalized",
	}
}

// ParseStatus converts the persisted representation back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate accepts only Pending and Finalized.
func (s Status) Validate() error {
	if s != Pending && s != Finalized {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return getStatusStrings()[Unknown]
}

// Finalize transitions the status to Finalized. Only Pending may be finalized.
func (s Status) Finalize() (Status, error) {
	if s != Pending {
		return Unknown, ErrAlreadyFinalized
	}
	return Finalized, nil
}

// DisplayStatus is the reporting classification of a batch. It is derived on every read
// and never stored.
type DisplayStatus string

const (
	// DisplayPending is a pending batch whose estimated return date has not passed.
	DisplayPending DisplayStatus = "pending"
	// DisplayOverdue is a pending batch whose estimated return date has passed.
	DisplayOverdue DisplayStatus = "overdue"
	// DisplayFinalized is a reconciled batch.
	DisplayFinalized DisplayStatus = "finalized"
)

// String implements fmt.Stringer.
func (d DisplayStatus) String() string {
	return string(d)
}
