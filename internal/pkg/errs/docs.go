// Package errs provides the typed errors shared by the batch engine and its adapters.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrObjectNotFound, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the parameter name and an optional cause
//   - New...Error and New...ErrorWithCause constructors
//   - Error() for a single-line message and Unwrap() returning the sentinel
//
// Domain packages declare their own sentinels (batch.ErrAlreadyFinalized and friends) and use
// these types for field-level failures, so callers can localise a failure to a field name.
package errs
