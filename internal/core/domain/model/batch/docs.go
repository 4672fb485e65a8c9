// Package batch models the notification batch aggregate and its reconciliation rules.
//
// A batch is created pending with immutable initial counts per category (PGFN and normal).
// Finalize reconciles it: the delivered, returned and absent counts of each category must add
// up to its initial count, and the payable total is (delivered + returned) times the delivery
// fee. Absent documents never pay.
//
// Reconcile and ValidateInitialCounts are exported so callers can check candidate values
// without touching an aggregate.
package batch
