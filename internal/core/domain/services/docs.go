// Package services provides the read-side domain services of the batch lifecycle.
//
// The package includes:
//   - Partitioner: splits batches into the active and archived views by time since return
//   - Aggregator: computes system-wide and per-courier reconciliation totals
//
// Both are pure: they read the aggregates they are given and the supplied time, and never
// mutate either. Every call recomputes its result from scratch.
package services
