// Package kernel holds the value objects shared by every aggregate of the batch engine.
//
// The package includes:
//   - UUID: identifier of couriers and batches; the nil UUID never validates
//   - Money: non-negative exact decimal amount used for the delivery fee and payable totals
//
// Both are immutable and safe to share between goroutines.
package kernel
