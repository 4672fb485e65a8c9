package services

import (
	"fmt"
	"slices"
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/pkg/errs"
)

// DefaultArchivalDelay is how long a finalized batch stays on the active dashboard.
const DefaultArchivalDelay = 4 * 24 * time.Hour

// Partition is the split of a batch collection into the active and archived views.
// Both groups are ordered by departure, newest first.
type Partition struct {
	Active   []*batch.Batch
	Archived []*batch.Batch
}

// Partitioner splits batches into active and archived groups by the time elapsed since their
// return. Nothing is stored: a batch moves to the archive only because time has passed.
//
// Business rules:
//   - every pending batch is active
//   - a finalized batch is active while now - returnAt <= archivalDelay
//   - a finalized batch is archived once now - returnAt > archivalDelay
//
// Example:
//
//	p, _ := services.NewPartitioner(services.DefaultArchivalDelay)
//	view := p.Partition(batches, time.Now())
type Partitioner struct {
	archivalDelay time.Duration
}

// NewPartitioner creates a Partitioner. A negative delay is rejected.
func NewPartitioner(archivalDelay time.Duration) (Partitioner, error) {
	if archivalDelay < 0 {
		return Partitioner{}, errs.NewValueIsInvalidErrorWithCause(
			"archivalDelay", fmt.Errorf("%s is negative", archivalDelay))
	}
	return Partitioner{archivalDelay: archivalDelay}, nil
}

// ArchivalDelay returns the configured delay.
func (p Partitioner) ArchivalDelay() time.Duration {
	return p.archivalDelay
}

// IsArchived reports whether b belongs to the archived group at now.
func (p Partitioner) IsArchived(b *batch.Batch, now time.Time) bool {
	r, ok := b.Reconciliation()
	if !ok {
		return false
	}
	return now.Sub(r.ReturnAt) > p.archivalDelay
}

// Partition splits batches at now. The input slice is not modified; the relative order of
// batches with the same departure is preserved.
func (p Partitioner) Partition(batches []*batch.Batch, now time.Time) Partition {
	result := Partition{
		Active:   make([]*batch.Batch, 0, len(batches)),
		Archived: make([]*batch.Batch, 0),
	}

	for _, b := range batches {
		if p.IsArchived(b, now) {
			result.Archived = append(result.Archived, b)
			continue
		}
		result.Active = append(result.Active, b)
	}

	SortByDeparture(result.Active)
	SortByDeparture(result.Archived)
	return result
}

// SortByDeparture orders batches by departure, newest first, keeping ties in their current order.
func SortByDeparture(batches []*batch.Batch) {
	slices.SortStableFunc(batches, func(a, b *batch.Batch) int {
		return b.DepartureAt().Compare(a.DepartureAt())
	})
}
