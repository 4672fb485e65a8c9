package services

import (
	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
)

// Totals are the reconciliation sums over a set of finalized batches.
type Totals struct {
	PayableValue kernel.Money
	Delivered    int
	Returned     int
	Absent       int
}

func (t *Totals) add(r batch.Reconciliation) {
	t.PayableValue = t.PayableValue.Add(r.TotalValue)
	t.Delivered += r.Counts.Delivered()
	t.Returned += r.Counts.Returned()
	t.Absent += r.Counts.Absent()
}

// CourierSummary holds the totals of one courier together with how many of its batches are in
// each display state.
type CourierSummary struct {
	CourierID   kernel.UUID
	CourierName string
	Totals
	Pending   int
	Overdue   int
	Finalized int
}

// Report is the outcome of one aggregation.
type Report struct {
	// System sums every finalized batch of the input, including batches of couriers that are
	// not in the roster.
	System Totals
	// Couriers has one entry per roster courier, in roster order, even when it has no batches.
	Couriers []CourierSummary
}

// Aggregator computes the system and per-courier reports. It keeps no state between calls.
//
// Example:
//
//	report := services.NewAggregator().Summarize(view.Active, couriers, kernel.DateOf(time.Now()))
type Aggregator struct{}

// NewAggregator creates an Aggregator.
func NewAggregator() Aggregator {
	return Aggregator{}
}

// Summarize aggregates batches over the courier roster. today drives the overdue count.
func (a Aggregator) Summarize(batches []*batch.Batch, couriers []*courier.Courier, today kernel.Date) Report {
	report := Report{
		Couriers: make([]CourierSummary, len(couriers)),
	}

	index := make(map[kernel.UUID]int, len(couriers))
	for i, c := range couriers {
		report.Couriers[i] = CourierSummary{
			CourierID:   c.ID(),
			CourierName: c.Name(),
		}
		index[c.ID()] = i
	}

	for _, b := range batches {
		r, finalized := b.Reconciliation()
		if finalized {
			report.System.add(r)
		}

		i, known := index[b.CourierID()]
		if !known {
			continue
		}
		summary := &report.Couriers[i]

		switch b.DisplayStatus(today) {
		case batch.DisplayFinalized:
			summary.Finalized++
			summary.add(r)
		case batch.DisplayOverdue:
			summary.Overdue++
		case batch.DisplayPending:
			summary.Pending++
		}
	}

	return report
}
