package queries

import (
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
)

// BatchView is the read model of one batch as listed on the dashboard.
type BatchView struct {
	ID              kernel.UUID
	CourierID       kernel.UUID
	CourierName     string
	PGFNInitial     int
	NormalInitial   int
	DepartureAt     time.Time
	EstimatedReturn kernel.Date
	Description     string
	Status          batch.Status
	DisplayStatus   batch.DisplayStatus
	// Reconciliation is nil while the batch is pending.
	Reconciliation *batch.Reconciliation
}

func newBatchView(b *batch.Batch, names map[kernel.UUID]string, today kernel.Date) BatchView {
	details := b.Details()
	view := BatchView{
		ID:              b.ID(),
		CourierID:       b.CourierID(),
		CourierName:     names[b.CourierID()],
		PGFNInitial:     b.PGFNInitial(),
		NormalInitial:   b.NormalInitial(),
		DepartureAt:     details.DepartureAt,
		EstimatedReturn: details.EstimatedReturn,
		Description:     details.Description,
		Status:          b.Status(),
		DisplayStatus:   b.DisplayStatus(today),
	}
	if r, ok := b.Reconciliation(); ok {
		view.Reconciliation = &r
	}
	return view
}

func newBatchViews(batches []*batch.Batch, names map[kernel.UUID]string, today kernel.Date) []BatchView {
	views := make([]BatchView, 0, len(batches))
	for _, b := range batches {
		views = append(views, newBatchView(b, names, today))
	}
	return views
}

func courierNames(couriers []*courier.Courier) map[kernel.UUID]string {
	names := make(map[kernel.UUID]string, len(couriers))
	for _, c := range couriers {
		names[c.ID()] = c.Name()
	}
	return names
}
