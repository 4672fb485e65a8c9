package queries

import (
	"context"

	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/core/domain/services"
	"intimacoes/internal/core/ports"
)

// GetDashboardQueryHandler partitions the committed batches at the current time.
// The split is recomputed on every call, so batches move to the archive as time passes
// without any write.
type GetDashboardQueryHandler struct {
	store       ports.StoreReader
	clock       ports.Clock
	partitioner services.Partitioner
}

func NewGetDashboardQueryHandler(
	store ports.StoreReader,
	clock ports.Clock,
	partitioner services.Partitioner,
) GetDashboardQueryHandler {
	return GetDashboardQueryHandler{
		store:       store,
		clock:       clock,
		partitioner: partitioner,
	}
}

func (h GetDashboardQueryHandler) Handle(ctx context.Context, query GetDashboardQuery) (GetDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardQueryResponse{}, err
	}

	now := h.clock.Now()
	today := kernel.DateOf(now)
	snap := h.store.Snapshot(ctx)
	names := courierNames(snap.Couriers)
	view := h.partitioner.Partition(snap.Batches, now)

	return GetDashboardQueryResponse{
		GeneratedAt: now,
		Active:      newBatchViews(view.Active, names, today),
		Archived:    newBatchViews(view.Archived, names, today),
	}, nil
}
