package queries

import (
	"context"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/core/domain/services"
	"intimacoes/internal/core/ports"
)

// GetReportQueryHandler runs the aggregator over the batches of a scope and the full roster.
type GetReportQueryHandler struct {
	store       ports.StoreReader
	clock       ports.Clock
	partitioner services.Partitioner
	aggregator  services.Aggregator
}

func NewGetReportQueryHandler(
	store ports.StoreReader,
	clock ports.Clock,
	partitioner services.Partitioner,
	aggregator services.Aggregator,
) GetReportQueryHandler {
	return GetReportQueryHandler{
		store:       store,
		clock:       clock,
		partitioner: partitioner,
		aggregator:  aggregator,
	}
}

func (h GetReportQueryHandler) Handle(ctx context.Context, query GetReportQuery) (GetReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReportQueryResponse{}, err
	}

	now := h.clock.Now()
	snap := h.store.Snapshot(ctx)

	var batches []*batch.Batch
	switch query.Scope() {
	case ScopeAll:
		batches = snap.Batches
	case ScopeArchived:
		batches = h.partitioner.Partition(snap.Batches, now).Archived
	default:
		batches = h.partitioner.Partition(snap.Batches, now).Active
	}

	return GetReportQueryResponse{
		Scope:       query.Scope(),
		GeneratedAt: now,
		Report:      h.aggregator.Summarize(batches, snap.Couriers, kernel.DateOf(now)),
	}, nil
}
