package queries

import (
	"context"

	"intimacoes/internal/core/ports"
)

// GetAllCouriersQueryHandler lists couriers in roster order.
type GetAllCouriersQueryHandler struct {
	store ports.StoreReader
}

func NewGetAllCouriersQueryHandler(store ports.StoreReader) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{store: store}
}

// Handle returns every courier, sorted by name with Brazilian Portuguese collation.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snap := h.store.Snapshot(ctx)
	couriers := make([]GetAllCouriersQueryResponse, 0, len(snap.Couriers))
	for _, c := range snap.Couriers {
		couriers = append(couriers, GetAllCouriersQueryResponse{
			ID:      c.ID(),
			Name:    c.Name(),
			Profile: c.Profile(),
		})
	}

	return couriers, nil
}
