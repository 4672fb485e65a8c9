// Package batchrepo provides data transfer objects and mapping functions for batch persistence.
// It handles the conversion between batch aggregates and their relational representation.
package batchrepo

import (
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchDTO represents the database structure for persisting batch aggregates.
// Reconciliation columns are NULL while the batch is pending.
type BatchDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Position        int       `gorm:"not null;index"`
	PGFNInitial     int       `gorm:"column:pgfn_initial;not null"`
	NormalInitial   int       `gorm:"not null"`
	DepartureAt     time.Time `gorm:"not null"`
	EstimatedReturn time.Time `gorm:"type:date;not null"`
	Description     string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(16);not null;index"`

	ReturnAt        *time.Time
	PGFNDelivered   *int                `gorm:"column:pgfn_delivered"`
	PGFNReturned    *int                `gorm:"column:pgfn_returned"`
	PGFNAbsent      *int                `gorm:"column:pgfn_absent"`
	NormalDelivered *int
	NormalReturned  *int
	NormalAbsent    *int
	TotalValue      decimal.NullDecimal `gorm:"type:numeric(14,2)"`
}

// TableName overrides GORM's default naming convention to use "batches".
func (BatchDTO) TableName() string {
	return "batches"
}

func fromDomain(aggregate *batch.Batch, position int) BatchDTO {
	details := aggregate.Details()

	dto := BatchDTO{
		ID:              aggregate.ID().Bytes(),
		CourierID:       aggregate.CourierID().Bytes(),
		Position:        position,
		PGFNInitial:     aggregate.PGFNInitial(),
		NormalInitial:   aggregate.NormalInitial(),
		DepartureAt:     details.DepartureAt,
		EstimatedReturn: details.EstimatedReturn.Time(),
		Description:     details.Description,
		Status:          aggregate.Status().String(),
	}

	if r, ok := aggregate.Reconciliation(); ok {
		returnAt := r.ReturnAt
		dto.ReturnAt = &returnAt
		dto.PGFNDelivered = &r.Counts.PGFNDelivered
		dto.PGFNReturned = &r.Counts.PGFNReturned
		dto.PGFNAbsent = &r.Counts.PGFNAbsent
		dto.NormalDelivered = &r.Counts.NormalDelivered
		dto.NormalReturned = &r.Counts.NormalReturned
		dto.NormalAbsent = &r.Counts.NormalAbsent
		dto.TotalValue = decimal.NewNullDecimal(r.TotalValue.Decimal())
	}

	return dto
}

func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := batch.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var reconciliation *batch.Reconciliation
	if dto.ReturnAt != nil {
		total, moneyErr := kernel.NewMoney(dto.TotalValue.Decimal)
		if moneyErr != nil {
			return nil, moneyErr
		}
		reconciliation = &batch.Reconciliation{
			ReturnAt: *dto.ReturnAt,
			Counts: batch.Counts{
				PGFNDelivered:   deref(dto.PGFNDelivered),
				PGFNReturned:    deref(dto.PGFNReturned),
				PGFNAbsent:      deref(dto.PGFNAbsent),
				NormalDelivered: deref(dto.NormalDelivered),
				NormalReturned:  deref(dto.NormalReturned),
				NormalAbsent:    deref(dto.NormalAbsent),
			},
			TotalValue: total,
		}
	}

	return batch.RestoreBatch(id, courierID, dto.PGFNInitial, dto.NormalInitial, batch.Details{
		DepartureAt:     dto.DepartureAt,
		EstimatedReturn: kernel.DateOf(dto.EstimatedReturn.UTC()),
		Description:     dto.Description,
	}, status, reconciliation)
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
