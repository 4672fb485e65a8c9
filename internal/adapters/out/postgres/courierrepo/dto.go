// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// It handles the conversion between courier aggregates and their relational representation.
package courierrepo

import (
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Document       string    `gorm:"type:varchar(64)"`
	Address        string    `gorm:"type:text"`
	Phone          string    `gorm:"type:varchar(32)"`
	SecondaryPhone string    `gorm:"type:varchar(32)"`
	PaymentKey     string    `gorm:"type:varchar(255)"`
	PreferredRoute string    `gorm:"type:text"`
}

// TableName overrides GORM's default naming convention to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	profile := aggregate.Profile()

	return CourierDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Document:       profile.Document,
		Address:        profile.Address,
		Phone:          profile.Phone,
		SecondaryPhone: profile.SecondaryPhone,
		PaymentKey:     profile.PaymentKey,
		PreferredRoute: profile.PreferredRoute,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, courier.Profile{
		Document:       dto.Document,
		Address:        dto.Address,
		Phone:          dto.Phone,
		SecondaryPhone: dto.SecondaryPhone,
		PaymentKey:     dto.PaymentKey,
		PreferredRoute: dto.PreferredRoute,
	})
}
