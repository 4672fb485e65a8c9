package courierrepo

import (
	"context"

	"intimacoes/internal/core/domain/model/courier"

	"gorm.io/gorm"
)

// GormCourierRepository reads and replaces the persisted courier roster.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a repository over db, which may be a transaction.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// ReplaceAll deletes every stored courier and inserts the given ones.
// Run it inside a transaction to make the replacement atomic.
func (r *GormCourierRepository) ReplaceAll(ctx context.Context, couriers []*courier.Courier) error {
	db := r.db.WithContext(ctx)

	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&CourierDTO{}).Error; err != nil {
		return err
	}
	if len(couriers) == 0 {
		return nil
	}

	dtos := make([]CourierDTO, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(c))
	}

	return db.CreateInBatches(&dtos, 500).Error
}

// GetAll loads every stored courier.
func (r *GormCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}
