package batchrepo

import (
	"context"

	"intimacoes/internal/core/domain/model/batch"

	"gorm.io/gorm"
)

// GormBatchRepository reads and replaces the persisted batches. The store order is kept in
// the position column.
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a repository over db, which may be a transaction.
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// ReplaceAll deletes every stored batch and inserts the given ones in order.
// Run it inside a transaction to make the replacement atomic.
func (r *GormBatchRepository) ReplaceAll(ctx context.Context, batches []*batch.Batch) error {
	db := r.db.WithContext(ctx)

	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&BatchDTO{}).Error; err != nil {
		return err
	}
	if len(batches) == 0 {
		return nil
	}

	dtos := make([]BatchDTO, 0, len(batches))
	for i, b := range batches {
		if err := b.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(b, i))
	}

	return db.CreateInBatches(&dtos, 500).Error
}

// GetAll loads every stored batch in store order.
func (r *GormBatchRepository) GetAll(ctx context.Context) ([]*batch.Batch, error) {
	var dtos []BatchDTO
	if err := r.db.WithContext(ctx).Order("position").Find(&dtos).Error; err != nil {
		return nil, err
	}

	batches := make([]*batch.Batch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, nil
}
