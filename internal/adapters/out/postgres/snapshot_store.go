// Package postgres persists entity store snapshots in PostgreSQL through GORM.
//
// A snapshot is written as plain rows: one table for couriers, one for batches (with their
// store position) and a single-row metadata table. Save replaces all three inside one
// transaction, so a reader of the database never sees half a snapshot.
//
// Example:
//
//	db, err := postgres.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	snapshots := postgres.NewSnapshotStore(db)
//	if err := snapshots.Migrate(ctx); err != nil {
//	    return err
//	}
//	store := memory.NewStore(snapshots, logger, m)
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"intimacoes/internal/adapters/out/postgres/batchrepo"
	"intimacoes/internal/adapters/out/postgres/courierrepo"
	"intimacoes/internal/core/ports"
	"intimacoes/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotVersion is the layout version written by Save.
const SnapshotVersion = 1

const metaRowID = 1

// SnapshotMetaDTO records that a snapshot exists and which layout wrote it.
type SnapshotMetaDTO struct {
	ID       int `gorm:"primaryKey;autoIncrement:false"`
	Version  int `gorm:"not null"`
	Couriers int `gorm:"not null"`
	Batches  int `gorm:"not null"`
	SavedAt  time.Time
}

// TableName overrides GORM's default naming convention to use "snapshot_meta".
func (SnapshotMetaDTO) TableName() string {
	return "snapshot_meta"
}

// SnapshotStore implements ports.SnapshotStore on PostgreSQL.
type SnapshotStore struct {
	db *gorm.DB
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store over db.
func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Migrate creates or updates the snapshot tables.
func (s *SnapshotStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&courierrepo.CourierDTO{},
		&batchrepo.BatchDTO{},
		&SnapshotMetaDTO{},
	)
}

// Load reads the stored snapshot. It returns ports.ErrSnapshotNotFound before the first Save.
func (s *SnapshotStore) Load(ctx context.Context) (ports.Snapshot, error) {
	var meta SnapshotMetaDTO
	err := s.db.WithContext(ctx).First(&meta, "id = ?", metaRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Snapshot{}, ports.ErrSnapshotNotFound
	}
	if err != nil {
		return ports.Snapshot{}, err
	}
	if meta.Version != SnapshotVersion {
		return ports.Snapshot{}, errs.NewVersionIsInvalidError("snapshot",
			fmt.Errorf("stored version %d, supported %d", meta.Version, SnapshotVersion))
	}

	couriers, err := courierrepo.NewGormCourierRepository(s.db).GetAll(ctx)
	if err != nil {
		return ports.Snapshot{}, fmt.Errorf("load couriers: %w", err)
	}

	batches, err := batchrepo.NewGormBatchRepository(s.db).GetAll(ctx)
	if err != nil {
		return ports.Snapshot{}, fmt.Errorf("load batches: %w", err)
	}

	return ports.Snapshot{Couriers: couriers, Batches: batches}, nil
}

// Save replaces the stored snapshot atomically.
func (s *SnapshotStore) Save(ctx context.Context, snapshot ports.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := batchrepo.NewGormBatchRepository(tx).ReplaceAll(ctx, snapshot.Batches); err != nil {
			return fmt.Errorf("save batches: %w", err)
		}
		if err := courierrepo.NewGormCourierRepository(tx).ReplaceAll(ctx, snapshot.Couriers); err != nil {
			return fmt.Errorf("save couriers: %w", err)
		}

		meta := SnapshotMetaDTO{
			ID:       metaRowID,
			Version:  SnapshotVersion,
			Couriers: len(snapshot.Couriers),
			Batches:  len(snapshot.Batches),
			SavedAt:  time.Now().UTC(),
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&meta).Error
	})
}
