// Package sqlite persists entity store snapshots in a single SQLite file.
//
// The state is kept as JSON blobs in a bucket table, one row per collection, and replaced
// inside one transaction on every save.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/ports"
	"intimacoes/internal/pkg/errs"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SnapshotVersion is the layout version written by Save.
const SnapshotVersion = 1

// DefaultPath is used when no path is configured.
const DefaultPath = "intimacoes.db"

const (
	bucketMeta     = "meta"
	bucketCouriers = "couriers"
	bucketBatches  = "batches"
)

// SnapshotStore implements ports.SnapshotStore on SQLite.
type SnapshotStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore opens (or creates) the database file and its state table.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SnapshotStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SnapshotStore) Path() string { return s.path }

// Close closes the database.
func (s *SnapshotStore) Close() error { return s.db.Close() }

// Load reads the stored snapshot. It returns ports.ErrSnapshotNotFound before the first Save.
func (s *SnapshotStore) Load(ctx context.Context) (ports.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return ports.Snapshot{}, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	buckets := make(map[string][]byte)
	for rows.Next() {
		var (
			bucket  string
			payload []byte
		)
		if err = rows.Scan(&bucket, &payload); err != nil {
			return ports.Snapshot{}, fmt.Errorf("scan: %w", err)
		}
		buckets[bucket] = payload
	}
	if err = rows.Err(); err != nil {
		return ports.Snapshot{}, err
	}

	rawMeta, ok := buckets[bucketMeta]
	if !ok {
		return ports.Snapshot{}, ports.ErrSnapshotNotFound
	}
	var meta metaRecord
	if err = json.Unmarshal(rawMeta, &meta); err != nil {
		return ports.Snapshot{}, fmt.Errorf("decode meta: %w", err)
	}
	if meta.Version != SnapshotVersion {
		return ports.Snapshot{}, errs.NewVersionIsInvalidError("snapshot",
			fmt.Errorf("stored version %d, supported %d", meta.Version, SnapshotVersion))
	}

	var courierRecords []courierRecord
	if err = json.Unmarshal(buckets[bucketCouriers], &courierRecords); err != nil {
		return ports.Snapshot{}, fmt.Errorf("decode couriers: %w", err)
	}
	var batchRecords []batchRecord
	if err = json.Unmarshal(buckets[bucketBatches], &batchRecords); err != nil {
		return ports.Snapshot{}, fmt.Errorf("decode batches: %w", err)
	}

	snapshot := ports.Snapshot{
		Couriers: make([]*courier.Courier, 0, len(courierRecords)),
		Batches:  make([]*batch.Batch, 0, len(batchRecords)),
	}
	for _, rec := range courierRecords {
		c, cErr := courierFromRecord(rec)
		if cErr != nil {
			return ports.Snapshot{}, fmt.Errorf("decode courier %s: %w", rec.ID, cErr)
		}
		snapshot.Couriers = append(snapshot.Couriers, c)
	}
	for _, rec := range batchRecords {
		b, bErr := batchFromRecord(rec)
		if bErr != nil {
			return ports.Snapshot{}, fmt.Errorf("decode batch %s: %w", rec.ID, bErr)
		}
		snapshot.Batches = append(snapshot.Batches, b)
	}

	return snapshot, nil
}

// Save replaces the stored snapshot atomically.
func (s *SnapshotStore) Save(ctx context.Context, snapshot ports.Snapshot) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	couriers := make([]courierRecord, 0, len(snapshot.Couriers))
	for _, c := range snapshot.Couriers {
		couriers = append(couriers, courierToRecord(c))
	}
	batches := make([]batchRecord, 0, len(snapshot.Batches))
	for _, b := range snapshot.Batches {
		batches = append(batches, batchToRecord(b))
	}

	payloads := make(map[string][]byte, 3)
	for bucket, v := range map[string]any{
		bucketCouriers: couriers,
		bucketBatches:  batches,
		bucketMeta:     metaRecord{Version: SnapshotVersion, SavedAt: time.Now().UTC()},
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		payloads[bucket] = data
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, bucket := range []string{bucketCouriers, bucketBatches, bucketMeta} {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
			bucket, payloads[bucket]); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}

	return tx.Commit()
}
