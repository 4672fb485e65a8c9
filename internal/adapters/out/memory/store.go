// Package memory implements the entity store: the in-memory owner of couriers and batches.
//
// The store admits a single writer at a time. A unit of work stages a private copy of the
// published state, and Commit swaps the copy in under a read/write lock, so readers only ever
// see fully committed states. After every commit that changed something the whole state is
// handed to a ports.SnapshotStore. A failed save is logged and counted, marks the store dirty
// and never undoes the in-memory commit; Flush retries it.
package memory

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/core/ports"
	"intimacoes/internal/pkg/metrics"
)

// state is one version of the store contents. A published state is never modified again.
type state struct {
	// couriers are kept in roster order
	couriers []*courier.Courier
	// batches are kept newest-inserted first
	batches []*batch.Batch
}

func (s state) clone() state {
	couriers := make([]*courier.Courier, 0, len(s.couriers))
	for _, c := range s.couriers {
		couriers = append(couriers, c.Clone())
	}

	batches := make([]*batch.Batch, 0, len(s.batches))
	for _, b := range s.batches {
		batches = append(batches, b.Clone())
	}

	return state{couriers: couriers, batches: batches}
}

func (s state) snapshot() ports.Snapshot {
	return ports.Snapshot{
		Couriers: slices.Clone(s.couriers),
		Batches:  slices.Clone(s.batches),
	}
}

// Store owns the committed state.
type Store struct {
	// writer is a one-slot semaphore held from Begin to Commit or Rollback
	writer chan struct{}

	mu        sync.RWMutex
	published state

	snapshots ports.SnapshotStore
	dirty     atomic.Bool

	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewStore creates an empty store. snapshots may be nil for a purely in-memory store.
func NewStore(snapshots ports.SnapshotStore, logger *slog.Logger, m *metrics.Metrics) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		writer: make(chan struct{}, 1),
		published: state{
			couriers: make([]*courier.Courier, 0),
			batches:  make([]*batch.Batch, 0),
		},
		snapshots: snapshots,
		metrics:   m,
		logger:    logger.With("component", "entity_store"),
	}
}

// Load replaces the store contents with the saved snapshot. A missing or unreadable snapshot
// leaves the store empty. Batches whose courier is not in the snapshot are dropped.
func (s *Store) Load(ctx context.Context) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	loaded := state{
		couriers: make([]*courier.Courier, 0),
		batches:  make([]*batch.Batch, 0),
	}

	if s.snapshots != nil {
		snap, err := s.snapshots.Load(ctx)
		switch {
		case errors.Is(err, ports.ErrSnapshotNotFound):
			s.logger.InfoContext(ctx, "no snapshot found, starting empty")
		case err != nil:
			s.logger.WarnContext(ctx, "snapshot could not be loaded, starting empty", "error", err)
		default:
			loaded = s.sanitize(ctx, snap)
		}
	}

	s.mu.Lock()
	s.published = loaded
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "entity store loaded",
		"couriers", len(loaded.couriers),
		"batches", len(loaded.batches),
	)
	return nil
}

func (s *Store) sanitize(ctx context.Context, snap ports.Snapshot) state {
	known := make(map[kernel.UUID]struct{}, len(snap.Couriers))
	couriers := make([]*courier.Courier, 0, len(snap.Couriers))
	for _, c := range snap.Couriers {
		if err := c.Validate(); err != nil {
			s.logger.WarnContext(ctx, "dropping invalid courier from snapshot", "error", err)
			continue
		}
		if _, dup := known[c.ID()]; dup {
			s.logger.WarnContext(ctx, "dropping duplicate courier from snapshot", "courier_id", c.ID().String())
			continue
		}
		known[c.ID()] = struct{}{}
		couriers = append(couriers, c)
	}
	courier.SortByName(couriers)

	seen := make(map[kernel.UUID]struct{}, len(snap.Batches))
	batches := make([]*batch.Batch, 0, len(snap.Batches))
	for _, b := range snap.Batches {
		if err := b.Validate(); err != nil {
			s.logger.WarnContext(ctx, "dropping invalid batch from snapshot", "error", err)
			continue
		}
		if _, ok := known[b.CourierID()]; !ok {
			s.logger.WarnContext(ctx, "dropping batch of unknown courier",
				"batch_id", b.ID().String(),
				"courier_id", b.CourierID().String(),
			)
			continue
		}
		if _, dup := seen[b.ID()]; dup {
			s.logger.WarnContext(ctx, "dropping duplicate batch from snapshot", "batch_id", b.ID().String())
			continue
		}
		seen[b.ID()] = struct{}{}
		batches = append(batches, b)
	}

	return state{couriers: couriers, batches: batches}
}

// Snapshot returns the last committed state. The slices are private to the caller; the
// aggregates they point to are never modified after publication and must not be modified
// by the caller either.
func (s *Store) Snapshot(_ context.Context) ports.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.published.snapshot()
}

// IsDirty reports whether the last committed state is still unsaved.
func (s *Store) IsDirty() bool {
	return s.dirty.Load()
}

// Flush saves the committed state if the previous save failed. It returns the save error.
func (s *Store) Flush(ctx context.Context) error {
	if !s.IsDirty() {
		return nil
	}
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	s.mu.RLock()
	current := s.published
	s.mu.RUnlock()

	return s.save(ctx, current)
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.writer <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.writer
}

func (s *Store) current() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.published
}

// publish swaps in a staged state and saves it. The caller holds the writer slot.
func (s *Store) publish(ctx context.Context, staged state) {
	s.mu.Lock()
	s.published = staged
	s.mu.Unlock()

	// the mutation is already visible, so the save must not depend on the caller staying around
	if err := s.save(context.WithoutCancel(ctx), staged); err != nil {
		s.logger.ErrorContext(ctx, "snapshot save failed, state kept in memory", "error", err)
	}
}

func (s *Store) save(ctx context.Context, st state) error {
	if s.snapshots == nil {
		return nil
	}

	err := s.snapshots.Save(ctx, st.snapshot())
	s.metrics.ObserveSnapshotSave(err)
	s.dirty.Store(err != nil)
	return err
}
