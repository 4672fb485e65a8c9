package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSnapshotFlushSchedule retries an unsaved snapshot every 30 seconds.
const DefaultSnapshotFlushSchedule = "*/30 * * * * *"

// Flusher is a store whose committed state may be waiting for a successful save.
type Flusher interface {
	IsDirty() bool
	Flush(ctx context.Context) error
}

// SnapshotFlushJob retries saving the entity store after a failed snapshot save.
type SnapshotFlushJob struct {
	store    Flusher
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSnapshotFlushJob creates a job that flushes store on schedule (a six field cron spec).
func NewSnapshotFlushJob(store Flusher, schedule string, logger *slog.Logger) *SnapshotFlushJob {
	if schedule == "" {
		schedule = DefaultSnapshotFlushSchedule
	}
	return &SnapshotFlushJob{
		store:    store,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "snapshot_flush_job"),
	}
}

// Start schedules the job.
func (j *SnapshotFlushJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot flush job started", "schedule", j.schedule)
	return nil
}

// Run performs a single flush. Clean stores are skipped.
func (j *SnapshotFlushJob) Run(ctx context.Context) {
	if !j.store.IsDirty() {
		return
	}

	if err := j.store.Flush(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Snapshot flush failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Unsaved snapshot flushed")
}

// Stop stops the job and waits for a running flush to finish.
func (j *SnapshotFlushJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Snapshot flush job stopped")
}
