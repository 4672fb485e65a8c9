package jobs

import (
	"fmt"
	"log/slog"

	"intimacoes/internal/pkg/metrics"
)

// Schedules holds the cron specs of the background jobs. Empty values use the defaults.
type Schedules struct {
	SnapshotFlush  string
	DashboardStats string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	snapshotFlushJob  *SnapshotFlushJob
	dashboardStatsJob *DashboardStatsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	store Flusher,
	dashboardHandler DashboardQueryHandler,
	m *metrics.Metrics,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		snapshotFlushJob:  NewSnapshotFlushJob(store, schedules.SnapshotFlush, logger),
		dashboardStatsJob: NewDashboardStatsJob(dashboardHandler, m, schedules.DashboardStats, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.snapshotFlushJob.Start(); err != nil {
		return fmt.Errorf("failed to start snapshot flush job: %w", err)
	}

	if err := jm.dashboardStatsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.snapshotFlushJob.Stop()
		return fmt.Errorf("failed to start dashboard stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dashboardStatsJob.Stop()
	jm.snapshotFlushJob.Stop()
}
