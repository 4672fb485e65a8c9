package jobs

import (
	"context"
	"log/slog"

	"intimacoes/internal/core/application/usecases/queries"
	"intimacoes/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultDashboardStatsSchedule recomputes dashboard stats every minute.
const DefaultDashboardStatsSchedule = "0 * * * * *"

// DashboardQueryHandler computes the dashboard groups.
type DashboardQueryHandler interface {
	Handle(ctx context.Context, query queries.GetDashboardQuery) (queries.GetDashboardQueryResponse, error)
}

// DashboardStatsJob periodically recomputes the active, archived and overdue batch counts
// and exports them as gauges.
type DashboardStatsJob struct {
	handler  DashboardQueryHandler
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDashboardStatsJob creates the job. A nil m only logs the counts.
func NewDashboardStatsJob(
	handler DashboardQueryHandler,
	m *metrics.Metrics,
	schedule string,
	logger *slog.Logger,
) *DashboardStatsJob {
	if schedule == "" {
		schedule = DefaultDashboardStatsSchedule
	}
	return &DashboardStatsJob{
		handler:  handler,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "dashboard_stats_job"),
	}
}

// Start schedules the job.
func (j *DashboardStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dashboard stats job started", "schedule", j.schedule)
	return nil
}

// Run computes the stats once.
func (j *DashboardStatsJob) Run(ctx context.Context) {
	dashboard, err := j.handler.Handle(ctx, queries.NewGetDashboardQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Dashboard stats job failed", "error", err)
		return
	}

	active, archived, overdue := len(dashboard.Active), len(dashboard.Archived), dashboard.Overdue()
	j.metrics.SetDashboard(active, archived, overdue)
	j.logger.InfoContext(ctx, "Dashboard stats",
		"active", active,
		"archived", archived,
		"overdue", overdue,
	)
}

// Stop stops the job and waits for a running computation to finish.
func (j *DashboardStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dashboard stats job stopped")
}
