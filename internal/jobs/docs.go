// Package jobs provides scheduled background tasks for the batch tracking service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six field specs with seconds).
//
// # Available Jobs
//
// 1. SnapshotFlushJob - retries saving the entity store while its last save failed
// 2. DashboardStatsJob - recomputes active, archived and overdue batch counts and exports them as gauges
//
// # Usage
//
//	jobManager := jobs.NewJobManager(store, dashboardHandler, m, jobs.Schedules{}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and retried on the next tick. An invalid schedule fails StartAll,
// which stops any job already started.
package jobs
