// Package metrics holds the Prometheus instruments of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for MutationsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics provides observability for the batch lifecycle.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	MutationsTotal              *prometheus.CounterVec
	ConservationRejectionsTotal *prometheus.CounterVec
	SnapshotSaveFailuresTotal   prometheus.Counter
	SnapshotDirty               prometheus.Gauge
	ActiveBatches               prometheus.Gauge
	ArchivedBatches             prometheus.Gauge
	OverdueBatches              prometheus.Gauge
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intimacoes_mutations_total",
			Help: "Total number of entity store mutations by operation and outcome",
		}, []string{"operation", "outcome"}),
		ConservationRejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intimacoes_conservation_rejections_total",
			Help: "Total number of reconciliations rejected for an unbalanced category",
		}, []string{"category"}),
		SnapshotSaveFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "intimacoes_snapshot_save_failures_total",
			Help: "Total number of failed snapshot saves",
		}),
		SnapshotDirty: factory.NewGauge(prometheus.GaugeOpts{
			Name: "intimacoes_snapshot_dirty",
			Help: "1 while the last committed state has not been saved",
		}),
		ActiveBatches: factory.NewGauge(prometheus.GaugeOpts{
			Name: "intimacoes_active_batches",
			Help: "Batches on the active dashboard at the last stats run",
		}),
		ArchivedBatches: factory.NewGauge(prometheus.GaugeOpts{
			Name: "intimacoes_archived_batches",
			Help: "Archived batches at the last stats run",
		}),
		OverdueBatches: factory.NewGauge(prometheus.GaugeOpts{
			Name: "intimacoes_overdue_batches",
			Help: "Pending batches past their estimated return date at the last stats run",
		}),
	}
}

// ObserveMutation records the outcome of a lifecycle operation.
func (m *Metrics) ObserveMutation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.MutationsTotal.WithLabelValues(operation, outcome).Inc()
}

// IncrementConservationRejection records one unbalanced category.
func (m *Metrics) IncrementConservationRejection(category string) {
	if m == nil {
		return
	}
	m.ConservationRejectionsTotal.WithLabelValues(category).Inc()
}

// ObserveSnapshotSave records a save attempt and tracks the dirty flag.
func (m *Metrics) ObserveSnapshotSave(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.SnapshotSaveFailuresTotal.Inc()
		m.SnapshotDirty.Set(1)
		return
	}
	m.SnapshotDirty.Set(0)
}

// SetDashboard publishes the sizes of the dashboard groups.
func (m *Metrics) SetDashboard(active, archived, overdue int) {
	if m == nil {
		return
	}
	m.ActiveBatches.Set(float64(active))
	m.ArchivedBatches.Set(float64(archived))
	m.OverdueBatches.Set(float64(overdue))
}
