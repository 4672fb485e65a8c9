package metrics_test

import (
	"errors"
	"testing"

	"intimacoes/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveMutation(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveMutation("finalize_batch", nil)
	m.ObserveMutation("finalize_batch", nil)
	m.ObserveMutation("finalize_batch", errors.New("boom"))

	assert.InDelta(t, 2, testutil.ToFloat64(m.MutationsTotal.WithLabelValues("finalize_batch", metrics.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.MutationsTotal.WithLabelValues("finalize_batch", metrics.OutcomeFailure)), 0)
}

func TestMetrics_ObserveSnapshotSave(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveSnapshotSave(errors.New("disk full"))
	assert.InDelta(t, 1, testutil.ToFloat64(m.SnapshotSaveFailuresTotal), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SnapshotDirty), 0)

	m.ObserveSnapshotSave(nil)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SnapshotSaveFailuresTotal), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.SnapshotDirty), 0)
}

func TestMetrics_SetDashboard(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.SetDashboard(5, 3, 1)
	m.IncrementConservationRejection("pgfn")

	assert.InDelta(t, 5, testutil.ToFloat64(m.ActiveBatches), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.ArchivedBatches), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.OverdueBatches), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ConservationRejectionsTotal.WithLabelValues("pgfn")), 0)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	require.NotPanics(t, func() {
		m.ObserveMutation("create_batch", nil)
		m.IncrementConservationRejection("normal")
		m.ObserveSnapshotSave(errors.New("x"))
		m.SetDashboard(1, 2, 3)
	})
}

func TestNew_RegistersOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	assert.Panics(t, func() { metrics.New(reg) }, "second registration on the same registry must collide")
}
