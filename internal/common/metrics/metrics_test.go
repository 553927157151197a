package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestJobTimer(t *testing.T) {
	const taskType = "test-job-timer"

	completed := WorkerJobsCompleted.WithLabelValues(taskType)
	failed := WorkerJobsFailed.WithLabelValues(taskType, "PLAN_FAILED")
	active := WorkerJobsActive.WithLabelValues(taskType)

	ok := StartJob(taskType)
	bad := StartJob(taskType)
	assert.Equal(t, 2.0, gaugeValue(t, active))

	ok.Done("")
	bad.Done("PLAN_FAILED")

	assert.Equal(t, 0.0, gaugeValue(t, active))
	assert.Equal(t, 1.0, counterValue(t, completed))
	assert.Equal(t, 1.0, counterValue(t, failed))
}
