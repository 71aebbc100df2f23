package jobmetrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// sample returns the value of the series name{labels} from the registry.
func sample(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue metrics
				}
			}
			switch {
			case metric.GetCounter() != nil:
				return metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				return metric.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func TestTrackerRecordsOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	job := map[string]string{"job": "advisor:stats_warmup"}

	tracker := m.Track("advisor:stats_warmup")
	require.Equal(t, 1.0, sample(t, reg, "advisor_jobs_inflight", job))
	require.NoError(t, tracker.End(nil))

	boom := errors.New("redis down")
	require.ErrorIs(t, m.Track("advisor:stats_warmup").End(boom), boom)

	require.Equal(t, 1.0, sample(t, reg, "advisor_jobs_total", map[string]string{"job": "advisor:stats_warmup", "status": "success"}))
	require.Equal(t, 1.0, sample(t, reg, "advisor_jobs_total", map[string]string{"job": "advisor:stats_warmup", "status": "failure"}))
	require.Equal(t, 1.0, sample(t, reg, "advisor_jobs_failures_total", job))
	require.Equal(t, 0.0, sample(t, reg, "advisor_jobs_inflight", job))
}

func TestNilMetricsTracker(t *testing.T) {
	var m *Metrics
	boom := errors.New("boom")
	require.ErrorIs(t, m.Track("job").End(boom), boom)
}
