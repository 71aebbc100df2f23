// Package jobmetrics instruments background jobs with Prometheus collectors.
package jobmetrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for background jobs.
type Metrics struct {
	runs     *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight *prometheus.GaugeVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// NewMetrics registers the job collectors on registerer, or once on the
// default registerer when it is nil.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = buildMetrics(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return buildMetrics(registerer)
}

// Tracker instruments a single job run.
type Tracker struct {
	metrics *Metrics
	job     string
	start   time.Time
}

// Track starts a tracker for job and marks it in flight.
func (m *Metrics) Track(job string) *Tracker {
	if m == nil {
		return &Tracker{job: job, start: time.Now()}
	}
	if job != "" {
		m.inflight.WithLabelValues(job).Inc()
	}
	return &Tracker{metrics: m, job: job, start: time.Now()}
}

// End records the outcome and duration of the run and returns err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil || t.job == "" {
		return err
	}
	t.metrics.inflight.WithLabelValues(t.job).Dec()
	status := "success"
	if err != nil {
		status = "failure"
		t.metrics.failures.WithLabelValues(t.job).Inc()
	}
	t.metrics.runs.WithLabelValues(t.job, status).Inc()
	t.metrics.duration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

func buildMetrics(registerer prometheus.Registerer) *Metrics {
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_jobs_total",
		Help: "Background job runs by task type and status.",
	}, []string{"job", "status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_jobs_failures_total",
		Help: "Failed background job runs by task type.",
	}, []string{"job"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "advisor_job_duration_seconds",
		Help:    "Background job duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	inflight := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "advisor_jobs_inflight",
		Help: "Background jobs currently running.",
	}, []string{"job"})
	registerer.MustRegister(runs, failures, duration, inflight)
	return &Metrics{runs: runs, failures: failures, duration: duration, inflight: inflight}
}
