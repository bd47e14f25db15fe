// Package metrics exposes the daemon's run counters over Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline run instrumentation on its own registry.
type Metrics struct {
	registry    *prometheus.Registry
	runs        prometheus.Counter
	failures    prometheus.Counter
	lastSuccess prometheus.Gauge
	duration    prometheus.Histogram
}

// New creates the metrics set with a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "profilegen_runs_total",
			Help: "Pipeline runs started.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "profilegen_run_failures_total",
			Help: "Pipeline runs that ended in an error.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "profilegen_last_success_timestamp_seconds",
			Help: "Unix time of the last successful pipeline run.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "profilegen_run_duration_seconds",
			Help:    "Wall-clock duration of pipeline runs.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}
	m.registry.MustRegister(m.runs, m.failures, m.lastSuccess, m.duration)
	return m
}

// ObserveRun records one pipeline run.
func (m *Metrics) ObserveRun(err error, elapsed time.Duration) {
	m.runs.Inc()
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.failures.Inc()
		return
	}
	m.lastSuccess.SetToCurrentTime()
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return mux
}
