package infrastructure

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for cleaning runs.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal     *prometheus.CounterVec
	RowsIn        prometheus.Counter
	RowsOut       prometheus.Counter
	FocusSKUs     prometheus.Histogram
	RunDuration   prometheus.Histogram
	WarningsTotal prometheus.Counter
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleanipp",
			Name:      "runs_total",
			Help:      "Cleaning runs by outcome.",
		}, []string{"outcome"}),
		RowsIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cleanipp",
			Name:      "rows_in_total",
			Help:      "Raw input rows across all runs.",
		}),
		RowsOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cleanipp",
			Name:      "rows_out_total",
			Help:      "Cleaned output rows across all runs.",
		}),
		FocusSKUs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cleanipp",
			Name:      "focus_skus",
			Help:      "Focus SKUs flagged per run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cleanipp",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full decode-clean-export run.",
			Buckets:   prometheus.DefBuckets,
		}),
		WarningsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cleanipp",
			Name:      "warnings_total",
			Help:      "Stage warnings emitted across all runs.",
		}),
	}

	registry.MustRegister(m.RunsTotal, m.RowsIn, m.RowsOut, m.FocusSKUs, m.RunDuration, m.WarningsTotal)
	return m
}

// Handler exposes the registry for a /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records the outcome of one run.
func (m *Metrics) ObserveRun(outcome string, rowsIn, rowsOut, focus, warnings int, elapsed time.Duration) {
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RowsIn.Add(float64(rowsIn))
	m.RowsOut.Add(float64(rowsOut))
	m.FocusSKUs.Observe(float64(focus))
	m.WarningsTotal.Add(float64(warnings))
	m.RunDuration.Observe(elapsed.Seconds())
}
