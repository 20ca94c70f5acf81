package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// =============================================================================
// Prometheus Metrics for Analyses
// =============================================================================

// Metrics holds the collectors exported on /metrics. Collectors are
// registered on the Registerer passed to NewMetrics so tests can use an
// isolated registry.
type Metrics struct {
	// analyses counts completed analyses.
	// Labels: assumption, label (estimated complexity)
	analyses *prometheus.CounterVec

	// errors counts rejected or failed analyses.
	// Labels: reason (invalid_range, invalid_runs, unknown_assumption, cancelled, bad_request, internal)
	errors *prometheus.CounterVec

	// duration measures end-to-end analysis time, simulated latency included.
	// Labels: assumption
	duration *prometheus.HistogramVec

	// samples tracks how many rows each analysis produced.
	samples prometheus.Histogram
}

// NewMetrics creates and registers the analysis collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "complexity_sim",
			Name:      "analyses_total",
			Help:      "Total completed analyses by assumption and estimated label",
		}, []string{"assumption", "label"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "complexity_sim",
			Name:      "analysis_errors_total",
			Help:      "Total failed analyses by reason",
		}, []string{"reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "complexity_sim",
			Name:      "analysis_duration_seconds",
			Help:      "Analysis duration in seconds, including simulated latency",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 1.5, 2, 5},
		}, []string{"assumption"}),
		samples: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "complexity_sim",
			Name:      "analysis_samples",
			Help:      "Number of samples produced per analysis",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	reg.MustRegister(m.analyses, m.errors, m.duration, m.samples)
	return m
}

func (m *Metrics) recordSuccess(assumption, label string, rows int, seconds float64) {
	m.analyses.WithLabelValues(assumption, label).Inc()
	m.duration.WithLabelValues(assumption).Observe(seconds)
	m.samples.Observe(float64(rows))
}

func (m *Metrics) recordError(reason string) {
	m.errors.WithLabelValues(reason).Inc()
}
