// Package metrics is the observability sink of the decision engine. It owns
// the prometheus collectors for catalog refreshes, pipeline stages,
// counter-store degradation and prediction fallbacks.
//
// All recording methods accept a nil *Metrics and do nothing, so components
// can be built without a registry in tests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector the engine records into.
type Metrics struct {
	refreshTotal       *prometheus.CounterVec
	refreshDuration    prometheus.Histogram
	snapshotSize       *prometheus.GaugeVec
	stageDuration      *prometheus.HistogramVec
	stageCandidates    *prometheus.HistogramVec
	decisionsTotal     *prometheus.CounterVec
	counterDegraded    *prometheus.CounterVec
	predictionFallback *prometheus.CounterVec
}

// New registers the engine collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		refreshTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_refresh_total",
				Help: "Catalog cache refresh attempts by result",
			},
			[]string{"result"},
		),
		refreshDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_refresh_duration_seconds",
				Help:    "Duration of catalog cache refreshes in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		snapshotSize: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_snapshot_size",
				Help: "Number of entries in the published catalog snapshot",
			},
			[]string{"kind"},
		),
		stageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "pipeline_stage_duration_seconds",
				Help: "Duration of decision pipeline stages in seconds",
				// stages run in microseconds except the counter store round trip
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"stage"},
		),
		stageCandidates: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_stage_candidates",
				Help:    "Number of candidates leaving each pipeline stage",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
			},
			[]string{"stage"},
		),
		decisionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_decisions_total",
				Help: "Decisions by outcome (fill, empty, error)",
			},
			[]string{"outcome"},
		),
		counterDegraded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counter_degraded_total",
				Help: "Admission checks skipped because the counter store could not be read",
			},
			[]string{"check"},
		),
		predictionFallback: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prediction_fallback_total",
				Help: "Predictions served by the heuristic fallback, by reason",
			},
			[]string{"reason"},
		),
	}
}

// RecordRefresh records one catalog refresh attempt.
func (m *Metrics) RecordRefresh(err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.refreshTotal.WithLabelValues(result).Inc()
	m.refreshDuration.Observe(d.Seconds())
}

// SetSnapshotSize publishes the sizes of the current snapshot.
func (m *Metrics) SetSnapshotSize(campaigns, creatives, rules int) {
	if m == nil {
		return
	}
	m.snapshotSize.WithLabelValues("campaigns").Set(float64(campaigns))
	m.snapshotSize.WithLabelValues("creatives").Set(float64(creatives))
	m.snapshotSize.WithLabelValues("rules").Set(float64(rules))
}

// ObserveStage records one pipeline stage execution.
func (m *Metrics) ObserveStage(stage string, out int, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	m.stageCandidates.WithLabelValues(stage).Observe(float64(out))
}

// RecordDecision counts a finished decision.
func (m *Metrics) RecordDecision(outcome string) {
	if m == nil {
		return
	}
	m.decisionsTotal.WithLabelValues(outcome).Inc()
}

// CounterDegraded counts n admission checks skipped for check ("budget" or
// "frequency").
func (m *Metrics) CounterDegraded(check string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.counterDegraded.WithLabelValues(check).Add(float64(n))
}

// PredictionFallback counts n candidates scored by the heuristic.
func (m *Metrics) PredictionFallback(reason string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.predictionFallback.WithLabelValues(reason).Add(float64(n))
}
