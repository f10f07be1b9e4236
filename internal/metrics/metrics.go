// Package metrics exposes Prometheus collectors for the recommendation service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AnalysisRequestsTotal counts analyses by cache result and outcome.
	AnalysisRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riftcounter_analysis_requests_total",
			Help: "Total number of matchup analyses",
		},
		[]string{"cache", "outcome"},
	)

	// AnalysisDuration tracks end-to-end analysis latency.
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riftcounter_analysis_duration_seconds",
			Help:    "Duration of matchup analyses in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"cache"},
	)

	CounterPicksReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "riftcounter_counter_picks_returned",
			Help:    "Number of counter picks returned per ranking",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riftcounter_cache_operations_total",
			Help: "Analysis cache operations by type and result",
		},
		[]string{"operation", "result"},
	)

	SourceRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riftcounter_source_refresh_total",
			Help: "Data source refresh attempts by source and status",
		},
		[]string{"source", "status"},
	)

	PatchesDetectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "riftcounter_patches_detected_total",
			Help: "Number of new game patches detected by the patch watcher",
		},
	)

	// DataUncertainty is 0 (low), 1 (medium) or 2 (high).
	DataUncertainty = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "riftcounter_data_uncertainty",
			Help: "Current data uncertainty level (0=low, 1=medium, 2=high)",
		},
	)
)

func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// RecordAnalysis records one analysis outcome and its latency.
func RecordAnalysis(cacheHit bool, outcome string, duration time.Duration) {
	label := cacheLabel(cacheHit)
	AnalysisRequestsTotal.WithLabelValues(label, outcome).Inc()
	AnalysisDuration.WithLabelValues(label).Observe(duration.Seconds())
}

func RecordCounterPicks(n int) {
	CounterPicksReturned.Observe(float64(n))
}

// RecordCacheOperation labels op ("get", "set", "invalidate") with its result.
func RecordCacheOperation(op, result string) {
	CacheOperationsTotal.WithLabelValues(op, result).Inc()
}

func RecordSourceRefresh(source, status string) {
	SourceRefreshTotal.WithLabelValues(source, status).Inc()
}

func RecordPatchDetected() {
	PatchesDetectedTotal.Inc()
}

// SetUncertainty maps "low", "medium" and "high" onto the gauge.
func SetUncertainty(level string) {
	switch level {
	case "medium":
		DataUncertainty.Set(1)
	case "high":
		DataUncertainty.Set(2)
	default:
		DataUncertainty.Set(0)
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
