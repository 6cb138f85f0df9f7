package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spreadscan_evaluations_total",
		Help: "Entry evaluations by final action",
	}, []string{"action"})

	confidenceTotals = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spreadscan_confidence_total",
		Help:    "Distribution of composite confidence totals",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	scanSymbolsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spreadscan_scan_symbols_total",
		Help: "Symbols screened per outcome",
	}, []string{"outcome"})
)

// RecordEvaluation tracks one completed entry decision.
func RecordEvaluation(action string, confidenceTotal float64) {
	evaluationsTotal.WithLabelValues(action).Inc()
	confidenceTotals.Observe(confidenceTotal)
}

// RecordScanOutcome tracks one screened symbol ("evaluated", "no_data",
// "error").
func RecordScanOutcome(outcome string) {
	scanSymbolsTotal.WithLabelValues(outcome).Inc()
}
