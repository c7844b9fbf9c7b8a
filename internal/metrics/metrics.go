// Package metrics exposes Prometheus instrumentation for scan and refresh
// runs.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the screener's Prometheus collectors.
type Metrics struct {
	ScansTotal       prometheus.Counter
	RefreshesTotal   prometheus.Counter
	SymbolsEvaluated prometheus.Counter
	SymbolsSkipped   *prometheus.CounterVec // labels: reason
	StrongMatches    prometheus.Counter
	ScanDuration     prometheus.Histogram
}

// New registers and returns all collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swingscout_scans_total",
			Help: "Total scan runs started",
		}),
		RefreshesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swingscout_refreshes_total",
			Help: "Total tracked-watchlist refresh runs started",
		}),
		SymbolsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swingscout_symbols_evaluated_total",
			Help: "Symbols fully evaluated (indicators computed and scored)",
		}),
		SymbolsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swingscout_symbols_skipped_total",
			Help: "Symbols skipped during a run, by reason",
		}, []string{"reason"}),
		StrongMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swingscout_strong_matches_total",
			Help: "Evaluations that produced a strong match",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "swingscout_scan_duration_seconds",
			Help:    "Wall-clock duration of one scan run",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}

	reg.MustRegister(
		m.ScansTotal,
		m.RefreshesTotal,
		m.SymbolsEvaluated,
		m.SymbolsSkipped,
		m.StrongMatches,
		m.ScanDuration,
	)
	return m
}
