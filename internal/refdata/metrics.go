package refdata

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// reloads counts snapshot loads by outcome.
	reloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refdata_reloads_total",
		Help: "Total reference data snapshot reloads by outcome",
	}, []string{"outcome"}) // outcome: ok, stale, error

	// snapshotAge observes how old the snapshot was when replaced.
	snapshotAge = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "refdata_snapshot_age_seconds",
		Help:    "Age of the reference snapshot at replacement time",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
)
