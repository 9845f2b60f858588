package variants

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// regenerations counts variation list rebuilds by product mode.
	regenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "variants_regenerations_total",
		Help: "Total number of variation list regenerations by mode",
	}, []string{"mode"}) // mode: create, edit

	// combinationCount tracks how many combinations each regeneration produced.
	combinationCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "variants_combinations_generated",
		Help:    "Number of combinations produced per regeneration",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 500},
	})

	// confirmations counts destructive-regeneration confirmation outcomes.
	confirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "variants_reset_confirmations_total",
		Help: "Total reset-variations confirmations by outcome",
	}, []string{"outcome"}) // outcome: requested, confirmed, cancelled
)
