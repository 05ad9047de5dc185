package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gmseer"

var (
	BatchesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "core",
		Name:      "batches_processed_total",
		Help:      "Number of batches persisted",
	})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "core",
		Name:      "batch_duration_seconds",
		Help:      "Time from preload to persist for one batch",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	})

	LastProcessedBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "core",
		Name:      "last_processed_block",
		Help:      "Terminal block of the last persisted batch",
	})

	EntitiesFlushed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "entities_flushed_total",
		Help:      "Dirty entities handed to the store, by kind",
	}, []string{"kind"})

	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "enricher",
		Name:      "source_failures_total",
		Help:      "Bulk state reads that failed, by source",
	}, []string{"source"})

	AccountsEnriched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "enricher",
		Name:      "accounts_total",
		Help:      "Accounts seen by the enricher, by whether the account was committed",
	}, []string{"committed"})
)
