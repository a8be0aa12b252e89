// Package metrics exposes prometheus instrumentation for the ingestion
// pipeline and its external dependencies.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updateCycleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dogwatch",
		Subsystem: "update",
		Name:      "cycle_total",
		Help:      "Count of update cycles.",
	}, []string{"status"})

	updateCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dogwatch",
		Subsystem: "update",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of one update cycle.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"status"})

	updateCycleTransactions = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dogwatch",
		Subsystem: "update",
		Name:      "cycle_transactions",
		Help:      "Number of transactions persisted per cycle.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	})

	updateFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dogwatch",
		Subsystem: "update",
		Name:      "fetch_total",
		Help:      "Count of fetch attempts per indexer source.",
	}, []string{"source", "status"})

	updateFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dogwatch",
		Subsystem: "update",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of fetching fresh transactions per source.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "status"})

	updateFetchTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dogwatch",
		Subsystem: "update",
		Name:      "fetch_transactions",
		Help:      "Number of fresh transactions fetched per source.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"source"})
)

// Update observes update service cycles.
type Update struct{}

func NewUpdate() Update {
	return Update{}
}

func (Update) ObserveFetch(source string, err error, transactions int, started time.Time) {
	status := statusLabel(err)
	updateFetchTotal.WithLabelValues(source, status).Inc()
	updateFetchDuration.WithLabelValues(source, status).Observe(time.Since(started).Seconds())
	if err == nil {
		updateFetchTransactions.WithLabelValues(source).Observe(float64(transactions))
	}
}

func (Update) ObserveCycle(err error, transactions int, started time.Time) {
	status := statusLabel(err)
	updateCycleTotal.WithLabelValues(status).Inc()
	updateCycleDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		updateCycleTransactions.Observe(float64(transactions))
	}
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
