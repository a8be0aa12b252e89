package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dogwatch",
		Subsystem: "indexer",
		Name:      "requests_total",
		Help:      "Count of indexer API requests.",
	}, []string{"client", "endpoint", "status"})

	indexerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dogwatch",
		Subsystem: "indexer",
		Name:      "request_duration_seconds",
		Help:      "Duration of indexer API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"client", "endpoint", "status"})

	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dogwatch",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of document store operations.",
	}, []string{"operation", "status"})

	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dogwatch",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of document store operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})

	archiveOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dogwatch",
		Subsystem: "archive",
		Name:      "operations_total",
		Help:      "Count of ClickHouse archive operations.",
	}, []string{"operation", "status"})

	archiveOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dogwatch",
		Subsystem: "archive",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ClickHouse archive operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// IndexerClient observes requests of one indexer client.
type IndexerClient struct {
	client string
}

func NewIndexerClient(client string) IndexerClient {
	if client == "" {
		client = "unknown"
	}
	return IndexerClient{client: client}
}

func (m IndexerClient) Observe(endpoint string, err error, started time.Time) {
	status := statusLabel(err)
	indexerRequestsTotal.WithLabelValues(m.client, endpoint, status).Inc()
	indexerRequestDuration.WithLabelValues(m.client, endpoint, status).Observe(time.Since(started).Seconds())
}

// Store observes document store operations.
type Store struct{}

func NewStore() Store {
	return Store{}
}

func (Store) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)
	storeOperationsTotal.WithLabelValues(operation, status).Inc()
	storeOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// Archive observes ClickHouse archive operations.
type Archive struct{}

func NewArchive() Archive {
	return Archive{}
}

func (Archive) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)
	archiveOperationsTotal.WithLabelValues(operation, status).Inc()
	archiveOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
