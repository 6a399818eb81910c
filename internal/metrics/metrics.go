// Package metrics exposes the ingestion pipeline's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsIngested counts records that were persisted as new event nodes.
	RecordsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eventatlas",
		Name:      "records_ingested_total",
		Help:      "Records persisted as new event nodes.",
	})

	// RecordsRejected counts validator drops, labeled by reason.
	RecordsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventatlas",
		Name:      "records_rejected_total",
		Help:      "Records dropped by the validator.",
	}, []string{"reason"})

	// RecordsDuplicate counts dedup hits, labeled by scope (session or store).
	RecordsDuplicate = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventatlas",
		Name:      "records_duplicate_total",
		Help:      "Records discarded as duplicates.",
	}, []string{"scope"})

	// StoreFailures counts upserts and lookups that failed after retries.
	StoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eventatlas",
		Name:      "store_failures_total",
		Help:      "Graph store operations that failed after retries.",
	})
)
