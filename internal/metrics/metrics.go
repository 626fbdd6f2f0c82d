// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHitsTotal counts reads served from the cache, per key namespace.
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Number of cache reads that found a live entry.",
	}, []string{"namespace"})

	// CacheMissesTotal counts reads that fell through to the store.
	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Number of cache reads that missed and hit the store.",
	}, []string{"namespace"})

	// CacheErrorsTotal counts cache transport failures. These are treated
	// as misses by the read path, so they also show up in CacheMissesTotal.
	CacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_errors_total",
		Help: "Number of cache operations that failed at the transport level.",
	}, []string{"namespace", "operation"})

	// EnrichmentFailuresTotal counts degraded sibling-service lookups.
	EnrichmentFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enrichment_failures_total",
		Help: "Number of sibling-service enrichment calls that were degraded.",
	}, []string{"target"})
)
