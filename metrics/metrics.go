// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecordsIngested counts response records merged into the cache, by
	// ingestion path (list, detail, submit).
	RecordsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surveyrelay_records_ingested_total",
		Help: "Response records merged into the canonical cache.",
	}, []string{"source"})

	// FetchFailures counts backend calls that failed after all endpoint
	// fallbacks, by operation.
	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surveyrelay_fetch_failures_total",
		Help: "Backend fetches that failed after endpoint fallbacks.",
	}, []string{"op"})

	// Submissions counts accepted submissions relayed to the backend.
	Submissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surveyrelay_submissions_total",
		Help: "Responses submitted through the relay.",
	})

	// CachedRecords tracks the total records held in the cache.
	CachedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "surveyrelay_cached_records",
		Help: "Response records currently cached, all surveys.",
	})
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
