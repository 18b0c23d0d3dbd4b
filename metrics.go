package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// matchCacheLookups counts cache lookups, labeled "hit" or "miss".
	matchCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sportconnect_match_cache_lookups_total",
		Help: "Match cache lookups by outcome",
	}, []string{"outcome"}) // outcome = "hit", "miss"

	// matchCacheInvalidations counts explicit cache invalidations.
	matchCacheInvalidations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sportconnect_match_cache_invalidations_total",
		Help: "Explicit match cache invalidations",
	})

	// matchComputeDuration records full candidate-scan durations in seconds.
	matchComputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sportconnect_match_compute_duration_seconds",
		Help:    "Duration of match list recomputation",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})
)

func init() {
	prometheus.MustRegister(
		matchCacheLookups,
		matchCacheInvalidations,
		matchComputeDuration,
	)
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
