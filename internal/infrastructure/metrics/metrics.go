package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ListingVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingcheck_verdicts_total",
			Help: "Total number of match candidates classified, by status",
		},
		[]string{"status"},
	)

	AnalysesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingcheck_analyses_completed_total",
			Help: "Total number of listing analyses completed, by source",
		},
		[]string{"source"},
	)

	AnalysesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingcheck_analyses_failed_total",
			Help: "Total number of listing analyses that failed, by reason",
		},
		[]string{"reason"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listingcheck_provider_request_duration_seconds",
			Help:    "Duration of analysis provider requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)
