package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchd_match_requests_total",
		Help: "Completed questionnaire scoring requests by vertical.",
	}, []string{"vertical"})

	matchFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchd_match_fallback_total",
		Help: "Requests answered via the whole-catalog fallback.",
	})

	matchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matchd_match_duration_seconds",
		Help:    "End-to-end scoring latency per request.",
		Buckets: prometheus.DefBuckets,
	})
)
