package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request counters exposed on /metrics.
var (
	parseRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sensei_parse_requests_total",
		Help: "Schedule parse requests by outcome.",
	}, []string{"outcome"})

	consultRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sensei_consult_requests_total",
		Help: "AI consult requests by outcome.",
	}, []string{"outcome"})
)
