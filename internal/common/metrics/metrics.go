package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"endpoint"},
	)

	StoreQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_store_queries_total",
			Help: "Total number of record store calls by table and outcome",
		},
		[]string{"table", "outcome"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_emails_total",
			Help: "Total number of notification emails by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	InterestLogFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interest_log_failures_total",
			Help: "Total number of swallowed interest-expression log failures",
		},
	)
)
