package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Requests currently being served",
		},
		[]string{"service"},
	)

	ProfileFetchAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_fetch_attempts_total",
			Help: "Profile source attempts by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	ProfileFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_fetch_duration_seconds",
			Help:    "Duration of a single profile source attempt in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"source"},
	)

	ProfileCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_cache_lookups_total",
			Help: "Profile cache lookups by result (hit, miss, expired, error)",
		},
		[]string{"result"},
	)

	ProfilesFabricated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profiles_fabricated_total",
			Help: "Profiles returned as mock data after every source failed",
		},
	)

	RoastsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roasts_created_total",
			Help: "Roasts persisted",
		},
	)

	OutboxPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_events_published_total",
			Help: "Outbox events handed to Kafka by event type and status",
		},
		[]string{"event_type", "status"},
	)

	RoastEventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roast_events_consumed_total",
			Help: "Roast events read back from Kafka by status",
		},
		[]string{"status"},
	)
)
