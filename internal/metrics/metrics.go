// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides comprehensive instrumentation for:
// - Graph store query performance (DuckDB)
// - Vector store search latency and MMR usage
// - Broker publish/consume throughput and circuit breaker health
// - Projector apply/retry/dead-letter outcomes
// - Orchestrator recommendation latency by user mode
// - API endpoint latency and throughput
// - Cache efficiency

var (
	// Graph Store Metrics
	GraphQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphstore_query_duration_seconds",
			Help:    "Duration of graph store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "collaborative", "similar_users", "similar_products", "trending", ...
	)

	GraphQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphstore_query_errors_total",
			Help: "Total number of graph store query errors",
		},
		[]string{"operation"},
	)

	GraphInteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphstore_interactions_recorded_total",
			Help: "Total number of interactions recorded in the ledger",
		},
		[]string{"event_type"},
	)

	GraphIndexSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphstore_index_entries",
			Help: "Current number of entries in the in-memory adjacency index",
		},
	)

	// Vector Store Metrics
	VectorSearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vectorstore_search_duration_seconds",
			Help:    "Duration of vector store similarity searches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"}, // "plain", "mmr"
	)

	VectorUpsertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vectorstore_upserts_total",
			Help: "Total number of vector upserts",
		},
	)

	VectorStoreSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vectorstore_points",
			Help: "Current number of points held in the vector store",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Admission Metrics
	AdmissionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_events_total",
			Help: "Total number of events accepted by the admission service",
		},
		[]string{"event_type"},
	)

	AdmissionRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_rejected_total",
			Help: "Total number of events rejected by the admission service",
		},
		[]string{"reason"},
	)

	// Broker Metrics
	BrokerMessagesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broker_messages_published_total",
			Help: "Total number of messages published to the events exchange",
		},
	)

	BrokerPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broker_publish_errors_total",
			Help: "Total number of failed publish attempts",
		},
	)

	BrokerMessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broker_messages_consumed_total",
			Help: "Total number of messages consumed from a queue",
		},
		[]string{"queue"},
	)

	BrokerProcessingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "broker_processing_duration_seconds",
			Help:    "Duration of applying one consumed envelope",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"queue"},
	)

	// Projector Metrics
	ProjectorAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projector_applied_total",
			Help: "Total number of envelopes successfully applied by a projector worker",
		},
		[]string{"queue"},
	)

	ProjectorRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projector_retries_total",
			Help: "Total number of retry attempts issued by a projector worker",
		},
		[]string{"queue"},
	)

	ProjectorDeadLetteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projector_dead_lettered_total",
			Help: "Total number of envelopes that exhausted the retry schedule",
		},
		[]string{"queue"},
	)

	// Dead Letter Mirror Metrics
	DLQEntriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dlq_entries_total",
			Help: "Current number of entries mirrored into the local dead-letter store",
		},
	)

	DLQMessagesAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dlq_messages_added_total",
			Help: "Total number of messages mirrored into the dead-letter store",
		},
	)

	DLQMessagesPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dlq_messages_purged_total",
			Help: "Total number of messages removed from the dead-letter store via purge",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Orchestrator Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of building a recommendation response",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"}, // "browsing", "post_purchase", "cold_start"
	)

	RecommendationsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation items served",
		},
		[]string{"mode", "source"},
	)

	ModeClassifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_mode_classified_total",
			Help: "Total number of times a user was classified into a recommendation mode",
		},
		[]string{"mode"},
	)

	// Cache Metrics (General)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "recommendations", "graph_stats", ...
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordGraphQuery records a graph store query metric.
func RecordGraphQuery(operation string, duration time.Duration, err error) {
	GraphQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		GraphQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordGraphInteraction records one interaction written to the ledger.
func RecordGraphInteraction(eventType string) {
	GraphInteractionsTotal.WithLabelValues(eventType).Inc()
}

// RecordVectorSearch records a vector store search metric.
func RecordVectorSearch(mode string, duration time.Duration) {
	VectorSearchDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAdmission records an accepted or rejected admission attempt.
func RecordAdmission(eventType string, rejectReason string) {
	if rejectReason != "" {
		AdmissionRejectedTotal.WithLabelValues(rejectReason).Inc()
		return
	}
	AdmissionEventsTotal.WithLabelValues(eventType).Inc()
}

// RecordBrokerPublish records a publish attempt outcome.
func RecordBrokerPublish(err error) {
	if err != nil {
		BrokerPublishErrors.Inc()
		return
	}
	BrokerMessagesPublished.Inc()
}

// RecordBrokerConsume records one consumed delivery and its processing time.
func RecordBrokerConsume(queue string, duration time.Duration) {
	BrokerMessagesConsumed.WithLabelValues(queue).Inc()
	BrokerProcessingDuration.WithLabelValues(queue).Observe(duration.Seconds())
}

// RecordProjectorOutcome records the terminal outcome of one projector apply.
func RecordProjectorOutcome(queue string, retried, deadLettered bool) {
	if deadLettered {
		ProjectorDeadLetteredTotal.WithLabelValues(queue).Inc()
		return
	}
	if retried {
		ProjectorRetriesTotal.WithLabelValues(queue).Inc()
		return
	}
	ProjectorAppliedTotal.WithLabelValues(queue).Inc()
}

// RecordDLQEntry records a message being mirrored into the dead-letter store.
func RecordDLQEntry() {
	DLQMessagesAdded.Inc()
}

// RecordDLQPurge records a purge of the dead-letter store, removing n entries.
func RecordDLQPurge(n int) {
	DLQMessagesPurged.Add(float64(n))
}

// SetDLQSize sets the current dead-letter store entry count.
func SetDLQSize(n int) {
	DLQEntriesTotal.Set(float64(n))
}

// RecordRecommendation records one recommendation response being built.
func RecordRecommendation(mode string, duration time.Duration, sourceCounts map[string]int) {
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	for source, count := range sourceCounts {
		RecommendationsServedTotal.WithLabelValues(mode, source).Add(float64(count))
	}
}

// RecordModeClassification records a user mode classification outcome.
func RecordModeClassification(mode string) {
	ModeClassifiedTotal.WithLabelValues(mode).Inc()
}
