// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements comprehensive application instrumentation using the Prometheus
client library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Graph store and vector store query performance
  - Broker publish/consume throughput and projector outcomes
  - Circuit breaker state transitions
  - Cache hit/miss rates
  - Recommendation latency and mode classification

# Metrics Endpoint

The collectors register with the default Prometheus registry. The router in
internal/api mounts no /metrics route; once promhttp.Handler() is mounted (see
the usage example below), they are served in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Graph Store Metrics:
  - graphstore_query_duration_seconds: Query execution time (histogram)
    Labels: operation (collaborative, trending, similar_products, ...)
  - graphstore_query_errors_total: Failed queries (counter)
  - graphstore_interactions_recorded_total: Ledger writes (counter)
    Labels: event_type

Vector Store Metrics:
  - vectorstore_search_duration_seconds: Similarity search latency (histogram)
    Labels: mode (plain, mmr)
  - vectorstore_upserts_total: Upserts (counter)

Broker and Projector Metrics:
  - broker_messages_published_total / broker_publish_errors_total (counters)
  - broker_messages_consumed_total: Labels: queue
  - projector_applied_total / projector_retries_total / projector_dead_lettered_total
    Labels: queue

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels: name, result
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

Cache Metrics:
  - cache_hits_total / cache_misses_total / cache_evictions_total (counters)
    Labels: cache_type
  - cache_entries: Current cache size (gauge)
    Labels: cache_type

Recommendation Metrics:
  - recommendation_duration_seconds: Labels: mode
  - recommendations_served_total: Labels: mode, source
  - user_mode_classified_total: Labels: mode

# Usage Example

Basic setup in main.go:

	import (
	    "github.com/orbitlane/recoengine/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	func main() {
	    // Register metrics endpoint
	    http.Handle("/metrics", promhttp.Handler())

	    // Record metrics
	    metrics.RecordAPIRequest("GET", "/orchestrator/recommendations", "200", 23*time.Millisecond)
	    metrics.RecordGraphQuery("trending", 5*time.Millisecond, nil)
	    metrics.RecordRecommendation("browsing", 31*time.Millisecond, map[string]int{"trending": 6})
	}

Recording HTTP metrics with middleware (see internal/middleware.PrometheusMetrics):

	func MetricsMiddleware(next http.Handler) http.Handler {
	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	        start := time.Now()

	        // Wrap ResponseWriter to capture status code
	        rw := &responseWriter{ResponseWriter: w, statusCode: 200}

	        next.ServeHTTP(rw, r)

	        // Record metrics
	        duration := time.Since(start)
	        metrics.RecordAPIRequest(r.Method, r.URL.Path, strconv.Itoa(rw.statusCode), duration)
	    })
	}

Recording graph store query metrics:

	func (s *Store) Collaborative(ctx context.Context, userID int64, limit int) ([]domain.ScoredProduct, error) {
	    start := time.Now()
	    out, err := s.collaborative(ctx, userID, limit)
	    metrics.RecordGraphQuery("collaborative", time.Since(start), err)
	    return out, err
	}

# Prometheus Configuration

Example prometheus.yml configuration:

	scrape_configs:
	  - job_name: 'recoengine'
	    static_configs:
	      - targets: ['localhost:8080']
	    metrics_path: '/metrics'
	    scrape_interval: 15s

# Grafana Dashboards

The metrics support Grafana dashboards with panels for:

  - Request rate (queries per second)
  - Request latency (p50, p95, p99 percentiles)
  - Error rate (errors per second by endpoint)
  - Graph store query performance (duration distribution)
  - Projector throughput (applied, retried and dead-lettered events)
  - Circuit breaker state visualization
  - Cache hit rate and efficiency

Example PromQL queries:

	# HTTP request rate
	rate(api_requests_total[5m])

	# HTTP p95 latency
	histogram_quantile(0.95, rate(api_request_duration_seconds_bucket[5m]))

	# Graph store query rate
	rate(graphstore_query_duration_seconds_count[5m])

	# Cache hit rate
	sum(rate(cache_hits_total[5m])) / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))

	# Projected events per minute
	rate(projector_applied_total[1m]) * 60

# Performance Impact

Metrics collection overhead:
  - Counter increment: ~100ns per operation
  - Histogram observation: ~500ns per operation
  - Memory overhead: ~5KB per metric time series
  - Total overhead: <1% CPU, <10MB RAM for typical workloads

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:

  - Endpoint labels are normalized (no query parameters)
  - Status codes are recorded as exact codes (200, 404, 503, ...), not grouped
  - Error types are limited to predefined constants
  - User-specific labels are avoided

Maximum cardinality per metric:
  - api_requests_total: ~500 series (10 methods × 50 endpoints × ~5 distinct status codes)
  - graphstore_query_duration_seconds: ~10 series (one per operation)
  - circuit_breaker_state: ~10 series (5 breakers × 3 states)

# Alerting Rules

Example Prometheus alerting rules:

	groups:
	  - name: recoengine
	    rules:
	      - alert: HighErrorRate
	        expr: |
	          sum(rate(api_requests_total{status_code=~"5.."}[5m]))
	          /
	          sum(rate(api_requests_total[5m]))
	          > 0.05
	        for: 5m
	        annotations:
	          summary: "High error rate: {{ $value }}%"

	      - alert: SlowGraphQueries
	        expr: |
	          histogram_quantile(0.95,
	            rate(graphstore_query_duration_seconds_bucket[5m]))
	          > 1
	        for: 5m
	        annotations:
	          summary: "p95 graph query latency: {{ $value }}s"

	      - alert: CircuitBreakerOpen
	        expr: circuit_breaker_state > 0
	        for: 2m
	        annotations:
	          summary: "Circuit breaker open for {{ $labels.name }}"

# Debugging

With /metrics mounted (see Metrics Endpoint), inspect the registered metrics:

	# View all registered metrics
	curl http://localhost:8080/metrics | grep "# HELP"

	# Check specific metric
	curl http://localhost:8080/metrics | grep api_requests_total

	# Validate Prometheus format
	promtool check metrics http://localhost:8080/metrics

# Best Practices

When adding new metrics:

 1. Use appropriate metric types:
    - Counter: Monotonically increasing values (requests, errors)
    - Gauge: Point-in-time values (connections, queue size)
    - Histogram: Distribution of values (latency, size)

 2. Choose descriptive names:
    - Use underscore separation: http_request_duration_seconds
    - Include units: _seconds, _bytes, _total
    - Follow Prometheus naming conventions

 3. Add helpful documentation:
    - Include HELP text describing the metric
    - Document all label dimensions
    - Specify units in metric name

 4. Minimize cardinality:
    - Avoid high-cardinality labels (user IDs, timestamps)
    - Normalize endpoint paths
    - Use fixed error type constants

 5. Test performance impact:
    - Benchmark metric recording overhead
    - Monitor memory usage with many time series
    - Validate scrape duration <1s

# See Also

  - internal/middleware: HTTP middleware with metrics integration
  - internal/graphstore: Ledger write counters (graph query durations are recorded by internal/orchestrator)
  - internal/orchestrator: Recommendation latency metrics
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
  - https://prometheus.io/docs/practices/instrumentation/: Instrumentation guide
*/
package metrics
