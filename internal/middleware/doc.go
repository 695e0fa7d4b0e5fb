// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for compression, performance
monitoring, request ID tracking, and Prometheus metrics integration. These
components compose with chi's CORS and rate-limiting middleware (wired in
internal/api) to create a complete middleware stack for HTTP request
processing.

Key Components:

  - Compression: Gzip compression for every response, whatever its size
  - Performance Monitor: Request latency tracking with percentile calculations
  - Request ID: UUID-based request tracking for distributed tracing
  - Prometheus Metrics: HTTP request/response instrumentation

Middleware Stack:

internal/api.NewRouter composes these with chi's Recoverer, go-chi/cors and
go-chi/httprate ahead of the route table, outermost first:

	chimiddleware.Recoverer        // Layer 1: Panic recovery
	cors.Handler(...)              // Layer 2: CORS headers
	httprate.LimitByIP(...)        // Layer 3: Rate limiting (only when rateLimitReqs > 0)
	middleware.RequestID           // Layer 4: Request tracking
	middleware.PrometheusMetrics   // Layer 5: Metrics
	middleware.Compression         // Layer 6: Gzip
	perf.Middleware                // Layer 7: Latency sampling
	handler                        // Business logic

Usage Example - Compression:

	import "github.com/orbitlane/recoengine/internal/middleware"

	// Wrap handler with gzip compression
	http.HandleFunc("/api/v1/data",
	    middleware.Compression(handler),
	)

	// Every response is compressed, whatever its size
	// Accept-Encoding: gzip header is required

Usage Example - Performance Monitoring:

	// Create performance monitor with a 1000-sample rolling window
	perfMon := middleware.NewPerformanceMonitor(1000)

	// Wrap handler (Middleware takes and returns an http.Handler)
	http.Handle("/api/v1/stats",
	    perfMon.Middleware(handler),
	)

	// Get per-endpoint statistics (durations in milliseconds)
	for _, s := range perfMon.GetStats() {
	    fmt.Printf("%s p50: %dms, p95: %dms, p99: %dms\n",
	        s.Path, s.P50Duration, s.P95Duration, s.P99Duration)
	}

Usage Example - Request ID:

	// Request ID middleware
	http.HandleFunc("/api/v1/logs",
	    middleware.RequestID(handler),
	)

	// Access request ID in handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := r.Context().Value(middleware.RequestIDKey).(string)
	    log.Printf("[%s] Processing request", requestID)
	}

Performance Characteristics:

  - Compression: 70-90% size reduction for JSON (text/json mime types)
  - Compression overhead: ~1-2ms for typical responses
  - Metrics overhead: <0.1ms per request
  - Request ID overhead: <0.01ms (UUID generation)
  - Performance monitor: mutex-guarded sliding window of latency samples

Compression Details:

The compression middleware:
  - Compresses every response, with no size threshold and no mime-type filter
  - Supports gzip encoding (Accept-Encoding: gzip)
  - Skips WebSocket upgrade requests
  - Automatically sets Content-Encoding header

Performance Monitor:

The performance monitor tracks:
  - Request count per endpoint
  - Latency percentiles (p50, p95, p99)
  - Rolling window of the maxMetrics most recent requests (1000 in internal/api)
  - Thread-safe concurrent access with RWMutex

Thread Safety:

All middleware components are thread-safe:
  - Compression uses per-request gzip writers
  - Performance monitor uses sync.RWMutex
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations

See Also:

  - internal/api: router that composes this stack (NewRouter)
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
