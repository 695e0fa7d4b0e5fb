// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package cache provides a thread-safe in-memory LFU cache with TTL
expiration.

# Overview

The orchestrator (internal/orchestrator) caches whole Recommend responses,
keyed on the normalized request (user, limit, MMR diversity, reasons flag,
lookback and weights); the Graph Store and Vector Store calls behind a miss
are not cached one by one. Recommendation responses are expensive to recompute (multiple graph
queries plus a kNN + MMR pass) but cheap to reuse across the request
burst a single user session typically produces.

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex-guarded frequency buckets)
  - Time-to-live (TTL) expiration for automatic cleanup
  - Frequency-based eviction (NewLFU), suited to the orchestrator's
    skewed access pattern: a small set of trending products and active
    users dominate request volume, so evicting the least-frequently-used
    entry holds more of the useful working set than recency-based
    eviction would
  - Simple key-value storage with any value type (interface{})
  - Lazy expiration checking (on Get operations)

# Usage Example

	import "github.com/orbitlane/recoengine/internal/cache"

	// LFU cache for recommendation responses, 10k entries, 30s TTL
	c := cache.NewLFU(10000, 30*time.Second)

	key := cache.GenerateKey("recommend", req)
	if cached, ok := c.Get(key); ok {
	    return cached.(Response), nil
	}

	resp, err := computeRecommendations(ctx, req)
	if err != nil {
	    return Response{}, err
	}
	c.Set(key, resp)
	return resp, nil

GenerateKey derives a stable cache key from a method name and an
arbitrary request value (the value is JSON-encoded and hashed), so
callers never hand-assemble key strings.

# Thread Safety

All cache methods are thread-safe: a sync.RWMutex guards the frequency
buckets. Multiple goroutines can safely access the cache concurrently.

# Limitations

  - No background cleanup goroutine: expiration is checked lazily on Get
  - No cache persistence: a process restart clears the cache, which is
    acceptable since recommendation responses are always recomputable
  - No distributed caching: each server instance has its own cache, which
    is acceptable at this scale since responses are keyed per-user and a
    cache miss just re-runs the compute path

# See Also

  - internal/orchestrator: primary consumer, caches Recommend responses
    keyed on request parameters (ForYou pages come from a Recommend call)
  - internal/middleware: PerformanceMonitor, whose latency stats are
    served on GET /health/performance (cache hit rate is not included)
*/
package cache
