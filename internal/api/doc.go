// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package api wires the admission, orchestrator, and control services onto
// a chi router (spec.md §6.3). It holds no business logic: handlers decode
// the request, call the service, and translate the result (or a
// domain.Kind-classified error) to JSON.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/orbitlane/recoengine/internal/middleware"
)

// Deps are the services the router dispatches to.
type Deps struct {
	Admission    AdmissionService
	Orchestrator OrchestratorService
	Control      ControlService
}

// adaptHandlerFunc bridges this repo's existing
// func(http.HandlerFunc) http.HandlerFunc middleware convention onto chi's
// native func(http.Handler) http.Handler convention, so both middleware
// families can compose on the same router without a rewrite of either.
func adaptHandlerFunc(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// NewRouter assembles the full HTTP surface: CORS, IP rate limiting, request
// ID propagation, Prometheus instrumentation and gzip compression ahead of
// the three route groups (events, orchestrator, rabbitmq).
func NewRouter(deps Deps, corsOrigins []string, rateLimitReqs int, rateLimitWindow time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if rateLimitReqs > 0 {
		r.Use(httprate.LimitByIP(rateLimitReqs, rateLimitWindow))
	}
	r.Use(adaptHandlerFunc(middleware.RequestID))
	r.Use(adaptHandlerFunc(middleware.PrometheusMetrics))
	r.Use(adaptHandlerFunc(middleware.Compression))

	perf := middleware.NewPerformanceMonitor(1000)
	r.Use(perf.Middleware)

	h := &handler{deps: deps, perf: perf}

	r.Post("/events", h.postEvent)
	r.Post("/events/batch", h.postEventBatch)

	r.Route("/orchestrator", func(r chi.Router) {
		r.Get("/recommendations/{uid}", h.getRecommendations)
		r.Post("/recommendations", h.postRecommendations)
		r.Post("/for-you", h.postForYou)
		r.Get("/user-mode/{uid}", h.getUserMode)
	})

	r.Route("/rabbitmq", func(r chi.Router) {
		r.Get("/health", h.getBrokerHealth)
		r.Get("/queues/{name}", h.getQueueInfo)
		r.Post("/queues/{name}/purge", h.postQueuePurge)
		r.Get("/dlq", h.getDLQPeek)
		r.Post("/dlq/purge", h.postDLQPurge)
	})

	r.Get("/health", h.getHealth)
	r.Get("/health/performance", h.getPerformanceStats)

	return r
}
