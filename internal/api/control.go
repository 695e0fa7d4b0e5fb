// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orbitlane/recoengine/internal/broker"
	"github.com/orbitlane/recoengine/internal/control"
	"github.com/orbitlane/recoengine/internal/domain"
)

// ControlService is the C7 control surface the router needs (spec.md §6.3
// rabbitmq routes, plus the DLQ peek/purge extension from SPEC_FULL.md §4).
type ControlService interface {
	Health(ctx context.Context) control.Health
	QueueInfo(name string) (broker.QueueInfo, error)
	Purge(name string) (control.PurgeResult, error)
	DLQPeek(ctx context.Context, limit int) (control.DLQPeekResult, error)
	DLQPurge(ctx context.Context) (control.PurgeResult, error)
}

// getHealth handles GET /health: the overall process health aggregating
// broker, graph, and vector reachability.
func (h *handler) getHealth(w http.ResponseWriter, r *http.Request) {
	health := h.deps.Control.Health(r.Context())
	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

// getBrokerHealth handles GET /rabbitmq/health.
func (h *handler) getBrokerHealth(w http.ResponseWriter, r *http.Request) {
	health := h.deps.Control.Health(r.Context())
	status := http.StatusOK
	if health.Broker.Status != "up" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health.Broker)
}

func queueNameParam(r *http.Request) (string, error) {
	const op = "api.queueNameParam"
	name := chi.URLParam(r, "name")
	if name == "" {
		return "", domain.NewError(domain.KindInvalidInput, op, errInvalidQueue)
	}
	return name, nil
}

// getQueueInfo handles GET /rabbitmq/queues/{name}.
func (h *handler) getQueueInfo(w http.ResponseWriter, r *http.Request) {
	name, err := queueNameParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	info, err := h.deps.Control.QueueInfo(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// postQueuePurge handles POST /rabbitmq/queues/{name}/purge.
func (h *handler) postQueuePurge(w http.ResponseWriter, r *http.Request) {
	name, err := queueNameParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := h.deps.Control.Purge(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// getDLQPeek handles GET /rabbitmq/dlq: operator visibility into the local
// dead-letter mirror without consuming the live queue (SPEC_FULL.md §4).
func (h *handler) getDLQPeek(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 50)
	result, err := h.deps.Control.DLQPeek(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// postDLQPurge handles POST /rabbitmq/dlq/purge.
func (h *handler) postDLQPurge(w http.ResponseWriter, r *http.Request) {
	result, err := h.deps.Control.DLQPurge(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

var _ ControlService = (*control.Service)(nil)
