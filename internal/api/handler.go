// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/middleware"
)

// handler holds the wired services and implements every route registered
// by NewRouter.
type handler struct {
	deps Deps
	perf *middleware.PerformanceMonitor
}

// getPerformanceStats handles GET /health/performance: per-endpoint
// latency percentiles collected by the performance-monitoring middleware.
func (h *handler) getPerformanceStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.perf.GetStats())
}

// uidParam extracts and parses the {uid} chi URL parameter.
func uidParam(r *http.Request) (int, error) {
	const op = "api.uidParam"
	uid, err := strconv.Atoi(chi.URLParam(r, "uid"))
	if err != nil || uid <= 0 {
		return 0, domain.NewError(domain.KindInvalidInput, op, errInvalidUID)
	}
	return uid, nil
}

// intQuery reads an integer query parameter, falling back to def when
// absent or malformed.
func intQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// floatQuery reads a float64 query parameter, falling back to def when
// absent or malformed.
func floatQuery(r *http.Request, name string, def float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}

// boolQuery reads a boolean query parameter, falling back to def when
// absent or malformed.
func boolQuery(r *http.Request, name string, def bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}
