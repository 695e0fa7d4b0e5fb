// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/logging"
)

// errorBody is the wire shape of every non-2xx response.
type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps a domain.Kind to the HTTP status spec.md §7 implies: 4xx
// for caller mistakes, 503 for an unreachable dependency, 502 for a failed
// or exhausted dependency, 500 otherwise.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindBackendUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindBackendFailure, domain.KindExhausted:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("api: failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(domain.KindOf(err))
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// decodeJSON decodes the request body into v, reporting a KindInvalidInput
// error on malformed JSON.
func decodeJSON(r *http.Request, v any) error {
	const op = "api.decodeJSON"
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewError(domain.KindInvalidInput, op, err)
	}
	return nil
}
