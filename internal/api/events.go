// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"net/http"

	"github.com/orbitlane/recoengine/internal/admission"
	"github.com/orbitlane/recoengine/internal/validation"
)

// AdmissionService is the admission surface the router needs (spec.md §6.3
// POST /events, POST /events/batch).
type AdmissionService interface {
	Admit(ctx context.Context, ev admission.EventCreate, callerID *int) (admission.Result, error)
	AdmitBatch(ctx context.Context, evs []admission.EventCreate, callerID *int) (admission.Result, int, error)
}

type eventResponse struct {
	Message string `json:"message"`
}

type eventBatchResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// postEvent handles POST /events.
func (h *handler) postEvent(w http.ResponseWriter, r *http.Request) {
	var ev admission.EventCreate
	if err := decodeJSON(r, &ev); err != nil {
		writeError(w, err)
		return
	}
	if verr := validation.ValidateStruct(&ev); verr != nil {
		writeJSON(w, http.StatusBadRequest, verr.ToAPIError())
		return
	}

	result, err := h.deps.Admission.Admit(r.Context(), ev, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, eventResponse{Message: result.Status})
}

// postEventBatch handles POST /events/batch.
func (h *handler) postEventBatch(w http.ResponseWriter, r *http.Request) {
	var evs []admission.EventCreate
	if err := decodeJSON(r, &evs); err != nil {
		writeError(w, err)
		return
	}
	for i := range evs {
		if verr := validation.ValidateStruct(&evs[i]); verr != nil {
			writeJSON(w, http.StatusBadRequest, verr.ToAPIError())
			return
		}
	}

	result, n, err := h.deps.Admission.AdmitBatch(r.Context(), evs, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, eventBatchResponse{Message: result.Status, Count: n})
}
