// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"net/http"

	"github.com/orbitlane/recoengine/internal/config"
	"github.com/orbitlane/recoengine/internal/orchestrator"
	"github.com/orbitlane/recoengine/internal/validation"
)

// OrchestratorService is the recommendation surface the router needs
// (spec.md §6.3, orchestrator routes).
type OrchestratorService interface {
	Recommend(ctx context.Context, req orchestrator.Request) (orchestrator.Response, error)
	ForYou(ctx context.Context, req orchestrator.Request, page, pageSize int) (orchestrator.Page, error)
	UserMode(ctx context.Context, uid, lookbackHours int) orchestrator.UserModeResult
}

// requestFromQuery builds an orchestrator.Request from URL query parameters,
// for the GET variant of the recommendations endpoint.
func requestFromQuery(r *http.Request, uid int) orchestrator.Request {
	return orchestrator.Request{
		UserID:         uid,
		Limit:          intQuery(r, "limit", 0),
		MMRDiversity:   floatQuery(r, "mmr_diversity", 0),
		IncludeReasons: boolQuery(r, "include_reasons", true),
		LookbackHours:  intQuery(r, "lookback_hours", 0),
	}
}

// getRecommendations handles GET /orchestrator/recommendations/{uid}.
func (h *handler) getRecommendations(w http.ResponseWriter, r *http.Request) {
	uid, err := uidParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.deps.Orchestrator.Recommend(r.Context(), requestFromQuery(r, uid))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// recommendationsRequestBody is the JSON body accepted by POST
// /orchestrator/recommendations (spec.md §6.3: "full request body").
type recommendationsRequestBody struct {
	UserID         int                  `json:"user_id" validate:"required,gt=0"`
	Limit          int                  `json:"limit,omitempty"`
	MMRDiversity   float64              `json:"mmr_diversity,omitempty"`
	IncludeReasons bool                 `json:"include_reasons,omitempty"`
	LookbackHours  int                  `json:"lookback_hours,omitempty"`
	Weights        config.WeightsConfig `json:"weights,omitempty"`
}

// postRecommendations handles POST /orchestrator/recommendations.
func (h *handler) postRecommendations(w http.ResponseWriter, r *http.Request) {
	var body recommendationsRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if verr := validation.ValidateStruct(&body); verr != nil {
		writeJSON(w, http.StatusBadRequest, verr.ToAPIError())
		return
	}

	req := orchestrator.Request{
		UserID:         body.UserID,
		Limit:          body.Limit,
		MMRDiversity:   body.MMRDiversity,
		IncludeReasons: body.IncludeReasons,
		LookbackHours:  body.LookbackHours,
		Weights:        body.Weights,
	}
	resp, err := h.deps.Orchestrator.Recommend(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// forYouRequestBody is the JSON body accepted by POST /orchestrator/for-you.
type forYouRequestBody struct {
	UserID       int     `json:"user_id" validate:"required,gt=0"`
	Page         int     `json:"page,omitempty"`
	PageSize     int     `json:"page_size,omitempty"`
	MMRDiversity float64 `json:"mmr_diversity,omitempty"`
}

// postForYou handles POST /orchestrator/for-you.
func (h *handler) postForYou(w http.ResponseWriter, r *http.Request) {
	var body forYouRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if verr := validation.ValidateStruct(&body); verr != nil {
		writeJSON(w, http.StatusBadRequest, verr.ToAPIError())
		return
	}

	req := orchestrator.Request{UserID: body.UserID, MMRDiversity: body.MMRDiversity, IncludeReasons: true}
	page, err := h.deps.Orchestrator.ForYou(r.Context(), req, body.Page, body.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// getUserMode handles GET /orchestrator/user-mode/{uid}.
func (h *handler) getUserMode(w http.ResponseWriter, r *http.Request) {
	uid, err := uidParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	lookback := intQuery(r, "lookback_hours", 0)
	result := h.deps.Orchestrator.UserMode(r.Context(), uid, lookback)
	writeJSON(w, http.StatusOK, result)
}
