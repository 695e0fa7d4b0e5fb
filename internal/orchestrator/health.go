// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"

	"github.com/orbitlane/recoengine/internal/domain"
)

// UserModeResult is the response shape for the user-mode probe endpoint
// (spec.md §6.3, GET /orchestrator/user-mode/{uid}).
type UserModeResult struct {
	Mode     domain.Mode `json:"mode"`
	Context  any         `json:"context"`
	Strategy string      `json:"strategy"`
}

// UserMode classifies uid without running the rest of Recommend, for the
// standalone mode-probe endpoint.
func (o *Orchestrator) UserMode(ctx context.Context, uid, lookbackHours int) UserModeResult {
	if lookbackHours <= 0 {
		lookbackHours = o.cfg.PostPurchaseLookbackHrs
	}
	classified := classifyMode(ctx, o.graph, uid, lookbackHours)
	return UserModeResult{
		Mode:     classified.Mode,
		Context:  classified.Context,
		Strategy: strategyFor(classified.Mode),
	}
}

// Health reports whether both the graph store and vector store are
// reachable, per spec.md §4.7's per-subsystem probes.
type Health struct {
	Graph  bool              `json:"graph_reachable"`
	Vector bool              `json:"vector_reachable"`
	Stats  domain.GraphStats `json:"graph_stats"`
	Points int               `json:"vector_points"`
}

func (o *Orchestrator) Health(ctx context.Context) Health {
	var h Health
	stats, err := o.graph.Stats(ctx)
	h.Graph = err == nil
	h.Stats = stats
	h.Points = o.vector.Count()
	h.Vector = true
	return h
}
