// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"

	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/logging"
	"github.com/orbitlane/recoengine/internal/metrics"
)

// ModeResult is the outcome of classifying a user into a recommendation
// mode (spec.md §4.6.1). Context shape varies by mode: a domain.
// PurchaseStatus for POST_PURCHASE, a browsingContext for BROWSING, or nil
// for COLD_START.
type ModeResult struct {
	Mode    domain.Mode
	Context any
}

// browsingContext is the mode context attached for BROWSING.
type browsingContext struct {
	RecentInteractions int `json:"recent_interactions"`
}

// classifyMode implements spec.md §4.6.1. Any adapter error degrades the
// classification to COLD_START rather than failing the whole call.
func classifyMode(ctx context.Context, graph GraphSource, uid, lookbackHours int) ModeResult {
	status, err := graph.HasRecentPurchase(ctx, uid, lookbackHours)
	if err != nil {
		logging.Warn().Int("user_id", uid).Err(err).Msg("orchestrator: has_recent_purchase failed, degrading to cold start")
		metrics.RecordModeClassification(string(domain.ModeColdStart))
		return ModeResult{Mode: domain.ModeColdStart}
	}
	if status.HasPurchase {
		metrics.RecordModeClassification(string(domain.ModePostPurchase))
		return ModeResult{Mode: domain.ModePostPurchase, Context: status}
	}

	history, err := graph.UserHistory(ctx, uid, 5, nil)
	if err != nil {
		logging.Warn().Int("user_id", uid).Err(err).Msg("orchestrator: user_history failed, degrading to cold start")
		metrics.RecordModeClassification(string(domain.ModeColdStart))
		return ModeResult{Mode: domain.ModeColdStart}
	}
	if len(history) > 0 {
		metrics.RecordModeClassification(string(domain.ModeBrowsing))
		return ModeResult{Mode: domain.ModeBrowsing, Context: browsingContext{RecentInteractions: len(history)}}
	}

	metrics.RecordModeClassification(string(domain.ModeColdStart))
	return ModeResult{Mode: domain.ModeColdStart}
}

// strategyFor returns the human-readable strategy string per mode.
func strategyFor(mode domain.Mode) string {
	switch mode {
	case domain.ModePostPurchase:
		return "Recommendations based on your recent purchase and complementary products"
	case domain.ModeBrowsing:
		return "Recommendations based on your browsing behavior and semantic similarity"
	default:
		return "Recommendations based on trending products"
	}
}
