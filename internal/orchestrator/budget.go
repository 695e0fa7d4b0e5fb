// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"math"

	"github.com/orbitlane/recoengine/internal/config"
)

// allocateBudget splits totalLimit across the three sources per spec.md
// §4.6.2. The activity bucket absorbs the floor-division rounding residue
// so the three limits always sum to totalLimit exactly.
func allocateBudget(weights config.WeightsConfig, totalLimit int) (behavioral, trending, activity int) {
	w := weights.Behavioral + weights.Trending + weights.Activity
	if w <= 0 || totalLimit <= 0 {
		return 0, 0, totalLimit
	}

	behavioral = int(math.Floor(weights.Behavioral / w * float64(totalLimit)))
	trending = int(math.Floor(weights.Trending / w * float64(totalLimit)))
	activity = totalLimit - behavioral - trending
	return behavioral, trending, activity
}
