// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"sort"

	"github.com/orbitlane/recoengine/internal/domain"
)

// dedupe walks items in insertion order, keeping the first occurrence of
// each product id. A later occurrence with a strictly greater score
// replaces the kept entry in place, preserving its original index
// (spec.md §4.6.4 step 1).
func dedupe(items []domain.RecommendationItem) []domain.RecommendationItem {
	index := make(map[int]int, len(items))
	out := make([]domain.RecommendationItem, 0, len(items))

	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			if item.Score > out[i].Score {
				out[i] = item
			}
			continue
		}
		index[item.ProductID] = len(out)
		out = append(out, item)
	}
	return out
}

// sortByScoreDesc sorts items by score descending, stable so ties keep
// their dedupe-order position.
func sortByScoreDesc(items []domain.RecommendationItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
}

// excludeIDs removes items whose ProductID is present in excluded.
func excludeIDs(items []domain.ScoredProduct, excluded map[int]struct{}) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, 0, len(items))
	for _, it := range items {
		if _, skip := excluded[it.ProductID]; skip {
			continue
		}
		out = append(out, it)
	}
	return out
}

func toIDSet(entries []domain.HistoryEntry) map[int]struct{} {
	set := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		set[e.ProductID] = struct{}{}
	}
	return set
}
