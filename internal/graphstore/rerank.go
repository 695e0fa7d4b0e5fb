// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package graphstore

import (
	"context"
	"sort"

	"github.com/orbitlane/recoengine/internal/domain"
)

// RerankByPopularity scores an arbitrary candidate set by event-weighted
// interaction volume (4.1.6), preserving the caller's product scope.
func (s *Store) RerankByPopularity(ctx context.Context, productIDs []int, limit int) ([]domain.ScoredProduct, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]domain.ScoredProduct, 0, len(productIDs))
	for _, pid := range productIDs {
		edges := ix.byProduct[pid]
		var score float64
		for _, in := range edges {
			score += in.Type.Weight()
		}
		out = append(out, domain.ScoredProduct{
			ProductID:        pid,
			RecommenderCount: len(edges),
			InteractionScore: score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].InteractionScore > out[j].InteractionScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RerankForUser scores a candidate set by the affinity of uid's similar
// users (4.1.7): users sharing any product with uid.
func (s *Store) RerankForUser(ctx context.Context, productIDs []int, uid, limit int) ([]domain.ScoredProduct, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	mine := ix.userProducts(uid)
	similar := make(map[int]struct{})
	for other, edges := range ix.byUser {
		if other == uid {
			continue
		}
		for _, in := range edges {
			if _, ok := mine[in.ProductID]; ok {
				similar[other] = struct{}{}
				break
			}
		}
	}

	out := make([]domain.ScoredProduct, 0, len(productIDs))
	for _, pid := range productIDs {
		var score float64
		touching := make(map[int]struct{})
		for _, in := range ix.byProduct[pid] {
			if _, ok := similar[in.UserID]; !ok {
				continue
			}
			touching[in.UserID] = struct{}{}
			score += in.Type.Weight()
		}
		out = append(out, domain.ScoredProduct{
			ProductID:        pid,
			RecommenderCount: len(touching),
			InteractionScore: score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].InteractionScore > out[j].InteractionScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
