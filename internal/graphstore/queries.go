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

// Collaborative implements "users who liked what you liked also liked
// these" (4.1.1): gather users sharing at least minShared products with
// uid, then rank the products those users touched that uid has not.
func (s *Store) Collaborative(ctx context.Context, uid, limit, minShared int) ([]domain.ScoredProduct, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	mine := ix.userProducts(uid)
	if len(mine) == 0 {
		return nil, nil
	}

	retained := make(map[int]struct{})
	for other, products := range ix.byUser {
		if other == uid {
			continue
		}
		shared := 0
		seen := make(map[int]struct{})
		for _, in := range products {
			if _, ok := mine[in.ProductID]; ok {
				if _, dup := seen[in.ProductID]; !dup {
					seen[in.ProductID] = struct{}{}
					shared++
				}
			}
		}
		if shared >= minShared {
			retained[other] = struct{}{}
		}
	}

	recommenders := make(map[int]map[int]struct{}) // product -> set of retained similar users
	scores := make(map[int]float64)
	for v := range retained {
		for _, in := range ix.byUser[v] {
			if _, seen := mine[in.ProductID]; seen {
				continue // uid has already interacted with this product
			}
			if recommenders[in.ProductID] == nil {
				recommenders[in.ProductID] = make(map[int]struct{})
			}
			recommenders[in.ProductID][v] = struct{}{}
			scores[in.ProductID] += in.Type.Weight()
		}
	}

	out := make([]domain.ScoredProduct, 0, len(recommenders))
	for pid, rset := range recommenders {
		rc := len(rset)
		is := scores[pid]
		out = append(out, domain.ScoredProduct{
			ProductID:        pid,
			RecommenderCount: rc,
			InteractionScore: is,
			TotalScore:       float64(10*rc) + is,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return truncateProducts(out, limit), nil
}

// SimilarUsers ranks other users by Jaccard similarity of their product
// interaction sets with uid's (4.1.2).
func (s *Store) SimilarUsers(ctx context.Context, uid, limit int) ([]domain.ScoredUser, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	mine := ix.userProducts(uid)
	if len(mine) == 0 {
		return nil, nil
	}

	out := make([]domain.ScoredUser, 0)
	for other, products := range ix.byUser {
		if other == uid {
			continue
		}
		otherSet := make(map[int]struct{})
		shared := 0
		for _, in := range products {
			if _, ok := otherSet[in.ProductID]; !ok {
				otherSet[in.ProductID] = struct{}{}
				if _, common := mine[in.ProductID]; common {
					shared++
				}
			}
		}
		union := len(mine) + len(otherSet) - shared
		if union <= 0 {
			continue
		}
		out = append(out, domain.ScoredUser{
			UserID:         other,
			SharedProducts: shared,
			Similarity:     float64(shared) / float64(union),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SimilarProducts implements item-item co-occurrence over any event type
// (4.1.3): users who interacted with pid, and what else they touched.
func (s *Store) SimilarProducts(ctx context.Context, pid, limit int) ([]domain.ScoredProduct, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	users := ix.productUsers(pid)
	if len(users) == 0 {
		return nil, nil
	}

	sharedUsers := make(map[int]map[int]struct{})
	scores := make(map[int]float64)
	for u := range users {
		for _, in := range ix.byUser[u] {
			if in.ProductID == pid {
				continue
			}
			if sharedUsers[in.ProductID] == nil {
				sharedUsers[in.ProductID] = make(map[int]struct{})
			}
			sharedUsers[in.ProductID][u] = struct{}{}
			scores[in.ProductID] += in.Type.Weight()
		}
	}

	out := make([]domain.ScoredProduct, 0, len(sharedUsers))
	for pidOther, uset := range sharedUsers {
		out = append(out, domain.ScoredProduct{
			ProductID:        pidOther,
			SharedUsers:      len(uset),
			InteractionScore: scores[pidOther],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SharedUsers != out[j].SharedUsers {
			return out[i].SharedUsers > out[j].SharedUsers
		}
		return out[i].InteractionScore > out[j].InteractionScore
	})
	return truncateProducts(out, limit), nil
}

// BoughtTogether counts same-session dual-purchase co-occurrence.
func (s *Store) BoughtTogether(ctx context.Context, pid, limit int) ([]domain.ScoredProduct, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	counts := make(map[int]int)
	for u := range ix.productUsers(pid) {
		purchaseSessions := sessionsFor(ix.byUser[u], pid, domain.EventPurchase)
		for _, in := range ix.byUser[u] {
			if in.ProductID == pid || in.Type != domain.EventPurchase {
				continue
			}
			if _, ok := purchaseSessions[in.SessionID]; ok {
				counts[in.ProductID]++
			}
		}
	}

	out := make([]domain.ScoredProduct, 0, len(counts))
	for pidOther, c := range counts {
		out = append(out, domain.ScoredProduct{ProductID: pidOther, PurchaseCount: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchaseCount > out[j].PurchaseCount })
	return truncateProducts(out, limit), nil
}

// AlsoViewed counts same-session dual-view co-occurrence.
func (s *Store) AlsoViewed(ctx context.Context, pid, limit int) ([]domain.ScoredProduct, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	userCounts := make(map[int]map[int]struct{})
	viewCounts := make(map[int]int)
	for u := range ix.productUsers(pid) {
		viewSessions := sessionsFor(ix.byUser[u], pid, domain.EventView)
		for _, in := range ix.byUser[u] {
			if in.ProductID == pid || in.Type != domain.EventView {
				continue
			}
			if _, ok := viewSessions[in.SessionID]; ok {
				if userCounts[in.ProductID] == nil {
					userCounts[in.ProductID] = make(map[int]struct{})
				}
				userCounts[in.ProductID][u] = struct{}{}
				viewCounts[in.ProductID]++
			}
		}
	}

	out := make([]domain.ScoredProduct, 0, len(userCounts))
	for pidOther, uset := range userCounts {
		out = append(out, domain.ScoredProduct{ProductID: pidOther, UserCount: len(uset), ViewCount: viewCounts[pidOther]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserCount != out[j].UserCount {
			return out[i].UserCount > out[j].UserCount
		}
		return out[i].ViewCount > out[j].ViewCount
	})
	return truncateProducts(out, limit), nil
}

// sessionsFor returns the set of session ids under which user interacted
// with pid via the given event type.
func sessionsFor(edges []domain.Interaction, pid int, typ domain.EventType) map[string]struct{} {
	out := make(map[string]struct{})
	for _, in := range edges {
		if in.ProductID == pid && in.Type == typ {
			out[in.SessionID] = struct{}{}
		}
	}
	return out
}

// Trending ranks products by interaction volume (4.1.4). When types is
// non-empty only matching edges count; otherwise per-type breakdowns are
// also populated.
func (s *Store) Trending(ctx context.Context, limit int, types []domain.EventType) ([]domain.ScoredProduct, error) {
	return s.trendingFiltered(ctx, limit, types, "")
}

// TrendingByCategory scopes Trending to products tagged with category.
func (s *Store) TrendingByCategory(ctx context.Context, category string, limit int, types []domain.EventType) ([]domain.ScoredProduct, error) {
	return s.trendingFiltered(ctx, limit, types, category)
}

func (s *Store) trendingFiltered(_ context.Context, limit int, types []domain.EventType, category string) ([]domain.ScoredProduct, error) {
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	allowed := make(map[domain.EventType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	totals := make(map[int]int)
	uniqueUsers := make(map[int]map[int]struct{})
	purchases := make(map[int]int)
	carts := make(map[int]int)
	views := make(map[int]int)

	for pid, edges := range ix.byProduct {
		if category != "" {
			c, ok := ix.categories[pid]
			if !ok || c != category {
				continue
			}
		}
		for _, in := range edges {
			if len(allowed) > 0 {
				if _, ok := allowed[in.Type]; !ok {
					continue
				}
			}
			totals[pid]++
			if uniqueUsers[pid] == nil {
				uniqueUsers[pid] = make(map[int]struct{})
			}
			uniqueUsers[pid][in.UserID] = struct{}{}
			switch in.Type {
			case domain.EventPurchase:
				purchases[pid]++
			case domain.EventCart:
				carts[pid]++
			case domain.EventView:
				views[pid]++
			}
		}
	}

	out := make([]domain.ScoredProduct, 0, len(totals))
	for pid, total := range totals {
		sp := domain.ScoredProduct{
			ProductID:        pid,
			RecommenderCount: len(uniqueUsers[pid]),
			TotalScore:       float64(total),
		}
		if len(allowed) == 0 {
			sp.PurchaseCount = purchases[pid]
			sp.ViewCount = views[pid]
			sp.CartCount = carts[pid]
		}
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return truncateProducts(out, limit), nil
}

// ProductStats returns aggregate counters for a single product, or nil if
// the product has never appeared in any edge.
func (s *Store) ProductStats(ctx context.Context, pid int) (*domain.ProductStats, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	edges, ok := ix.byProduct[pid]
	if !ok {
		return nil, nil
	}

	stats := &domain.ProductStats{ProductID: pid}
	users := make(map[int]struct{})
	for _, in := range edges {
		stats.TotalInteractions++
		users[in.UserID] = struct{}{}
		switch in.Type {
		case domain.EventView:
			stats.Views++
		case domain.EventCart:
			stats.Carts++
		case domain.EventPurchase:
			stats.Purchases++
		}
	}
	stats.UniqueUsers = len(users)
	if stats.Views > 0 {
		stats.ConversionRate = float64(stats.Purchases) / float64(stats.Views)
	}
	return stats, nil
}

// UserHistory returns a user's interactions ordered newest first.
func (s *Store) UserHistory(ctx context.Context, uid, limit int, types []domain.EventType) ([]domain.HistoryEntry, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	allowed := make(map[domain.EventType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	out := make([]domain.HistoryEntry, 0, len(ix.byUser[uid]))
	for _, in := range ix.byUser[uid] {
		if len(allowed) > 0 {
			if _, ok := allowed[in.Type]; !ok {
				continue
			}
		}
		out = append(out, domain.HistoryEntry{
			ProductID: in.ProductID,
			EventType: in.Type,
			EventTime: in.EventTime,
			SessionID: in.SessionID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventTime.After(out[j].EventTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PurchaseHistory is UserHistory scoped to purchase events, the
// supplemental equivalent of the original's dedicated purchase-only query.
func (s *Store) PurchaseHistory(ctx context.Context, uid, limit int) ([]domain.HistoryEntry, error) {
	return s.UserHistory(ctx, uid, limit, []domain.EventType{domain.EventPurchase})
}

// RecentViewed returns distinct products most recently viewed or carted,
// used by the semantic-similarity recommender as seed items.
func (s *Store) RecentViewed(ctx context.Context, uid, limit int) ([]domain.HistoryEntry, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	latest := make(map[int]domain.Interaction)
	for _, in := range ix.byUser[uid] {
		if in.Type != domain.EventView && in.Type != domain.EventCart {
			continue
		}
		cur, ok := latest[in.ProductID]
		if !ok || in.EventTime.After(cur.EventTime) {
			latest[in.ProductID] = in
		}
	}

	out := make([]domain.HistoryEntry, 0, len(latest))
	for _, in := range latest {
		out = append(out, domain.HistoryEntry{
			ProductID: in.ProductID,
			EventType: in.Type,
			EventTime: in.EventTime,
			SessionID: in.SessionID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventTime.After(out[j].EventTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// HasRecentPurchase reports the user's single most recent purchase. The
// lookback window is accepted for API compatibility but, matching the
// source behavior this was distilled from, does not filter the result: the
// latest purchase is always returned regardless of age. See the Open
// Question decisions in DESIGN.md.
func (s *Store) HasRecentPurchase(ctx context.Context, uid int, _ int) (domain.PurchaseStatus, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var latest *domain.Interaction
	for i := range ix.byUser[uid] {
		in := ix.byUser[uid][i]
		if in.Type != domain.EventPurchase {
			continue
		}
		if latest == nil || in.EventTime.After(latest.EventTime) {
			latest = &in
		}
	}
	if latest == nil {
		return domain.PurchaseStatus{HasPurchase: false}, nil
	}
	return domain.PurchaseStatus{
		HasPurchase:          true,
		LastPurchasedProduct: latest.ProductID,
		PurchaseTime:         latest.EventTime,
		SessionID:            latest.SessionID,
	}, nil
}

// Complementary finds products bought by pid's buyers in a different
// session from their pid purchase (4.1.5).
func (s *Store) Complementary(ctx context.Context, pid, limit int) ([]domain.ScoredProduct, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	buyers := make(map[int][]string) // user -> sessions in which they bought pid
	for _, in := range ix.byProduct[pid] {
		if in.Type == domain.EventPurchase {
			buyers[in.UserID] = append(buyers[in.UserID], in.SessionID)
		}
	}
	if len(buyers) == 0 {
		return nil, nil
	}

	buyerSets := make(map[int]map[int]struct{}) // other product -> set of buyers
	purchaseCounts := make(map[int]int)
	for u, sessions1 := range buyers {
		for _, in := range ix.byUser[u] {
			if in.ProductID == pid || in.Type != domain.EventPurchase {
				continue
			}
			if !anyDifferentSession(sessions1, in.SessionID) {
				continue
			}
			if buyerSets[in.ProductID] == nil {
				buyerSets[in.ProductID] = make(map[int]struct{})
			}
			buyerSets[in.ProductID][u] = struct{}{}
			purchaseCounts[in.ProductID]++
		}
	}

	out := make([]domain.ScoredProduct, 0, len(buyerSets))
	for pidOther, bset := range buyerSets {
		bc := len(bset)
		pc := purchaseCounts[pidOther]
		out = append(out, domain.ScoredProduct{
			ProductID:     pidOther,
			BuyerCount:    bc,
			PurchaseCount: pc,
			TotalScore:    float64(2*bc + pc),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return truncateProducts(out, limit), nil
}

// anyDifferentSession reports whether s2 differs from at least one session
// in s1sessions, treating an empty session id as satisfying the
// "IS NULL" branch of the original permissive OR.
func anyDifferentSession(s1sessions []string, s2 string) bool {
	for _, s1 := range s1sessions {
		if s1 == "" || s2 == "" || s1 != s2 {
			return true
		}
	}
	return false
}

// Stats returns global graph cardinalities.
func (s *Store) Stats(ctx context.Context) (domain.GraphStats, error) {
	_ = ctx
	ix := s.idx
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	interactions := 0
	for _, edges := range ix.byUser {
		interactions += len(edges)
	}
	return domain.GraphStats{
		Users:        len(ix.byUser),
		Products:     len(ix.byProduct),
		Interactions: interactions,
	}, nil
}

func truncateProducts(in []domain.ScoredProduct, limit int) []domain.ScoredProduct {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
