// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package graphstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/orbitlane/recoengine/internal/config"
	"github.com/orbitlane/recoengine/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	cfg := config.GraphConfig{Path: filepath.Join(dir, "graph.duckdb")}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *Store, interactions []domain.Interaction) {
	t.Helper()
	if _, err := s.RecordBatch(context.Background(), interactions); err != nil {
		t.Fatalf("RecordBatch() error = %v", err)
	}
}

func in(user, product int, typ domain.EventType, offset time.Duration, session string) domain.Interaction {
	return domain.Interaction{
		UserID:    user,
		ProductID: product,
		Type:      typ,
		EventTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(offset),
		SessionID: session,
	}
}

func TestRecordInteractionAndBatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RecordInteraction(ctx, in(1, 100, domain.EventView, 0, "s1")); err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}
	n, err := s.RecordBatch(ctx, []domain.Interaction{
		in(1, 101, domain.EventCart, time.Minute, "s1"),
		in(2, 100, domain.EventView, 2*time.Minute, "s2"),
	})
	if err != nil {
		t.Fatalf("RecordBatch() error = %v", err)
	}
	if n != 2 {
		t.Errorf("RecordBatch() = %d, want 2", n)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Interactions != 3 || stats.Users != 2 || stats.Products != 2 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestCollaborativeRecommendsUnseenProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventView, 0, "s1"),
		in(2, 10, domain.EventView, time.Minute, "s2"),
		in(2, 20, domain.EventPurchase, 2*time.Minute, "s2"),
	})

	got, err := s.Collaborative(ctx, 1, 10, 1)
	if err != nil {
		t.Fatalf("Collaborative() error = %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 20 {
		t.Fatalf("Collaborative() = %+v, want product 20", got)
	}
	if got[0].TotalScore != 10+80 {
		t.Errorf("TotalScore = %v, want 90", got[0].TotalScore)
	}
}

func TestCollaborativeExcludesBelowMinShared(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventView, 0, "s1"),
		in(1, 11, domain.EventView, time.Minute, "s1"),
		in(2, 10, domain.EventView, 2*time.Minute, "s2"), // shares only 1 product
		in(2, 99, domain.EventPurchase, 3*time.Minute, "s2"),
	})

	got, err := s.Collaborative(ctx, 1, 10, 2)
	if err != nil {
		t.Fatalf("Collaborative() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Collaborative() = %+v, want empty (min_shared not met)", got)
	}
}

func TestSimilarUsersJaccard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventView, 0, "s1"),
		in(1, 20, domain.EventView, time.Minute, "s1"),
		in(2, 10, domain.EventView, 2*time.Minute, "s2"),
		in(2, 30, domain.EventView, 3*time.Minute, "s2"),
	})

	got, err := s.SimilarUsers(ctx, 1, 10)
	if err != nil {
		t.Fatalf("SimilarUsers() error = %v", err)
	}
	if len(got) != 1 || got[0].UserID != 2 {
		t.Fatalf("SimilarUsers() = %+v", got)
	}
	want := 1.0 / 3.0
	if got[0].Similarity != want {
		t.Errorf("Similarity = %v, want %v", got[0].Similarity, want)
	}
}

func TestBoughtTogetherSameSessionPurchases(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventPurchase, 0, "s1"),
		in(1, 20, domain.EventPurchase, time.Minute, "s1"),
		in(2, 10, domain.EventPurchase, 2*time.Minute, "s2"),
		in(2, 20, domain.EventPurchase, 3*time.Minute, "s3"), // different session, should not count
	})

	got, err := s.BoughtTogether(ctx, 10, 10)
	if err != nil {
		t.Fatalf("BoughtTogether() error = %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 20 || got[0].PurchaseCount != 1 {
		t.Fatalf("BoughtTogether() = %+v, want one co-purchase of 20", got)
	}
}

func TestTrendingUnfilteredBreaksOutCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventView, 0, "s1"),
		in(1, 10, domain.EventPurchase, time.Minute, "s1"),
		in(2, 10, domain.EventView, 2*time.Minute, "s2"),
	})

	got, err := s.Trending(ctx, 10, nil)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 10 {
		t.Fatalf("Trending() = %+v", got)
	}
	if got[0].PurchaseCount != 1 || got[0].ViewCount != 2 {
		t.Errorf("Trending() counters = %+v", got[0])
	}
}

func TestProductStatsConversionRate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventView, 0, "s1"),
		in(2, 10, domain.EventView, time.Minute, "s2"),
		in(1, 10, domain.EventPurchase, 2*time.Minute, "s1"),
	})

	stats, err := s.ProductStats(ctx, 10)
	if err != nil {
		t.Fatalf("ProductStats() error = %v", err)
	}
	if stats == nil {
		t.Fatal("ProductStats() = nil, want stats")
	}
	if stats.ConversionRate != 0.5 {
		t.Errorf("ConversionRate = %v, want 0.5", stats.ConversionRate)
	}
}

func TestProductStatsUnknownProductIsNil(t *testing.T) {
	s := newTestStore(t)
	stats, err := s.ProductStats(context.Background(), 999)
	if err != nil {
		t.Fatalf("ProductStats() error = %v", err)
	}
	if stats != nil {
		t.Errorf("ProductStats() = %+v, want nil", stats)
	}
}

func TestHasRecentPurchaseReturnsLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventPurchase, 0, "s1"),
		in(1, 20, domain.EventPurchase, time.Hour, "s2"),
	})

	status, err := s.HasRecentPurchase(ctx, 1, 24)
	if err != nil {
		t.Fatalf("HasRecentPurchase() error = %v", err)
	}
	if !status.HasPurchase || status.LastPurchasedProduct != 20 {
		t.Errorf("HasRecentPurchase() = %+v, want product 20", status)
	}
}

func TestComplementaryExcludesSameSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventPurchase, 0, "s1"),
		in(1, 20, domain.EventPurchase, time.Minute, "s1"), // same session: bundle, not complementary
		in(2, 10, domain.EventPurchase, 2*time.Minute, "s2"),
		in(2, 30, domain.EventPurchase, time.Hour, "s3"), // different session: complementary
	})

	got, err := s.Complementary(ctx, 10, 10)
	if err != nil {
		t.Fatalf("Complementary() error = %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 30 {
		t.Fatalf("Complementary() = %+v, want only product 30", got)
	}
	if got[0].TotalScore != 2*1+1 {
		t.Errorf("TotalScore = %v, want 3", got[0].TotalScore)
	}
}

func TestRerankByPopularityOrdersByWeightedScore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventView, 0, "s1"),
		in(1, 20, domain.EventPurchase, time.Minute, "s1"),
	})

	got, err := s.RerankByPopularity(ctx, []int{10, 20, 30}, 0)
	if err != nil {
		t.Fatalf("RerankByPopularity() error = %v", err)
	}
	if len(got) != 3 || got[0].ProductID != 20 {
		t.Fatalf("RerankByPopularity() = %+v, want product 20 first", got)
	}
}

func TestUserHistoryOrdersNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventView, 0, "s1"),
		in(1, 20, domain.EventView, time.Minute, "s1"),
	})

	got, err := s.UserHistory(ctx, 1, 10, nil)
	if err != nil {
		t.Fatalf("UserHistory() error = %v", err)
	}
	if len(got) != 2 || got[0].ProductID != 20 {
		t.Fatalf("UserHistory() = %+v, want newest (20) first", got)
	}
}

func TestTrendingByCategoryScopesToTaggedProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.SetProductCategory(ctx, 10, "electronics"); err != nil {
		t.Fatalf("SetProductCategory() error = %v", err)
	}
	seed(t, s, []domain.Interaction{
		in(1, 10, domain.EventView, 0, "s1"),
		in(1, 20, domain.EventView, time.Minute, "s1"),
	})

	got, err := s.TrendingByCategory(ctx, "electronics", 10, nil)
	if err != nil {
		t.Fatalf("TrendingByCategory() error = %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 10 {
		t.Fatalf("TrendingByCategory() = %+v, want only product 10", got)
	}
}

func TestIndexRebuildsFromLedgerAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	cfg := config.GraphConfig{Path: filepath.Join(dir, "graph.duckdb")}

	s1, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	seed(t, s1, []domain.Interaction{in(1, 10, domain.EventPurchase, 0, "s1")})
	if err := s1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2, err := New(cfg)
	if err != nil {
		t.Fatalf("New() (reopen) error = %v", err)
	}
	defer s2.Close()

	stats, err := s2.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Interactions != 1 {
		t.Errorf("Stats() after reopen = %+v, want 1 interaction restored from ledger", stats)
	}
}
