// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package vectorstore

import (
	"context"
	"testing"

	"github.com/orbitlane/recoengine/internal/config"
)

func newTestStore() *Store {
	return New(config.VectorConfig{Dimensions: 3})
}

func TestUpsertRejectsDimensionMismatch(t *testing.T) {
	s := newTestStore()
	err := s.Upsert(context.Background(), Point{ID: 1, Vector: []float32{1, 2}})
	if err == nil {
		t.Fatal("Upsert() error = nil, want dimension mismatch error")
	}
}

func TestRetrieveOmitsMissingIDs(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	if err := s.Upsert(ctx, Point{ID: 1, Vector: []float32{1, 0, 0}}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got := s.Retrieve(ctx, []int{1, 2, 3}, false)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Retrieve() = %+v, want only id 1", got)
	}
}

func TestSearchRanksByCosineSimilarity(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	mustUpsert(t, s, Point{ID: 1, Vector: []float32{1, 0, 0}})
	mustUpsert(t, s, Point{ID: 2, Vector: []float32{0, 1, 0}})
	mustUpsert(t, s, Point{ID: 3, Vector: []float32{0.9, 0.1, 0}})

	got := s.Search(ctx, []float32{1, 0, 0}, SearchOptions{Limit: 2})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("Search() = %+v, want [1, 3]", got)
	}
}

func TestSearchAppliesScoreThreshold(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	mustUpsert(t, s, Point{ID: 1, Vector: []float32{1, 0, 0}})
	mustUpsert(t, s, Point{ID: 2, Vector: []float32{-1, 0, 0}})

	threshold := 0.5
	got := s.Search(ctx, []float32{1, 0, 0}, SearchOptions{Limit: 10, ScoreThreshold: &threshold})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Search() = %+v, want only id 1 above threshold", got)
	}
}

func TestSearchAppliesFilter(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	mustUpsert(t, s, Point{ID: 1, Vector: []float32{1, 0, 0}, Payload: map[string]any{"category": "shoes"}})
	mustUpsert(t, s, Point{ID: 2, Vector: []float32{0.9, 0.1, 0}, Payload: map[string]any{"category": "hats"}})

	got := s.Search(ctx, []float32{1, 0, 0}, SearchOptions{Limit: 10, Filter: Filter{"category": "hats"}})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("Search() = %+v, want only id 2", got)
	}
}

func TestSearchWithMMRDiversifies(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	mustUpsert(t, s, Point{ID: 1, Vector: []float32{1, 0, 0}})
	mustUpsert(t, s, Point{ID: 2, Vector: []float32{0.99, 0.01, 0}}) // near-duplicate of 1
	mustUpsert(t, s, Point{ID: 3, Vector: []float32{0, 1, 0}})       // distinct

	got := s.Search(ctx, []float32{1, 0, 0}, SearchOptions{
		Limit: 2, UseMMR: true, MMRDiversity: 0.9, MMRCandidates: 3,
	})
	if len(got) != 2 {
		t.Fatalf("Search(mmr) = %+v, want 2 results", got)
	}
	if got[0].ID != 1 {
		t.Errorf("first selection = %d, want 1 (pure relevance)", got[0].ID)
	}
	if got[1].ID != 3 {
		t.Errorf("second selection = %d, want 3 (diverse from 1), got near-duplicate 2 instead", got[1].ID)
	}
}

func TestCreateTextVectorIsDeterministic(t *testing.T) {
	s := newTestStore()
	a := s.CreateTextVector("running shoes")
	b := s.CreateTextVector("running shoes")
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("CreateTextVector() len = %d, want 3", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("CreateTextVector() not deterministic at index %d: %v vs %v", i, a, b)
		}
	}
}

func mustUpsert(t *testing.T, s *Store, p Point) {
	t.Helper()
	if err := s.Upsert(context.Background(), p); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
}
