// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package vectorstore

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/orbitlane/recoengine/internal/config"
	"github.com/orbitlane/recoengine/internal/domain"
)

// Point is a single stored embedding plus its opaque metadata payload.
type Point struct {
	ID      int
	Vector  []float32
	Payload map[string]any
}

// Result is one ranked hit returned by Search or Retrieve.
type Result struct {
	ID      int
	Score   float64
	Vector  []float32
	Payload map[string]any
}

// Filter is a conjunction of equality predicates over payload fields.
type Filter map[string]any

// Store is the vector store adapter (C2): an in-memory collection of
// fixed-dimension embeddings searched by cosine similarity.
type Store struct {
	mu         sync.RWMutex
	dimensions int
	points     map[int]Point
}

// New creates an empty collection sized to cfg.Dimensions.
func New(cfg config.VectorConfig) *Store {
	return &Store{
		dimensions: cfg.Dimensions,
		points:     make(map[int]Point),
	}
}

// Upsert inserts or replaces a point. Returns InvalidInput if the vector's
// dimensionality does not match the collection.
func (s *Store) Upsert(_ context.Context, p Point) error {
	const op = "vectorstore.Upsert"
	if s.dimensions > 0 && len(p.Vector) != s.dimensions {
		return domain.NewError(domain.KindInvalidInput, op, errDimensionMismatch(len(p.Vector), s.dimensions))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[p.ID] = p
	return nil
}

// Delete removes a point, if present.
func (s *Store) Delete(_ context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.points, id)
}

// Count reports the number of stored points.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Retrieve fetches points by id. Ids with no stored vector are silently
// omitted, per spec: absent vectors never fail the call.
func (s *Store) Retrieve(_ context.Context, ids []int, withVectors bool) []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Result, 0, len(ids))
	for _, id := range ids {
		p, ok := s.points[id]
		if !ok {
			continue
		}
		r := Result{ID: p.ID, Payload: p.Payload}
		if withVectors {
			r.Vector = append([]float32(nil), p.Vector...)
		}
		out = append(out, r)
	}
	return out
}

func matchesFilter(payload map[string]any, filter Filter) bool {
	for k, v := range filter {
		pv, ok := payload[k]
		if !ok || pv != v {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func sortByScoreDesc(results []Result) {
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
}
