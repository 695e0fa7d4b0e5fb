// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package vectorstore

import (
	"context"
)

// SearchOptions configures a single Search call. MMRCandidates defaults to
// 10*Limit when UseMMR is set and MMRCandidates is zero.
type SearchOptions struct {
	Limit          int
	ScoreThreshold *float64
	Filter         Filter
	UseMMR         bool
	MMRDiversity   float64
	MMRCandidates  int
}

// Search ranks the collection by cosine similarity to query, optionally
// diversifying the result with Maximal Marginal Relevance.
func (s *Store) Search(_ context.Context, query []float32, opts SearchOptions) []Result {
	if opts.Limit <= 0 {
		return nil
	}

	candidateLimit := opts.Limit
	if opts.UseMMR {
		candidateLimit = opts.MMRCandidates
		if candidateLimit <= 0 {
			candidateLimit = 10 * opts.Limit
		}
	}

	candidates := s.scoreAll(query, opts.Filter, opts.ScoreThreshold)
	sortByScoreDesc(candidates)
	if len(candidates) > candidateLimit {
		candidates = candidates[:candidateLimit]
	}

	if !opts.UseMMR {
		if len(candidates) > opts.Limit {
			candidates = candidates[:opts.Limit]
		}
		return candidates
	}
	return mmrSelect(candidates, opts.Limit, opts.MMRDiversity)
}

func (s *Store) scoreAll(query []float32, filter Filter, threshold *float64) []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Result, 0, len(s.points))
	for _, p := range s.points {
		if len(filter) > 0 && !matchesFilter(p.Payload, filter) {
			continue
		}
		score := cosineSimilarity(query, p.Vector)
		if threshold != nil && score < *threshold {
			continue
		}
		out = append(out, Result{ID: p.ID, Score: score, Vector: p.Vector, Payload: p.Payload})
	}
	return out
}
