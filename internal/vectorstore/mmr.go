// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package vectorstore

// mmrSelect implements Maximal Marginal Relevance reranking over cosine
// vector similarity (4.2.1):
//
//	mmr(r) = (1-diversity)*sim(r,q) - diversity*max(sim(r,s) for s in selected)
//
// diversity == 0 reduces to pure relevance ordering (the input order);
// diversity == 1 reduces to pure diversity.
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
func mmrSelect(candidates []Result, limit int, diversity float64) []Result {
	if len(candidates) == 0 || limit <= 0 {
		return nil
	}
	if diversity < 0 {
		diversity = 0
	}
	if diversity > 1 {
		diversity = 1
	}
	if limit > len(candidates) {
		limit = len(candidates)
	}

	sims := buildSimilarityMatrix(candidates)

	selected := make([]Result, 0, limit)
	selectedIdx := make(map[int]struct{}, limit)

	for len(selected) < limit {
		bestIdx := -1
		bestMMR := 0.0
		first := true

		for i, c := range candidates {
			if _, ok := selectedIdx[i]; ok {
				continue
			}

			maxSim := 0.0
			for j := range selectedIdx {
				if sim := sims[i][j]; sim > maxSim {
					maxSim = sim
				}
			}

			score := (1-diversity)*c.Score - diversity*maxSim
			if first || score > bestMMR {
				bestMMR = score
				bestIdx = i
				first = false
			}
		}

		if bestIdx < 0 {
			break
		}
		selected = append(selected, candidates[bestIdx])
		selectedIdx[bestIdx] = struct{}{}
	}

	return selected
}

// buildSimilarityMatrix computes pairwise cosine similarity between
// candidate vectors.
func buildSimilarityMatrix(candidates []Result) [][]float64 {
	n := len(candidates)
	sims := make([][]float64, n)
	for i := range sims {
		sims[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := cosineSimilarity(candidates[i].Vector, candidates[j].Vector)
			sims[i][j] = sim
			sims[j][i] = sim
		}
	}
	return sims
}
