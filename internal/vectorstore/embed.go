// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package vectorstore

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// CreateTextVector derives a deterministic embedding for text. The real
// embedding model is an external collaborator outside this module's scope;
// this is a stand-in that is at least stable and collision-resistant
// enough for tests and local development to exercise Search end to end.
func (s *Store) CreateTextVector(text string) []float32 {
	return deterministicEmbedding(text, s.dimensions)
}

// CreateImageVector derives a deterministic embedding for an image
// reference (path or URL), same caveat as CreateTextVector.
func (s *Store) CreateImageVector(ref string) []float32 {
	return deterministicEmbedding("image:"+ref, s.dimensions)
}

func deterministicEmbedding(seed string, dims int) []float32 {
	if dims <= 0 {
		dims = 1
	}
	out := make([]float32, dims)
	h := fnv.New64a()
	buf := make([]byte, 8)
	var norm float64
	for i := 0; i < dims; i++ {
		h.Reset()
		_, _ = h.Write([]byte(seed))
		binary.LittleEndian.PutUint64(buf, uint64(i))
		_, _ = h.Write(buf)
		v := float64(h.Sum64()%2000001)/1000000 - 1 // in [-1, 1]
		out[i] = float32(v)
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return out
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / norm)
	}
	return out
}
