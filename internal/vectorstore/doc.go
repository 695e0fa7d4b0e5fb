// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package vectorstore is the typed adapter over product embedding vectors:
// kNN search with an optional Maximal Marginal Relevance diversification
// pass, retrieval by id, and the text/image embedding entry points the
// orchestrator calls to turn a query into a vector.
//
// Vectors live entirely in memory, brute-force scanned on every search.
// This mirrors the MMR reranker's own in-process posture: no embedding
// service exists in this deployment, so search cost is O(collection size)
// per query rather than an ANN index's O(log n).
package vectorstore
