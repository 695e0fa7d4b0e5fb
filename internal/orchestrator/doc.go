// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package orchestrator is the recommendation orchestrator (C6, spec.md
// §4.6). It classifies a user into a mode, allocates a per-source budget,
// fans out to the graph store (C1) and vector store (C2), deduplicates
// and enriches the combined candidate list, and paginates the result.
//
// A failure from any one source degrades that source to an empty result
// with a warning log rather than failing the whole call (spec.md §7,
// "Propagation policy") — mirroring the per-source isolation the
// projector applies per-queue rather than per-process.
package orchestrator
