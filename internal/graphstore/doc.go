// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package graphstore is the typed adapter over the User-INTERACTED->Product
// behavior graph. It is the sole source of truth for every interaction ever
// recorded, and answers the fixed set of collaborative, co-occurrence, and
// trending queries the orchestrator composes recommendations from.
//
// Durability is a DuckDB append-only ledger (one row per edge, never
// updated or deleted). Query latency comes from an in-memory adjacency
// index rebuilt from the ledger at startup and maintained incrementally on
// every write, the same split the database package uses between its DuckDB
// table and its in-process tile cache.
package graphstore
