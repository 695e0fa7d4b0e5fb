// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package admission is the event ingress adapter (C4): validates an
// EventCreate request, resolves the effective user id, and dispatches
// either to the broker (async mode) or directly to the graph store
// (sync mode), selected by a process-wide USE_BROKER switch.
package admission
