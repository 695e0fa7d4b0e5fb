// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package projector is the worker layer (C5): per-queue worker pools that
// consume envelopes from the broker, decode and validate them, and apply
// them to the graph or vector store, retrying transient failures on a
// fixed delay schedule before falling through to the dead letter queue.
//
// Each worker is a thejerf/suture/v4 service, supervised the same way the
// data/messaging/api layers are supervised in internal/supervisor: a crash
// in one worker's Serve loop triggers an isolated restart without
// affecting its siblings.
package projector
