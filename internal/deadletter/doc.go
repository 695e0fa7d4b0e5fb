// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package deadletter is a local Badger-backed mirror of the broker's
// events.dlq queue (spec.md §3.3, §4.3).
//
// The broker's DLX already durably parks exhausted envelopes on
// events.dlq; this package exists only to give the control surface a
// non-destructive DLQPeek operation (SPEC_FULL.md §4 item 4) without
// performing a basic.get-and-requeue dance against the live AMQP queue.
// Every envelope a projector worker finally gives up on (spec.md §4.5.1)
// is mirrored here with a 7-day TTL matching the DLQ's own retention, via
// BadgerDB's native per-entry TTL rather than a hand-rolled compaction
// loop — the one piece of the teacher's internal/wal this package keeps.
package deadletter
