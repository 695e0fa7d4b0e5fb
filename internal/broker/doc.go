// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package broker is the typed adapter over the event topology (C3): one
// fanout exchange feeding two durable projector queues and a dead-letter
// exchange behind them.
//
// Message envelopes are Watermill messages (github.com/ThreeDotsLabs/watermill),
// the same wire wrapper the event processor used for its NATS topology, but
// the transport is github.com/rabbitmq/amqp091-go directly rather than the
// watermill-amqp publisher/subscriber pair: queue introspection, purge, and
// the per-queue dead-letter-exchange arguments this topology needs are
// management-plane operations no Watermill pub/sub abstraction exposes, so
// the broker talks AMQP 0-9-1 itself and only borrows Watermill's message
// envelope and UUID conventions. Publish keeps the teacher's
// circuit-breaker-wrapped call shape from eventprocessor/publisher.go.
package broker
