// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package broker

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/orbitlane/recoengine/internal/config"
)

// Topology names, fixed by the spec (4.3): one fanout exchange feeding two
// durable projector queues, backed by one direct dead-letter exchange.
const (
	ExchangeEvents = "events"
	ExchangeDLX    = "events.dlx"

	QueueNeo4j  = "events.neo4j"
	QueueQdrant = "events.qdrant"
	QueueDLQ    = "events.dlq"

	RoutingKeyDLQ = "dlq"
)

// PrimaryQueues lists the durable projector queues bound to ExchangeEvents.
var PrimaryQueues = []string{QueueNeo4j, QueueQdrant}

// declareTopology declares the fanout exchange, DLX, both primary queues
// (with DLX arguments), and the DLQ, idempotently.
func declareTopology(ch *amqp.Channel, qcfg config.QueueConfig) error {
	if err := ch.ExchangeDeclare(ExchangeEvents, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeEvents, err)
	}
	if err := ch.ExchangeDeclare(ExchangeDLX, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeDLX, err)
	}

	primaryArgs := amqp.Table{
		"x-dead-letter-exchange":    ExchangeDLX,
		"x-dead-letter-routing-key": RoutingKeyDLQ,
		"x-message-ttl":             qcfg.Primary.TTLMillis,
		"x-max-length":              qcfg.Primary.MaxLength,
		"x-overflow":                "drop-head",
	}
	for _, q := range PrimaryQueues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, primaryArgs); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
		if err := ch.QueueBind(q, "", ExchangeEvents, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", q, err)
		}
	}

	dlqArgs := amqp.Table{"x-message-ttl": qcfg.DLQ.TTLMillis}
	if _, err := ch.QueueDeclare(QueueDLQ, true, false, false, false, dlqArgs); err != nil {
		return fmt.Errorf("declare queue %s: %w", QueueDLQ, err)
	}
	if err := ch.QueueBind(QueueDLQ, RoutingKeyDLQ, ExchangeDLX, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", QueueDLQ, err)
	}

	return nil
}
