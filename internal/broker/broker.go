// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/orbitlane/recoengine/internal/config"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/logging"
	"github.com/orbitlane/recoengine/internal/metrics"
)

var eventLog = logging.NewEventLogger()

// Broker is the event topology adapter (C3). It owns the AMQP connection
// used for publish, topology management, and queue introspection, plus a
// circuit breaker protecting Publish the way eventprocessor/publisher.go
// protects its NATS publish path.
type Broker struct {
	cfg  config.BrokerConfig
	conn *amqp.Connection

	mu         sync.Mutex
	publishCh  *amqp.Channel
	closed     bool
	breaker    *gobreaker.CircuitBreaker[interface{}]
}

// New dials the broker, declares the fixed topology scoped by qcfg, and
// returns a ready Broker. Connection loss during later operations triggers
// lazy reconnection on next call (the same failure semantics as the graph
// and vector adapters).
func New(cfg config.BrokerConfig, qcfg config.QueueConfig) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("broker: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("broker: open channel: %w", err)
	}
	if err := declareTopology(ch, qcfg); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("broker: declare topology: %w", err)
	}
	return &Broker{
		cfg:       cfg,
		conn:      conn,
		publishCh: ch,
		breaker: gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
			Name:        "broker.publish",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}, nil
}

// Close releases the connection and channel.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.publishCh != nil {
		_ = b.publishCh.Close()
	}
	return b.conn.Close()
}

// ensureChannel reopens the publish channel lazily if the connection
// dropped.
func (b *Broker) ensureChannel() (*amqp.Channel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("broker: closed")
	}
	if b.publishCh != nil && !b.publishCh.IsClosed() {
		return b.publishCh, nil
	}
	if b.conn.IsClosed() {
		conn, err := amqp.Dial(b.cfg.URL())
		if err != nil {
			return nil, err
		}
		b.conn = conn
	}
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, err
	}
	b.publishCh = ch
	logging.Warn().Msg("broker: reconnected publish channel")
	return ch, nil
}

// Publish sends the envelope to the fanout exchange, JSON-body persistent,
// circuit-breaker protected (§4.3).
func (b *Broker) Publish(ctx context.Context, env domain.Envelope) error {
	const op = "broker.Publish"

	_, err := b.breaker.Execute(func() (interface{}, error) {
		ch, err := b.ensureChannel()
		if err != nil {
			return nil, err
		}

		body, err := marshalEnvelope(env)
		if err != nil {
			return nil, err
		}

		return nil, ch.PublishWithContext(ctx, ExchangeEvents, "", false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	})
	metrics.RecordBrokerPublish(err)
	if err != nil {
		return domain.NewError(domain.KindBackendUnavailable, op, err)
	}
	eventLog.LogEventPublished(ctx, ExchangeEvents, "")
	return nil
}

// Consume opens a dedicated channel for queueName with the given prefetch
// and returns a channel of Watermill-wrapped messages. Acks are manual:
// callers must call msg.Ack() or msg.Nack() exactly once per message.
// Reconnection on broker disconnect is the caller's responsibility via
// re-invoking Consume; the returned channel closes when the underlying
// AMQP channel does.
func (b *Broker) Consume(ctx context.Context, queueName string, prefetch int) (<-chan *message.Message, error) {
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, domain.NewError(domain.KindBackendUnavailable, "broker.Consume", err)
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		return nil, domain.NewError(domain.KindBackendUnavailable, "broker.Consume", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queueName, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, domain.NewError(domain.KindBackendUnavailable, "broker.Consume", err)
	}

	out := make(chan *message.Message)
	go func() {
		defer close(out)
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				msg := message.NewMessage(d.MessageId, d.Body)
				msg.Metadata.Set("amqp_delivery_tag", fmt.Sprintf("%d", d.DeliveryTag))
				attachAckHandlers(msg, d)
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// attachAckHandlers wires msg.Ack()/msg.Nack() to the underlying AMQP
// delivery acknowledgment, giving callers the explicit manual-ack model
// the spec requires without exposing amqp091.Delivery directly.
func attachAckHandlers(msg *message.Message, d amqp.Delivery) {
	go func() {
		select {
		case <-msg.Acked():
			_ = d.Ack(false)
		case <-msg.Nacked():
			_ = d.Nack(false, false)
		}
	}()
}
