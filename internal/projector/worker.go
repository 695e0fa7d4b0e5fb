// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package projector

import (
	"context"
	"errors"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/orbitlane/recoengine/internal/broker"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/logging"
	"github.com/orbitlane/recoengine/internal/metrics"
)

var eventLog = logging.NewEventLogger()

// Consumer is the broker's read surface a worker needs.
type Consumer interface {
	Consume(ctx context.Context, queueName string, prefetch int) (<-chan *message.Message, error)
}

// Republisher is the broker's write surface the retry flow needs to put an
// envelope back on the fanout exchange.
type Republisher interface {
	Publish(ctx context.Context, env domain.Envelope) error
}

// DeadLetterSink mirrors an envelope whose retry schedule is exhausted so
// operators can inspect it via DLQPeek without consuming the live queue.
// Optional: a nil sink simply skips the mirror write.
type DeadLetterSink interface {
	Put(ctx context.Context, env domain.Envelope) error
}

// Worker consumes one queue and applies every delivery through Applier,
// retrying transient failures on Schedule before letting a Nack fall
// through to the dead letter queue (spec.md §4.5.1). It implements
// suture.Service so a crash mid-delivery triggers an isolated restart
// rather than taking down its sibling workers.
type Worker struct {
	Name        string
	Queue       string
	Prefetch    int
	Consumer    Consumer
	Republisher Republisher
	Applier     Applier
	Schedule    []time.Duration
	DeadLetter  DeadLetterSink
}

// String satisfies suture's service-naming convention.
func (w *Worker) String() string {
	if w.Name != "" {
		return w.Name
	}
	return "projector-worker-" + w.Queue
}

// Serve consumes w.Queue until ctx is cancelled or the delivery channel
// closes. A closed channel or Consume error returns an error so suture
// restarts the worker with its configured backoff.
func (w *Worker) Serve(ctx context.Context) error {
	deliveries, err := w.Consumer.Consume(ctx, w.Queue, w.Prefetch)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				return errors.New("projector: delivery channel closed for " + w.Queue)
			}
			w.handle(ctx, msg)
		}
	}
}

// handle decodes, validates, and applies one delivery, dispatching to the
// retry flow on a transient apply failure.
func (w *Worker) handle(ctx context.Context, msg *message.Message) {
	env, err := broker.UnmarshalEnvelope(msg.Payload)
	if err != nil {
		logging.Warn().Str("queue", w.Queue).Err(err).Msg("projector: malformed envelope, routing to dead letter queue")
		msg.Nack()
		return
	}

	if err := normalizeEnvelope(&env); err != nil {
		logging.Warn().Str("queue", w.Queue).Err(err).Msg("projector: envelope missing required field, routing to dead letter queue")
		msg.Nack()
		return
	}

	start := time.Now()
	if err := w.Applier.Apply(ctx, env); err != nil {
		w.retry(ctx, msg, env, err)
		return
	}
	metrics.RecordBrokerConsume(w.Queue, time.Since(start))
	metrics.RecordProjectorOutcome(w.Queue, false, false)
	msg.Ack()
}

// retry implements the fixed-delay retry schedule. A successful republish
// acknowledges the original delivery since the interaction now lives on a
// fresh message; an exhausted schedule stamps FinalError/FailedAt and
// rejects the original delivery without requeue so the DLX routes it to
// the dead letter queue.
func (w *Worker) retry(ctx context.Context, msg *message.Message, env domain.Envelope, applyErr error) {
	if env.RetryCount >= len(w.Schedule) {
		now := time.Now().UTC()
		env.FinalError = applyErr.Error()
		env.FailedAt = &now
		eventLog.LogDLQEntry(ctx, w.Queue, applyErr, env.RetryCount, env.UserID, env.UserSession)
		metrics.RecordProjectorOutcome(w.Queue, false, true)
		if w.DeadLetter != nil {
			if mirrorErr := w.DeadLetter.Put(ctx, env); mirrorErr != nil {
				logging.Warn().Str("queue", w.Queue).Err(mirrorErr).Msg("projector: dead letter mirror write failed")
			}
		}
		msg.Nack()
		return
	}

	delay := w.Schedule[env.RetryCount]
	now := time.Now().UTC()
	env.RetryCount++
	env.LastError = applyErr.Error()
	env.LastRetryAt = &now
	metrics.RecordProjectorOutcome(w.Queue, true, false)

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		msg.Nack()
		return
	}

	if err := w.Republisher.Publish(ctx, env); err != nil {
		logging.Error().Str("queue", w.Queue).Err(err).Msg("projector: republish failed, routing to dead letter queue")
		msg.Nack()
		return
	}
	msg.Ack()
}

var _ Consumer = (*broker.Broker)(nil)
var _ Republisher = (*broker.Broker)(nil)
