// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package projector

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/orbitlane/recoengine/internal/broker"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/graphstore"
	"github.com/orbitlane/recoengine/internal/logging"
)

// BatchWriter is the graph store's batch write surface.
type BatchWriter interface {
	RecordBatch(ctx context.Context, ins []domain.Interaction) (int, error)
}

// BatchWorker is the alternate §4.5.2 graph projector: it accumulates
// decoded interactions in memory and commits them with one batch write
// instead of acking one message at a time. Malformed or invalid envelopes
// are rejected immediately, the same as Worker; the fixed retry schedule
// does not apply to a flush failure: every delivery of the failed batch is
// nacked, which the broker adapter turns into a reject without requeue, so
// the DLX routes the whole batch to the dead letter queue.
type BatchWorker struct {
	Name     string
	Queue    string
	Prefetch int
	Size     int
	Interval time.Duration
	Consumer Consumer
	Writer   BatchWriter

	mu      sync.Mutex
	buf     []domain.Interaction
	pending []*message.Message
}

// String satisfies suture's service-naming convention.
func (w *BatchWorker) String() string {
	if w.Name != "" {
		return w.Name
	}
	return "batch-projector-" + w.Queue
}

// Serve consumes w.Queue, buffering interactions and flushing on whichever
// of the size or interval threshold is reached first. ctx cancellation
// flushes the residual buffer once before returning.
func (w *BatchWorker) Serve(ctx context.Context) error {
	size := w.Size
	if size <= 0 {
		size = 100
	}
	interval := w.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	deliveries, err := w.Consumer.Consume(ctx, w.Queue, w.Prefetch)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.flush(context.Background())
			return ctx.Err()
		case <-ticker.C:
			w.flush(ctx)
		case msg, ok := <-deliveries:
			if !ok {
				w.flush(context.Background())
				return errors.New("projector: delivery channel closed for " + w.Queue)
			}
			w.accept(ctx, msg, size)
		}
	}
}

func (w *BatchWorker) accept(ctx context.Context, msg *message.Message, size int) {
	env, err := broker.UnmarshalEnvelope(msg.Payload)
	if err != nil {
		msg.Nack()
		return
	}
	if err := normalizeEnvelope(&env); err != nil {
		msg.Nack()
		return
	}

	w.mu.Lock()
	w.buf = append(w.buf, domain.Interaction{
		UserID:    env.UserID,
		ProductID: env.ProductID,
		Type:      env.EventType,
		EventTime: env.EventTime,
		SessionID: env.UserSession,
	})
	w.pending = append(w.pending, msg)
	full := len(w.buf) >= size
	w.mu.Unlock()

	if full {
		w.flush(ctx)
	}
}

// flush commits the buffered interactions with one RecordBatch call. On
// success every buffered delivery is acked; on failure every buffered
// delivery is nacked, which dead-letters the whole batch without requeue.
func (w *BatchWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.buf) == 0 {
		w.mu.Unlock()
		return
	}
	buf := w.buf
	pending := w.pending
	w.buf = nil
	w.pending = nil
	w.mu.Unlock()

	if _, err := w.Writer.RecordBatch(ctx, buf); err != nil {
		logging.Error().Str("queue", w.Queue).Int("count", len(buf)).Err(err).
			Msg("projector: batch flush failed, dead-lettering batch")
		for _, msg := range pending {
			msg.Nack()
		}
		return
	}
	for _, msg := range pending {
		msg.Ack()
	}
	logging.Info().Str("queue", w.Queue).Int("count", len(buf)).Msg("projector: batch flush committed")
}

var _ BatchWriter = (*graphstore.Store)(nil)
