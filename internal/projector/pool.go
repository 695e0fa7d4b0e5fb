// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package projector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/orbitlane/recoengine/internal/broker"
	"github.com/orbitlane/recoengine/internal/config"
)

// Pool supervises PerQueue workers for each of the two projector queues.
// It is itself a suture.Service, so it composes directly into the
// process's root supervisor tree as a single data-layer child.
type Pool struct {
	sup *suture.Supervisor
}

// NewPool builds the worker fleet. graphApplier and vectorApplier are the
// Appliers for events.neo4j and events.qdrant respectively; passing the
// same Consumer/Republisher to every worker is safe since broker.Broker
// opens an independent AMQP channel per Consume call.
func NewPool(logger *slog.Logger, cfg config.WorkerConfig, schedule []time.Duration, consumer Consumer, republisher Republisher, graphApplier, vectorApplier Applier, deadLetter DeadLetterSink) *Pool {
	handler := &sutureslog.Handler{Logger: logger}
	sup := suture.New("projector-pool", suture.Spec{EventHook: handler.MustHook()})

	perQueue := cfg.PerQueue
	if perQueue <= 0 {
		perQueue = 1
	}

	queues := []struct {
		name    string
		applier Applier
		label   string
	}{
		{broker.QueueNeo4j, graphApplier, "graph"},
		{broker.QueueQdrant, vectorApplier, "vector"},
	}

	for _, q := range queues {
		for i := 0; i < perQueue; i++ {
			sup.Add(&Worker{
				Name:        fmt.Sprintf("projector-%s-%d", q.label, i),
				Queue:       q.name,
				Prefetch:    cfg.Prefetch,
				Consumer:    consumer,
				Republisher: republisher,
				Applier:     q.applier,
				Schedule:    schedule,
				DeadLetter:  deadLetter,
			})
		}
	}

	return &Pool{sup: sup}
}

// Serve runs the supervised worker fleet until ctx is cancelled.
func (p *Pool) Serve(ctx context.Context) error {
	return p.sup.Serve(ctx)
}

// String satisfies suture's service-naming convention.
func (p *Pool) String() string {
	return "projector-pool"
}
