// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package projector

import (
	"context"

	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/graphstore"
)

// Applier projects a decoded envelope into a backing store. Each queue
// gets its own Applier: the graph queue writes the interaction edge, the
// vector queue is reserved for embedding generation.
type Applier interface {
	Apply(ctx context.Context, env domain.Envelope) error
}

// GraphWriter is the graph store's write surface a graph Applier needs.
type GraphWriter interface {
	RecordInteraction(ctx context.Context, in domain.Interaction) error
}

type graphApplier struct {
	writer GraphWriter
}

// NewGraphApplier returns an Applier that records the envelope as an
// interaction edge on writer.
func NewGraphApplier(writer GraphWriter) Applier {
	return graphApplier{writer: writer}
}

func (a graphApplier) Apply(ctx context.Context, env domain.Envelope) error {
	return a.writer.RecordInteraction(ctx, domain.Interaction{
		UserID:    env.UserID,
		ProductID: env.ProductID,
		Type:      env.EventType,
		EventTime: env.EventTime,
		SessionID: env.UserSession,
	})
}

type noopApplier struct{}

// NewVectorApplier returns an Applier that always succeeds without doing
// any work. Embedding generation needs a real text/image payload and a
// model client, neither of which exists on the interaction envelope; the
// vector side of the pipeline is wired up to the same queue/retry/DLQ
// topology as the graph side so that plugging in a real embedding call
// later is a one-function change, not a new projector.
func NewVectorApplier() Applier {
	return noopApplier{}
}

func (noopApplier) Apply(context.Context, domain.Envelope) error {
	return nil
}

var _ GraphWriter = (*graphstore.Store)(nil)
