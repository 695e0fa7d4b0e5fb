// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package control

import (
	"context"

	"github.com/orbitlane/recoengine/internal/broker"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/orchestrator"
)

// BrokerSurface is the broker's introspection surface the control service
// needs (spec.md §4.3 "Queue introspection").
type BrokerSurface interface {
	Health() broker.Health
	QueueInfo(name string) (broker.QueueInfo, error)
	Purge(name string) (int, error)
}

// OrchestratorSurface is the orchestrator's health probe.
type OrchestratorSurface interface {
	Health(ctx context.Context) orchestrator.Health
}

// DeadLetterSurface is the local dead-letter mirror's read surface, used
// for the DLQPeek operator-visibility extension (SPEC_FULL.md §4).
type DeadLetterSurface interface {
	Peek(ctx context.Context, limit int) ([]domain.Envelope, error)
	Count(ctx context.Context) (int, error)
	Purge(ctx context.Context) (int, error)
}

// Service is the control surface (C7): a read-mostly facade combining
// broker, graph/vector, and dead-letter health and introspection.
type Service struct {
	broker     BrokerSurface
	orch       OrchestratorSurface
	deadLetter DeadLetterSurface
}

// New builds a control Service. deadLetter may be nil, in which case DLQ
// operations report an empty result rather than failing.
func New(b BrokerSurface, o OrchestratorSurface, dl DeadLetterSurface) *Service {
	return &Service{broker: b, orch: o, deadLetter: dl}
}

// Health is the aggregate process health (spec.md §4.7): degraded if the
// broker is down or either backing store is unreachable.
type Health struct {
	Status       string            `json:"status"`
	Broker       broker.Health     `json:"broker"`
	Graph        bool              `json:"graph_reachable"`
	Vector       bool              `json:"vector_reachable"`
	GraphStats   domain.GraphStats `json:"graph_stats"`
	VectorPoints int               `json:"vector_points"`
	DLQEntries   int               `json:"dlq_entries"`
}

// Health aggregates broker, graph, and vector health into one status.
func (s *Service) Health(ctx context.Context) Health {
	brokerHealth := s.broker.Health()
	orchHealth := s.orch.Health(ctx)

	h := Health{
		Broker:       brokerHealth,
		Graph:        orchHealth.Graph,
		Vector:       orchHealth.Vector,
		GraphStats:   orchHealth.Stats,
		VectorPoints: orchHealth.Points,
	}
	if s.deadLetter != nil {
		if n, err := s.deadLetter.Count(ctx); err == nil {
			h.DLQEntries = n
		}
	}

	if brokerHealth.Status == "up" && h.Graph && h.Vector {
		h.Status = "ok"
	} else {
		h.Status = "degraded"
	}
	return h
}

// QueueInfo reports a single queue's depth and consumer count (spec.md
// §4.3, §6.3 GET /rabbitmq/queues/{name}).
func (s *Service) QueueInfo(name string) (broker.QueueInfo, error) {
	return s.broker.QueueInfo(name)
}

// PurgeResult is the result of Purge.
type PurgeResult struct {
	Status  string `json:"status"`
	Removed int    `json:"removed"`
}

// Purge empties a queue (§6.3 POST /rabbitmq/queues/{name}/purge).
func (s *Service) Purge(name string) (PurgeResult, error) {
	n, err := s.broker.Purge(name)
	if err != nil {
		return PurgeResult{}, err
	}
	return PurgeResult{Status: "purged", Removed: n}, nil
}

// DLQPeekResult is the result of DLQPeek.
type DLQPeekResult struct {
	Count     int              `json:"count"`
	Envelopes []domain.Envelope `json:"envelopes"`
}

// DLQPeek returns up to limit dead-lettered envelopes without consuming
// them, for operator visibility (SPEC_FULL.md §4 item 4). Returns an empty
// result, not an error, when no dead-letter mirror is configured.
func (s *Service) DLQPeek(ctx context.Context, limit int) (DLQPeekResult, error) {
	if s.deadLetter == nil {
		return DLQPeekResult{}, nil
	}
	envs, err := s.deadLetter.Peek(ctx, limit)
	if err != nil {
		return DLQPeekResult{}, err
	}
	return DLQPeekResult{Count: len(envs), Envelopes: envs}, nil
}

// DLQPurge removes every mirrored dead-letter envelope.
func (s *Service) DLQPurge(ctx context.Context) (PurgeResult, error) {
	if s.deadLetter == nil {
		return PurgeResult{Status: "purged", Removed: 0}, nil
	}
	n, err := s.deadLetter.Purge(ctx)
	if err != nil {
		return PurgeResult{}, err
	}
	return PurgeResult{Status: "purged", Removed: n}, nil
}

var (
	_ BrokerSurface       = (*broker.Broker)(nil)
	_ OrchestratorSurface = (*orchestrator.Orchestrator)(nil)
)
