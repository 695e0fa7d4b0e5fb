// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package control

import (
	"context"
	"errors"
	"testing"

	"github.com/orbitlane/recoengine/internal/broker"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/orchestrator"
)

type fakeBroker struct {
	health  broker.Health
	info    broker.QueueInfo
	purged  int
	infoErr error
	purgeErr error
}

func (f *fakeBroker) Health() broker.Health                         { return f.health }
func (f *fakeBroker) QueueInfo(_ string) (broker.QueueInfo, error)   { return f.info, f.infoErr }
func (f *fakeBroker) Purge(_ string) (int, error)                    { return f.purged, f.purgeErr }

type fakeOrch struct {
	health orchestrator.Health
}

func (f *fakeOrch) Health(_ context.Context) orchestrator.Health { return f.health }

type fakeDeadLetter struct {
	envs   []domain.Envelope
	count  int
	purged int
	err    error
}

func (f *fakeDeadLetter) Peek(_ context.Context, _ int) ([]domain.Envelope, error) {
	return f.envs, f.err
}
func (f *fakeDeadLetter) Count(_ context.Context) (int, error)  { return f.count, f.err }
func (f *fakeDeadLetter) Purge(_ context.Context) (int, error) { return f.purged, f.err }

func TestHealthOK(t *testing.T) {
	svc := New(
		&fakeBroker{health: broker.Health{Status: "up"}},
		&fakeOrch{health: orchestrator.Health{Graph: true, Vector: true}},
		&fakeDeadLetter{count: 2},
	)

	h := svc.Health(context.Background())
	if h.Status != "ok" {
		t.Fatalf("expected ok status, got %s", h.Status)
	}
	if h.DLQEntries != 2 {
		t.Errorf("expected dlq_entries=2, got %d", h.DLQEntries)
	}
}

func TestHealthDegradedWhenGraphUnreachable(t *testing.T) {
	svc := New(
		&fakeBroker{health: broker.Health{Status: "up"}},
		&fakeOrch{health: orchestrator.Health{Graph: false, Vector: true}},
		nil,
	)

	h := svc.Health(context.Background())
	if h.Status != "degraded" {
		t.Fatalf("expected degraded status, got %s", h.Status)
	}
}

func TestHealthDegradedWhenBrokerDown(t *testing.T) {
	svc := New(
		&fakeBroker{health: broker.Health{Status: "down"}},
		&fakeOrch{health: orchestrator.Health{Graph: true, Vector: true}},
		nil,
	)

	h := svc.Health(context.Background())
	if h.Status != "degraded" {
		t.Fatalf("expected degraded status, got %s", h.Status)
	}
}

func TestDLQPeekWithNoMirrorConfigured(t *testing.T) {
	svc := New(&fakeBroker{}, &fakeOrch{}, nil)

	result, err := svc.DLQPeek(context.Background(), 10)
	if err != nil {
		t.Fatalf("DLQPeek: %v", err)
	}
	if result.Count != 0 || result.Envelopes != nil {
		t.Errorf("expected empty result with no mirror, got %+v", result)
	}
}

func TestDLQPeekReturnsEnvelopes(t *testing.T) {
	envs := []domain.Envelope{{ProductID: 1}, {ProductID: 2}}
	svc := New(&fakeBroker{}, &fakeOrch{}, &fakeDeadLetter{envs: envs})

	result, err := svc.DLQPeek(context.Background(), 10)
	if err != nil {
		t.Fatalf("DLQPeek: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("expected count=2, got %d", result.Count)
	}
}

func TestPurgePropagatesError(t *testing.T) {
	wantErr := errors.New("queue purge failed")
	svc := New(&fakeBroker{purgeErr: wantErr}, &fakeOrch{}, nil)

	_, err := svc.Purge("events.neo4j")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected propagated error, got %v", err)
	}
}

func TestQueueInfo(t *testing.T) {
	svc := New(&fakeBroker{info: broker.QueueInfo{Messages: 5, Consumers: 1}}, &fakeOrch{}, nil)

	info, err := svc.QueueInfo("events.neo4j")
	if err != nil {
		t.Fatalf("QueueInfo: %v", err)
	}
	if info.Messages != 5 || info.Consumers != 1 {
		t.Errorf("unexpected queue info: %+v", info)
	}
}
