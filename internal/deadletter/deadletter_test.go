// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package deadletter

import (
	"context"
	"testing"
	"time"

	"github.com/orbitlane/recoengine/internal/config"
	"github.com/orbitlane/recoengine/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(config.DeadLetterConfig{Path: dir, TTL: time.Hour})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorePutPeekCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	env := domain.Envelope{ProductID: 42, UserID: 7, EventType: domain.EventPurchase, UserSession: "s1"}
	if err := s.Put(ctx, env); err != nil {
		t.Fatalf("Put: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Count = %d, %v, want 1, nil", n, err)
	}

	out, err := s.Peek(ctx, 10)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if len(out) != 1 || out[0].ProductID != 42 {
		t.Fatalf("Peek = %+v, want one entry with ProductID 42", out)
	}
}

func TestStorePeekLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Put(ctx, domain.Envelope{ProductID: i}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	out, err := s.Peek(ctx, 2)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Peek limit = %d entries, want 2", len(out))
	}
}

func TestStorePurge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Put(ctx, domain.Envelope{ProductID: i}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	n, err := s.Purge(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Purge = %d, %v, want 3, nil", n, err)
	}

	count, err := s.Count(ctx)
	if err != nil || count != 0 {
		t.Fatalf("Count after purge = %d, %v, want 0, nil", count, err)
	}
}
