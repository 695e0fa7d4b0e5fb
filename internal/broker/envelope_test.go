// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package broker

import (
	"strings"
	"testing"
	"time"

	"github.com/orbitlane/recoengine/internal/domain"
)

func TestMarshalEnvelopeStampsPublishedAt(t *testing.T) {
	env := domain.Envelope{
		EventTime:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		EventType:   domain.EventView,
		ProductID:   10,
		UserID:      1,
		UserSession: "s1",
	}

	body, err := marshalEnvelope(env)
	if err != nil {
		t.Fatalf("marshalEnvelope() error = %v", err)
	}

	got, err := UnmarshalEnvelope(body)
	if err != nil {
		t.Fatalf("UnmarshalEnvelope() error = %v", err)
	}
	if got.PublishedAt.IsZero() {
		t.Error("PublishedAt should be stamped by marshalEnvelope")
	}
	if got.ProductID != 10 || got.EventType != domain.EventView {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

// TestMarshalEnvelopeWireFormat asserts the literal wire strings required
// by spec.md §6.1: event_time as "YYYY-MM-DD HH:MM:SS", published_at as
// ISO-8601 with millisecond precision. A Go-value round-trip test alone
// can't catch a regression to time.Time's default RFC3339 encoding.
func TestMarshalEnvelopeWireFormat(t *testing.T) {
	env := domain.Envelope{
		EventTime:   time.Date(2025, 1, 30, 10, 15, 0, 0, time.UTC),
		EventType:   domain.EventPurchase,
		ProductID:   12345,
		UserID:      678,
		UserSession: "s-abc",
	}

	body, err := marshalEnvelope(env)
	if err != nil {
		t.Fatalf("marshalEnvelope() error = %v", err)
	}

	got := string(body)
	if !strings.Contains(got, `"event_time":"2025-01-30 10:15:00"`) {
		t.Errorf("event_time not in spec.md §6.1 wire format: %s", got)
	}
	if strings.Contains(got, `"event_time":"2025-01-30T`) {
		t.Errorf("event_time regressed to RFC3339: %s", got)
	}

	const publishedAtPrefix = `"published_at":"`
	idx := strings.Index(got, publishedAtPrefix)
	if idx < 0 {
		t.Fatalf("published_at missing from wire body: %s", got)
	}
	rest := got[idx+len(publishedAtPrefix):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		t.Fatalf("malformed published_at in wire body: %s", got)
	}
	stamp := rest[:end]
	if _, err := time.Parse("2006-01-02T15:04:05.000Z", stamp); err != nil {
		t.Errorf("published_at %q not in ISO-8601-with-milliseconds form: %v", stamp, err)
	}
}

func TestUnmarshalEnvelopeRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalEnvelope([]byte("not json")); err == nil {
		t.Error("UnmarshalEnvelope() error = nil, want decode error")
	}
}
