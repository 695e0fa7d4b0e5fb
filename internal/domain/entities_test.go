package domain

import (
	"testing"
	"time"
)

func TestEventTypeWeight(t *testing.T) {
	cases := []struct {
		typ  EventType
		want float64
	}{
		{EventPurchase, 80},
		{EventCart, 30},
		{EventView, 1},
		{EventType("bogus"), 0},
	}
	for _, c := range cases {
		if got := c.typ.Weight(); got != c.want {
			t.Errorf("%s.Weight() = %v, want %v", c.typ, got, c.want)
		}
	}
}

func TestEventTypeValid(t *testing.T) {
	for _, v := range []EventType{EventView, EventCart, EventPurchase} {
		if !v.Valid() {
			t.Errorf("%s should be valid", v)
		}
	}
	if EventType("wishlist").Valid() {
		t.Error("wishlist should not be valid")
	}
}

func TestNormalizeTime(t *testing.T) {
	in := time.Date(2025, 1, 30, 10, 15, 0, 123456000, time.FixedZone("x", 3600))
	got := NormalizeTime(in)
	if got.Nanosecond() != 0 {
		t.Errorf("expected microseconds truncated, got nanosecond=%d", got.Nanosecond())
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
}
