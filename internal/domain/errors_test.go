package domain

import (
	"errors"
	"testing"
)

func TestKindOfUnwrapsTaggedError(t *testing.T) {
	base := errors.New("boom")
	wrapped := NewError(KindBackendFailure, "graphstore.Collaborative", base)
	if got := KindOf(wrapped); got != KindBackendFailure {
		t.Errorf("KindOf() = %v, want %v", got, KindBackendFailure)
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf(plain) = %v, want %v", got, KindInternal)
	}
}

func TestKindRetryable(t *testing.T) {
	retryable := []Kind{KindBackendUnavailable, KindBackendFailure}
	notRetryable := []Kind{KindInvalidInput, KindNotFound, KindExhausted, KindInternal}
	for _, k := range retryable {
		if !k.Retryable() {
			t.Errorf("%v should be retryable", k)
		}
	}
	for _, k := range notRetryable {
		if k.Retryable() {
			t.Errorf("%v should not be retryable", k)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("root cause")
	err := NewError(KindInternal, "op", base)
	if !errors.Is(err, base) {
		t.Error("errors.Is should see through the wrapped error")
	}
}
