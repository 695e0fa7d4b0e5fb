package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error the way spec.md §7 taxonomizes failures: not as
// distinct Go types, but as a small closed set of kinds that callers branch
// on to decide retry/DLQ/4xx behavior.
type Kind int

const (
	// KindInvalidInput marks malformed or unauthenticated admission requests.
	// Never retried; surfaced as 4xx.
	KindInvalidInput Kind = iota
	// KindNotFound marks an unknown product or user id. Orchestrator
	// sources treat this as an empty result, never fatal.
	KindNotFound
	// KindBackendUnavailable marks a graph/vector/broker connection failure.
	KindBackendUnavailable
	// KindBackendFailure marks a backend that responded with an error.
	KindBackendFailure
	// KindExhausted marks a retry budget exceeded; routes to the DLQ.
	KindExhausted
	// KindInternal marks a logic invariant violation. Never retried.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindNotFound:
		return "NotFound"
	case KindBackendUnavailable:
		return "BackendUnavailable"
	case KindBackendFailure:
		return "BackendFailure"
	case KindExhausted:
		return "Exhausted"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Retryable reports whether a worker should enter the retry flow (§4.5.1)
// for an error of this kind.
func (k Kind) Retryable() bool {
	return k == KindBackendUnavailable || k == KindBackendFailure
}

// Error wraps an underlying error with a Kind for cross-package dispatch.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a Kind-tagged error.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal when err
// does not carry one.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
