// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package admission

import (
	"context"
	"time"

	"github.com/orbitlane/recoengine/internal/broker"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/graphstore"
	"github.com/orbitlane/recoengine/internal/metrics"
)

// EventCreate is the inbound shape of a single interaction event.
type EventCreate struct {
	EventTime   *time.Time       `json:"event_time,omitempty" validate:"omitempty"`
	EventType   domain.EventType `json:"event_type" validate:"required,oneof=view cart purchase"`
	ProductID   int              `json:"product_id" validate:"required,gt=0"`
	UserID      *int             `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	UserSession string           `json:"user_session" validate:"required"`
}

// Admitter is the graph store's write surface admission needs.
type Admitter interface {
	RecordInteraction(ctx context.Context, in domain.Interaction) error
	RecordBatch(ctx context.Context, ins []domain.Interaction) (int, error)
}

// Publisher is the broker's write surface admission needs.
type Publisher interface {
	Publish(ctx context.Context, env domain.Envelope) error
}

// Service dispatches admitted events to either the broker or the graph
// store directly, per the process-wide UseBroker switch.
type Service struct {
	graph     Admitter
	publisher Publisher
	useBroker bool
}

// New builds an admission Service. publisher may be nil when useBroker is
// false.
func New(graph Admitter, publisher Publisher, useBroker bool) *Service {
	return &Service{graph: graph, publisher: publisher, useBroker: useBroker}
}

// Result is returned by Admit/AdmitBatch, mirroring the "queued"/"recorded"
// acknowledgement strings of the entry contract.
type Result struct {
	Status string // "queued" or "recorded"
}

// resolveUserID applies the caller-identity override: an authenticated
// caller id always wins over a body-supplied user_id.
func resolveUserID(body *int, callerID *int) (int, bool) {
	if callerID != nil {
		return *callerID, true
	}
	if body != nil {
		return *body, true
	}
	return 0, false
}

// Admit validates and dispatches a single event. callerID is the user id
// resolved from an auth token, if any.
func (s *Service) Admit(ctx context.Context, ev EventCreate, callerID *int) (Result, error) {
	const op = "admission.Admit"

	uid, ok := resolveUserID(ev.UserID, callerID)
	if !ok {
		metrics.RecordAdmission("", "missing_user_id")
		return Result{}, domain.NewError(domain.KindInvalidInput, op, errMissingUserID)
	}

	eventTime := domain.NormalizeTime(time.Now())
	if ev.EventTime != nil {
		eventTime = domain.NormalizeTime(*ev.EventTime)
	}

	in := domain.Interaction{
		UserID:    uid,
		ProductID: ev.ProductID,
		Type:      ev.EventType,
		EventTime: eventTime,
		SessionID: ev.UserSession,
	}

	if s.useBroker {
		env := domain.Envelope{
			EventTime:   in.EventTime,
			EventType:   in.Type,
			ProductID:   in.ProductID,
			UserID:      in.UserID,
			UserSession: in.SessionID,
		}
		if err := s.publisher.Publish(ctx, env); err != nil {
			metrics.RecordAdmission("", "publish_failed")
			return Result{}, domain.NewError(domain.KindBackendUnavailable, op, err)
		}
		metrics.RecordAdmission(string(ev.EventType), "")
		return Result{Status: "queued"}, nil
	}

	if err := s.graph.RecordInteraction(ctx, in); err != nil {
		metrics.RecordAdmission("", "record_failed")
		return Result{}, domain.NewError(domain.KindBackendFailure, op, err)
	}
	metrics.RecordAdmission(string(ev.EventType), "")
	return Result{Status: "recorded"}, nil
}

// AdmitBatch admits a list of events. Elements with no resolvable user_id
// are silently skipped; if every element is skipped, the call fails with
// InvalidInput.
func (s *Service) AdmitBatch(ctx context.Context, evs []EventCreate, callerID *int) (Result, int, error) {
	const op = "admission.AdmitBatch"

	resolved := make([]domain.Interaction, 0, len(evs))
	for _, ev := range evs {
		uid, ok := resolveUserID(ev.UserID, callerID)
		if !ok {
			continue
		}
		eventTime := domain.NormalizeTime(time.Now())
		if ev.EventTime != nil {
			eventTime = domain.NormalizeTime(*ev.EventTime)
		}
		resolved = append(resolved, domain.Interaction{
			UserID:    uid,
			ProductID: ev.ProductID,
			Type:      ev.EventType,
			EventTime: eventTime,
			SessionID: ev.UserSession,
		})
	}
	if len(resolved) == 0 {
		return Result{}, 0, domain.NewError(domain.KindInvalidInput, op, errMissingUserID)
	}

	if s.useBroker {
		for _, in := range resolved {
			env := domain.Envelope{
				EventTime:   in.EventTime,
				EventType:   in.Type,
				ProductID:   in.ProductID,
				UserID:      in.UserID,
				UserSession: in.SessionID,
			}
			if err := s.publisher.Publish(ctx, env); err != nil {
				return Result{}, 0, domain.NewError(domain.KindBackendUnavailable, op, err)
			}
		}
		return Result{Status: "queued"}, len(resolved), nil
	}

	n, err := s.graph.RecordBatch(ctx, resolved)
	if err != nil {
		return Result{}, 0, domain.NewError(domain.KindBackendFailure, op, err)
	}
	return Result{Status: "recorded"}, n, nil
}

var _ Admitter = (*graphstore.Store)(nil)
var _ Publisher = (*broker.Broker)(nil)
