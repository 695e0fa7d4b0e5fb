// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/orbitlane/recoengine/internal/admission"
	"github.com/orbitlane/recoengine/internal/broker"
	"github.com/orbitlane/recoengine/internal/control"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/orchestrator"
)

// fakeAdmission is an in-memory stand-in for AdmissionService.
type fakeAdmission struct {
	result    admission.Result
	batchN    int
	err       error
}

func (f *fakeAdmission) Admit(_ context.Context, _ admission.EventCreate, _ *int) (admission.Result, error) {
	return f.result, f.err
}

func (f *fakeAdmission) AdmitBatch(_ context.Context, evs []admission.EventCreate, _ *int) (admission.Result, int, error) {
	return f.result, f.batchN, f.err
}

// fakeOrchestrator is an in-memory stand-in for OrchestratorService.
type fakeOrchestrator struct {
	resp orchestrator.Response
	page orchestrator.Page
	mode orchestrator.UserModeResult
	err  error
}

func (f *fakeOrchestrator) Recommend(_ context.Context, _ orchestrator.Request) (orchestrator.Response, error) {
	return f.resp, f.err
}

func (f *fakeOrchestrator) ForYou(_ context.Context, _ orchestrator.Request, _, _ int) (orchestrator.Page, error) {
	return f.page, f.err
}

func (f *fakeOrchestrator) UserMode(_ context.Context, _, _ int) orchestrator.UserModeResult {
	return f.mode
}

// fakeControl is an in-memory stand-in for ControlService.
type fakeControl struct {
	health control.Health
	info   broker.QueueInfo
	purge  control.PurgeResult
	peek   control.DLQPeekResult
	err    error
}

func (f *fakeControl) Health(_ context.Context) control.Health { return f.health }
func (f *fakeControl) QueueInfo(_ string) (broker.QueueInfo, error) { return f.info, f.err }
func (f *fakeControl) Purge(_ string) (control.PurgeResult, error) { return f.purge, f.err }
func (f *fakeControl) DLQPeek(_ context.Context, _ int) (control.DLQPeekResult, error) {
	return f.peek, f.err
}
func (f *fakeControl) DLQPurge(_ context.Context) (control.PurgeResult, error) {
	return f.purge, f.err
}

func testRouter() http.Handler {
	deps := Deps{
		Admission:    &fakeAdmission{result: admission.Result{Status: "recorded"}},
		Orchestrator: &fakeOrchestrator{resp: orchestrator.Response{UserID: 1, Mode: domain.ModeColdStart}},
		Control:      &fakeControl{health: control.Health{Status: "ok"}},
	}
	return NewRouter(deps, []string{"*"}, 1000, time.Minute)
}

func TestPostEvent(t *testing.T) {
	body := strings.NewReader(`{"event_type":"view","product_id":1,"user_id":2,"user_session":"s1"}`)
	req := httptest.NewRequest(http.MethodPost, "/events", body)
	rec := httptest.NewRecorder()

	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPostEventMissingFieldsRejected(t *testing.T) {
	body := strings.NewReader(`{"event_type":"view"}`)
	req := httptest.NewRequest(http.MethodPost, "/events", body)
	rec := httptest.NewRecorder()

	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing product_id/session, got %d", rec.Code)
	}
}

func TestGetRecommendations(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orchestrator/recommendations/42?limit=5", nil)
	rec := httptest.NewRecorder()

	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"mode":"COLD_START"`) {
		t.Errorf("expected mode in body, got %s", rec.Body.String())
	}
}

func TestGetRecommendationsInvalidUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orchestrator/recommendations/not-a-number", nil)
	rec := httptest.NewRecorder()

	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric uid, got %d", rec.Code)
	}
}

func TestGetBrokerHealthDegraded(t *testing.T) {
	deps := Deps{
		Admission:    &fakeAdmission{},
		Orchestrator: &fakeOrchestrator{},
		Control:      &fakeControl{health: control.Health{Status: "degraded", Broker: broker.Health{Status: "down"}}},
	}
	router := NewRouter(deps, nil, 0, time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/rabbitmq/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for down broker, got %d", rec.Code)
	}
}

func TestPostQueuePurge(t *testing.T) {
	deps := Deps{
		Admission:    &fakeAdmission{},
		Orchestrator: &fakeOrchestrator{},
		Control:      &fakeControl{purge: control.PurgeResult{Status: "purged", Removed: 3}},
	}
	router := NewRouter(deps, nil, 0, time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/rabbitmq/queues/events.neo4j/purge", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"removed":3`) {
		t.Errorf("expected removed count in body, got %s", rec.Body.String())
	}
}
