// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordGraphQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		duration  time.Duration
		err       error
	}{
		{name: "collaborative success", operation: "collaborative", duration: 10 * time.Millisecond, err: nil},
		{name: "trending success", operation: "trending", duration: 5 * time.Millisecond, err: nil},
		{name: "similar products failure", operation: "similar_products", duration: 100 * time.Millisecond, err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errsBefore := testutil.ToFloat64(GraphQueryErrors.WithLabelValues(tt.operation))
			RecordGraphQuery(tt.operation, tt.duration, tt.err)
			errsAfter := testutil.ToFloat64(GraphQueryErrors.WithLabelValues(tt.operation))
			if tt.err != nil && errsAfter != errsBefore+1 {
				t.Errorf("expected error counter to increment, before=%v after=%v", errsBefore, errsAfter)
			}
			if tt.err == nil && errsAfter != errsBefore {
				t.Errorf("expected error counter unchanged, before=%v after=%v", errsBefore, errsAfter)
			}
		})
	}
}

func TestRecordGraphInteraction(t *testing.T) {
	before := testutil.ToFloat64(GraphInteractionsTotal.WithLabelValues("purchase"))
	RecordGraphInteraction("purchase")
	after := testutil.ToFloat64(GraphInteractionsTotal.WithLabelValues("purchase"))
	if after != before+1 {
		t.Errorf("GraphInteractionsTotal = %v, want %v", after, before+1)
	}
}

func TestRecordVectorSearch(t *testing.T) {
	RecordVectorSearch("mmr", 15*time.Millisecond)

	count := testutil.CollectAndCount(VectorSearchDuration)
	if count == 0 {
		t.Error("expected VectorSearchDuration to have observations")
	}
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{name: "GET recommendations 200", method: "GET", endpoint: "/orchestrator/recommendations", statusCode: "200", duration: 50 * time.Millisecond},
		{name: "POST events 201", method: "POST", endpoint: "/events", statusCode: "201", duration: 5 * time.Millisecond},
		{name: "GET recommendations 500", method: "GET", endpoint: "/orchestrator/recommendations", statusCode: "500", duration: 200 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("APIRequestsTotal = %v, want %v", after, before+1)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordAdmission(t *testing.T) {
	before := testutil.ToFloat64(AdmissionEventsTotal.WithLabelValues("view"))
	RecordAdmission("view", "")
	after := testutil.ToFloat64(AdmissionEventsTotal.WithLabelValues("view"))
	if after != before+1 {
		t.Errorf("AdmissionEventsTotal = %v, want %v", after, before+1)
	}

	rejBefore := testutil.ToFloat64(AdmissionRejectedTotal.WithLabelValues("invalid_event_type"))
	RecordAdmission("", "invalid_event_type")
	rejAfter := testutil.ToFloat64(AdmissionRejectedTotal.WithLabelValues("invalid_event_type"))
	if rejAfter != rejBefore+1 {
		t.Errorf("AdmissionRejectedTotal = %v, want %v", rejAfter, rejBefore+1)
	}
}

func TestRecordBrokerPublish(t *testing.T) {
	before := testutil.ToFloat64(BrokerMessagesPublished)
	RecordBrokerPublish(nil)
	if got := testutil.ToFloat64(BrokerMessagesPublished); got != before+1 {
		t.Errorf("BrokerMessagesPublished = %v, want %v", got, before+1)
	}

	errBefore := testutil.ToFloat64(BrokerPublishErrors)
	RecordBrokerPublish(errors.New("channel closed"))
	if got := testutil.ToFloat64(BrokerPublishErrors); got != errBefore+1 {
		t.Errorf("BrokerPublishErrors = %v, want %v", got, errBefore+1)
	}
}

func TestRecordBrokerConsume(t *testing.T) {
	before := testutil.ToFloat64(BrokerMessagesConsumed.WithLabelValues("events.neo4j"))
	RecordBrokerConsume("events.neo4j", 2*time.Millisecond)
	after := testutil.ToFloat64(BrokerMessagesConsumed.WithLabelValues("events.neo4j"))
	if after != before+1 {
		t.Errorf("BrokerMessagesConsumed = %v, want %v", after, before+1)
	}
}

func TestRecordProjectorOutcome(t *testing.T) {
	appliedBefore := testutil.ToFloat64(ProjectorAppliedTotal.WithLabelValues("events.qdrant"))
	RecordProjectorOutcome("events.qdrant", false, false)
	if got := testutil.ToFloat64(ProjectorAppliedTotal.WithLabelValues("events.qdrant")); got != appliedBefore+1 {
		t.Errorf("ProjectorAppliedTotal = %v, want %v", got, appliedBefore+1)
	}

	retryBefore := testutil.ToFloat64(ProjectorRetriesTotal.WithLabelValues("events.qdrant"))
	RecordProjectorOutcome("events.qdrant", true, false)
	if got := testutil.ToFloat64(ProjectorRetriesTotal.WithLabelValues("events.qdrant")); got != retryBefore+1 {
		t.Errorf("ProjectorRetriesTotal = %v, want %v", got, retryBefore+1)
	}

	dlqBefore := testutil.ToFloat64(ProjectorDeadLetteredTotal.WithLabelValues("events.qdrant"))
	RecordProjectorOutcome("events.qdrant", false, true)
	if got := testutil.ToFloat64(ProjectorDeadLetteredTotal.WithLabelValues("events.qdrant")); got != dlqBefore+1 {
		t.Errorf("ProjectorDeadLetteredTotal = %v, want %v", got, dlqBefore+1)
	}
}

func TestDLQGauges(t *testing.T) {
	RecordDLQEntry()
	SetDLQSize(3)
	if got := testutil.ToFloat64(DLQEntriesTotal); got != 3 {
		t.Errorf("DLQEntriesTotal = %v, want 3", got)
	}

	purgedBefore := testutil.ToFloat64(DLQMessagesPurged)
	RecordDLQPurge(3)
	if got := testutil.ToFloat64(DLQMessagesPurged); got != purgedBefore+3 {
		t.Errorf("DLQMessagesPurged = %v, want %v", got, purgedBefore+3)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsServedTotal.WithLabelValues("browsing", "trending"))
	RecordRecommendation("browsing", 25*time.Millisecond, map[string]int{"trending": 4, "behavioral": 2})
	after := testutil.ToFloat64(RecommendationsServedTotal.WithLabelValues("browsing", "trending"))
	if after != before+4 {
		t.Errorf("RecommendationsServedTotal[trending] = %v, want %v", after, before+4)
	}
}

func TestRecordModeClassification(t *testing.T) {
	before := testutil.ToFloat64(ModeClassifiedTotal.WithLabelValues("cold_start"))
	RecordModeClassification("cold_start")
	after := testutil.ToFloat64(ModeClassifiedTotal.WithLabelValues("cold_start"))
	if after != before+1 {
		t.Errorf("ModeClassifiedTotal = %v, want %v", after, before+1)
	}
}

func TestCircuitBreakerMetrics(t *testing.T) {
	CircuitBreakerState.WithLabelValues("broker").Set(1)
	CircuitBreakerRequests.WithLabelValues("broker", "success").Inc()
	CircuitBreakerTransitions.WithLabelValues("broker", "closed", "open").Inc()

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("broker")); got != 1 {
		t.Errorf("CircuitBreakerState = %v, want 1", got)
	}
}

func TestCacheMetrics(t *testing.T) {
	CacheHits.WithLabelValues("recommendations").Inc()
	CacheMisses.WithLabelValues("recommendations").Inc()
	CacheSize.WithLabelValues("recommendations").Set(42)
	CacheEvictions.WithLabelValues("recommendations").Inc()

	if got := testutil.ToFloat64(CacheSize.WithLabelValues("recommendations")); got != 42 {
		t.Errorf("CacheSize = %v, want 42", got)
	}
}

func TestAppMetrics(t *testing.T) {
	AppInfo.WithLabelValues("1.0.0", "go1.24").Set(1)
	AppUptime.Set(3600)

	if got := testutil.ToFloat64(AppUptime); got != 3600 {
		t.Errorf("AppUptime = %v, want 3600", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordGraphQuery("trending", time.Millisecond, nil)
			RecordBrokerPublish(nil)
			RecordAdmission("view", "")
		}()
	}
	wg.Wait()
}
