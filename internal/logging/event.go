// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package logging

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
)

// EventLogger provides specialized logging for broker event processing:
// admission publishes, projector consumption, retries, and dead-lettering.
type EventLogger struct {
	logger zerolog.Logger
}

// NewEventLogger creates a logger configured for event processing.
func NewEventLogger() *EventLogger {
	return &EventLogger{
		logger: With().Str("component", "eventprocessor").Logger(),
	}
}

// NewEventLoggerWithLogger creates an EventLogger with a custom logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value (copy-on-write semantics)
func NewEventLoggerWithLogger(logger zerolog.Logger) *EventLogger {
	return &EventLogger{
		logger: logger.With().Str("component", "eventprocessor").Logger(),
	}
}

// WithFields returns a new EventLogger with additional default fields.
func (e *EventLogger) WithFields(fields map[string]interface{}) *EventLogger {
	ctx := e.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &EventLogger{logger: ctx.Logger()}
}

// Debug logs a debug message.
func (e *EventLogger) Debug(msg string, fields ...interface{}) {
	event := e.logger.Debug()
	event = addFieldPairs(event, fields)
	event.Msg(msg)
}

// Info logs an info message.
func (e *EventLogger) Info(msg string, fields ...interface{}) {
	event := e.logger.Info()
	event = addFieldPairs(event, fields)
	event.Msg(msg)
}

// Warn logs a warning message.
func (e *EventLogger) Warn(msg string, fields ...interface{}) {
	event := e.logger.Warn()
	event = addFieldPairs(event, fields)
	event.Msg(msg)
}

// Error logs an error message.
func (e *EventLogger) Error(msg string, fields ...interface{}) {
	event := e.logger.Error()
	event = addFieldPairs(event, fields)
	event.Msg(msg)
}

// InfoContext logs an info message with context.
func (e *EventLogger) InfoContext(ctx context.Context, msg string, fields ...interface{}) {
	logger := e.loggerWithContext(ctx)
	event := logger.Info()
	event = addFieldPairs(event, fields)
	event.Msg(msg)
}

// DebugContext logs a debug message with context.
func (e *EventLogger) DebugContext(ctx context.Context, msg string, fields ...interface{}) {
	logger := e.loggerWithContext(ctx)
	event := logger.Debug()
	event = addFieldPairs(event, fields)
	event.Msg(msg)
}

// addFieldPairs adds key-value pairs to a zerolog event.
func addFieldPairs(e *zerolog.Event, fields []interface{}) *zerolog.Event {
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			e = e.Interface(key, fields[i+1])
		}
	}
	return e
}

// loggerWithContext returns a logger with context fields added.
func (e *EventLogger) loggerWithContext(ctx context.Context) zerolog.Logger {
	logCtx := e.logger.With()

	if correlationID := CorrelationIDFromContext(ctx); correlationID != "" {
		logCtx = logCtx.Str("correlation_id", correlationID)
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logCtx = logCtx.Str("request_id", requestID)
	}

	return logCtx.Logger()
}

// ============================================================
// Domain-Specific Event Logging Methods
// ============================================================

// LogEventReceived logs when an envelope is pulled off a projector queue.
func (e *EventLogger) LogEventReceived(ctx context.Context, queue string, eventType string, productID int) {
	e.InfoContext(ctx, "event received",
		"queue", queue,
		"event_type", eventType,
		"product_id", productID,
	)
}

// LogEventProcessed logs when an envelope is successfully applied.
func (e *EventLogger) LogEventProcessed(ctx context.Context, queue string, durationMs int64) {
	e.InfoContext(ctx, "event processed",
		"queue", queue,
		"duration_ms", durationMs,
	)
}

// LogEventFailed logs when applying an envelope fails.
func (e *EventLogger) LogEventFailed(ctx context.Context, queue string, err error) {
	logger := e.loggerWithContext(ctx)
	logger.Error().
		Str("queue", queue).
		Err(err).
		Msg("event processing failed")
}

// LogDLQEntry logs when an envelope's retry schedule is exhausted. The
// dead-letter path is the one place a raw envelope's user id, session id,
// and backend error detail reach a structured log line, so all three are
// sanitized first.
func (e *EventLogger) LogDLQEntry(ctx context.Context, queue string, err error, retryCount, userID int, sessionID string) {
	logger := e.loggerWithContext(ctx)
	logger.Warn().
		Str("queue", queue).
		Str("error", SanitizeError(err.Error())).
		Int("retry_count", retryCount).
		Str("user_id", SanitizeUserID(strconv.Itoa(userID))).
		Str("session_id", SanitizeSessionID(sessionID)).
		Msg("event sent to dead letter queue")
}

// LogEventPublished logs when an event is published to the broker exchange.
func (e *EventLogger) LogEventPublished(ctx context.Context, exchange, routingKey string) {
	e.DebugContext(ctx, "event published",
		"exchange", exchange,
		"routing_key", routingKey,
	)
}
