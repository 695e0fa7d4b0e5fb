// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package projector

import (
	"time"

	"github.com/orbitlane/recoengine/internal/domain"
)

// normalizeEnvelope defaults event_time to now and leaves user_session
// untouched (an empty session id is a valid value elsewhere in the graph
// adapter's permissive-OR-null semantics), then validates the fields a
// projector cannot proceed without: user_id, product_id, event_type.
func normalizeEnvelope(env *domain.Envelope) error {
	if env.EventTime.IsZero() {
		env.EventTime = domain.NormalizeTime(time.Now())
	}
	if env.UserID <= 0 {
		return errMissingField
	}
	if env.ProductID <= 0 {
		return errMissingField
	}
	if !env.EventType.Valid() {
		return errMissingField
	}
	return nil
}
