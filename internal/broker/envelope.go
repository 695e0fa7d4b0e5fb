// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package broker

import (
	"time"

	json "github.com/goccy/go-json"

	"github.com/orbitlane/recoengine/internal/domain"
)

func marshalEnvelope(env domain.Envelope) ([]byte, error) {
	env.PublishedAt = domain.NormalizeTime(time.Now())
	return json.Marshal(env)
}

// UnmarshalEnvelope decodes a message body into an Envelope. Exported for
// projector use (C5 decodes what C3 delivers).
func UnmarshalEnvelope(body []byte) (domain.Envelope, error) {
	var env domain.Envelope
	err := json.Unmarshal(body, &env)
	return env, err
}
