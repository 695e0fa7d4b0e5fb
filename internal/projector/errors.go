// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package projector

import "errors"

var (
	// errMalformedBody names a delivery body that cannot be decoded as an
	// envelope at all. No code path returns it: the workers nack such a
	// delivery on the decode error itself, so it is never retried and goes
	// straight to the DLQ.
	errMalformedBody = errors.New("projector: malformed envelope body")

	// errMissingField is returned when a decoded envelope lacks one of the
	// fields required to apply the interaction. Never retried.
	errMissingField = errors.New("projector: missing required field")
)
