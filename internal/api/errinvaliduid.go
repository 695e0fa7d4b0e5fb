// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import "errors"

var (
	errInvalidUID   = errors.New("api: uid path parameter must be a positive integer")
	errInvalidQueue = errors.New("api: queue name path parameter must not be empty")
)
