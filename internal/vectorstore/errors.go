// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package vectorstore

import "fmt"

// ErrInvalidQuery describes a search with neither a vector nor a text/image
// input to derive one. Search takes a vector and returns no error, so no
// code in this package returns it.
var ErrInvalidQuery = fmt.Errorf("vectorstore: search requires a vector, text, or image query")

func errDimensionMismatch(got, want int) error {
	return fmt.Errorf("vectorstore: vector has %d dimensions, collection expects %d", got, want)
}
