// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import "context"

// Page is a paginated recommendation response (spec.md §4.6.5).
type Page struct {
	Response
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// ForYou implements spec.md §4.6.5: request one page_size more than needed
// to detect a following page, then slice the window out.
func (o *Orchestrator) ForYou(ctx context.Context, req Request, page, pageSize int) (Page, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	req.Limit = page*pageSize + pageSize
	full, err := o.Recommend(ctx, req)
	if err != nil {
		return Page{}, err
	}

	lo := (page - 1) * pageSize
	hi := page * pageSize
	hasMore := len(full.Recommendations) > hi

	items := full.Recommendations
	if lo >= len(items) {
		items = nil
	} else {
		if hi > len(items) {
			hi = len(items)
		}
		items = items[lo:hi]
	}

	full.Recommendations = items
	full.TotalCount = len(items)
	full.SourcesUsed = uniqueSources(items)

	return Page{Response: full, Page: page, PageSize: pageSize, HasMore: hasMore}, nil
}
