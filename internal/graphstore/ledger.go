// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package graphstore

import (
	"context"

	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/metrics"
)

// RecordInteraction appends a single edge to the ledger. It is idempotent
// with respect to the User and Product nodes it implicitly creates, but
// never with respect to the edge itself: every call inserts a new history
// row, even for an identical (user, product, type, time) tuple.
func (s *Store) RecordInteraction(ctx context.Context, in domain.Interaction) error {
	const op = "graphstore.RecordInteraction"
	in.EventTime = domain.NormalizeTime(in.EventTime)

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO interactions (user_id, product_id, event_type, event_time, session_id) VALUES (?, ?, ?, ?, ?)`,
		in.UserID, in.ProductID, string(in.Type), in.EventTime, nullableString(in.SessionID),
	)
	if err != nil {
		return wrapBackendErr(op, err)
	}
	s.idx.add(in)
	metrics.RecordGraphInteraction(string(in.Type))
	return nil
}

// RecordBatch commits a list of interactions in a single transaction. If
// any row fails to insert, the whole batch is rolled back and the
// in-memory index is left untouched.
func (s *Store) RecordBatch(ctx context.Context, ins []domain.Interaction) (int, error) {
	const op = "graphstore.RecordBatch"
	if len(ins) == 0 {
		return 0, nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrapBackendErr(op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO interactions (user_id, product_id, event_type, event_time, session_id) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, wrapBackendErr(op, err)
	}
	defer stmt.Close()

	normalized := make([]domain.Interaction, len(ins))
	for i, in := range ins {
		in.EventTime = domain.NormalizeTime(in.EventTime)
		normalized[i] = in
		if _, err := stmt.ExecContext(ctx, in.UserID, in.ProductID, string(in.Type), in.EventTime, nullableString(in.SessionID)); err != nil {
			return 0, wrapBackendErr(op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, wrapBackendErr(op, err)
	}

	s.idx.addBatch(normalized)
	for _, in := range normalized {
		metrics.RecordGraphInteraction(string(in.Type))
	}
	return len(normalized), nil
}

// SetProductCategory records product metadata used by TrendingByCategory.
// This is supplemental to the fixed INTERACTED-edge query set: category is
// sourced from the product catalog, not from behavioral events.
func (s *Store) SetProductCategory(ctx context.Context, productID int, category string) error {
	const op = "graphstore.SetProductCategory"
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO product_categories (product_id, category) VALUES (?, ?)
		 ON CONFLICT (product_id) DO UPDATE SET category = excluded.category`,
		productID, category,
	)
	if err != nil {
		return wrapBackendErr(op, err)
	}
	s.idx.setCategory(productID, category)
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
