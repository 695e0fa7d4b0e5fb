// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package graphstore

import (
	"context"
	"fmt"
)

// createSchema creates the append-only interaction ledger and its
// secondary indexes, plus the product_categories table that holds category
// tags. The interactions table is the only graph table: User, Product, and Session
// are never materialized as rows of their own, only as distinct values
// inside the edge table, mirroring the property-graph's implicit node
// creation on first INTERACTED edge.
func (s *Store) createSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS interactions (
			user_id    BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			event_type VARCHAR NOT NULL,
			event_time TIMESTAMP NOT NULL,
			session_id VARCHAR
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, product_id, event_time)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_product ON interactions(product_id, user_id, session_id, event_type)`,
		`CREATE TABLE IF NOT EXISTS product_categories (
			product_id BIGINT PRIMARY KEY,
			category   VARCHAR NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}
