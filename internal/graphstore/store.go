// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package graphstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/orbitlane/recoengine/internal/config"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/logging"
)

// Store is the graph store adapter (C1). It owns a DuckDB-backed
// append-only interaction ledger and an in-memory adjacency index rebuilt
// from that ledger at startup.
type Store struct {
	conn *sql.DB
	idx  *index
}

// New opens (creating if necessary) the DuckDB ledger at cfg.Path and
// rebuilds the in-memory index from its contents.
func New(cfg config.GraphConfig) (*Store, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("graphstore: create data dir: %w", err)
		}
	}

	conn, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("graphstore: open duckdb: %w", err)
	}
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn, idx: newIndex()}

	if err := s.createSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("graphstore: create schema: %w", err)
	}
	if err := s.rebuildIndex(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("graphstore: rebuild index: %w", err)
	}

	logging.Info().Int("interactions", s.idx.count()).Msg("graphstore ready")
	return s, nil
}

// Close releases the underlying DuckDB connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func wrapBackendErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return domain.NewError(domain.KindBackendFailure, op, err)
}
