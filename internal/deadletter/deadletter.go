// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package deadletter

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/orbitlane/recoengine/internal/config"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/logging"
	"github.com/orbitlane/recoengine/internal/metrics"
)

// Store mirrors exhausted envelopes into BadgerDB so operators can inspect
// the dead letter queue without consuming from it.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (creating if necessary) the Badger directory at cfg.Path.
func Open(cfg config.DeadLetterConfig) (*Store, error) {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("deadletter: create data dir: %w", err)
		}
	}

	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("deadletter: open badger: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Close releases the underlying Badger handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put mirrors env with the store's TTL, keyed by a fresh time-ordered
// (version 7) UUID so that repeated dead-lettering of the same product/user
// never collides and key order follows insertion order.
func (s *Store) Put(_ context.Context, env domain.Envelope) error {
	const op = "deadletter.Put"
	body, err := json.Marshal(env)
	if err != nil {
		return domain.NewError(domain.KindInternal, op, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.NewError(domain.KindInternal, op, err)
	}
	key := []byte(id.String())
	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key, body).WithTTL(s.ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		return domain.NewError(domain.KindBackendFailure, op, err)
	}
	metrics.RecordDLQEntry()
	return nil
}

// Peek returns up to limit mirrored envelopes without removing them,
// newest first. A limit of 0 returns all entries.
func (s *Store) Peek(_ context.Context, limit int) ([]domain.Envelope, error) {
	const op = "deadletter.Peek"
	var out []domain.Envelope

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(out) >= limit {
				break
			}
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var env domain.Envelope
				if err := json.Unmarshal(val, &env); err != nil {
					return err
				}
				out = append(out, env)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewError(domain.KindBackendFailure, op, err)
	}
	return out, nil
}

// Count returns the number of mirrored envelopes currently retained.
func (s *Store) Count(_ context.Context) (int, error) {
	const op = "deadletter.Count"
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, domain.NewError(domain.KindBackendFailure, op, err)
	}
	return n, nil
}

// Purge removes every mirrored envelope and reports how many were removed.
func (s *Store) Purge(ctx context.Context) (int, error) {
	const op = "deadletter.Purge"
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, append([]byte(nil), it.Item().Key()...))
		}
		return nil
	})
	if err != nil {
		return 0, domain.NewError(domain.KindBackendFailure, op, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, domain.NewError(domain.KindBackendFailure, op, err)
	}

	logging.Info().Int("count", len(keys)).Msg("deadletter: purged")
	metrics.RecordDLQPurge(len(keys))
	_ = ctx
	return len(keys), nil
}
