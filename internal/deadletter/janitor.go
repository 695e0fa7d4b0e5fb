// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package deadletter

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/orbitlane/recoengine/internal/logging"
)

// Janitor periodically runs BadgerDB value-log garbage collection so that
// space from TTL-expired dead-letter mirror entries is reclaimed. It
// implements suture.Service so the supervisor tree restarts it on panic.
type Janitor struct {
	store    *Store
	interval time.Duration
}

// NewJanitor builds a Janitor for store, running GC every interval
// (default 10 minutes if interval <= 0).
func NewJanitor(store *Store, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Janitor{store: store, interval: interval}
}

// String satisfies suture's service-naming convention.
func (j *Janitor) String() string {
	return "deadletter-janitor"
}

// Serve runs GC on a ticker until ctx is cancelled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.runGC()
		}
	}
}

func (j *Janitor) runGC() {
	for {
		err := j.store.db.RunValueLogGC(0.5)
		if err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) {
				logging.Warn().Err(err).Msg("deadletter: value log gc failed")
			}
			return
		}
	}
}
