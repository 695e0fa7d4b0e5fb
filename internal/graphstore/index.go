// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package graphstore

import (
	"context"
	"sort"
	"sync"

	"github.com/orbitlane/recoengine/internal/domain"
)

// index is the in-memory adjacency projection of the interaction ledger.
// It trades the ledger's durability for O(edges touching a node) query
// latency instead of a table scan per request.
type index struct {
	mu sync.RWMutex

	byUser     map[int][]domain.Interaction
	byProduct  map[int][]domain.Interaction
	categories map[int]string
}

func newIndex() *index {
	return &index{
		byUser:     make(map[int][]domain.Interaction),
		byProduct:  make(map[int][]domain.Interaction),
		categories: make(map[int]string),
	}
}

func (ix *index) add(in domain.Interaction) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.byUser[in.UserID] = append(ix.byUser[in.UserID], in)
	ix.byProduct[in.ProductID] = append(ix.byProduct[in.ProductID], in)
}

func (ix *index) addBatch(ins []domain.Interaction) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, in := range ins {
		ix.byUser[in.UserID] = append(ix.byUser[in.UserID], in)
		ix.byProduct[in.ProductID] = append(ix.byProduct[in.ProductID], in)
	}
}

func (ix *index) setCategory(productID int, category string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.categories[productID] = category
}

func (ix *index) categoryOf(productID int) (string, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	c, ok := ix.categories[productID]
	return c, ok
}

func (ix *index) count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	n := 0
	for _, v := range ix.byUser {
		n += len(v)
	}
	return n
}

// userProducts returns the distinct products a user has ever interacted with.
func (ix *index) userProducts(userID int) map[int]struct{} {
	out := make(map[int]struct{})
	for _, in := range ix.byUser[userID] {
		out[in.ProductID] = struct{}{}
	}
	return out
}

// productUsers returns the distinct users that ever interacted with a product.
func (ix *index) productUsers(productID int) map[int]struct{} {
	out := make(map[int]struct{})
	for _, in := range ix.byProduct[productID] {
		out[in.UserID] = struct{}{}
	}
	return out
}

func (ix *index) users() []int {
	out := make([]int, 0, len(ix.byUser))
	for u := range ix.byUser {
		out = append(out, u)
	}
	sort.Ints(out)
	return out
}

func (ix *index) products() []int {
	out := make([]int, 0, len(ix.byProduct))
	for p := range ix.byProduct {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// rebuildIndex replays the ledger into a fresh in-memory index. Called once
// at startup; safe to call again to force a full reload.
func (s *Store) rebuildIndex(ctx context.Context) error {
	rows, err := s.conn.QueryContext(ctx, `SELECT user_id, product_id, event_type, event_time, session_id FROM interactions`)
	if err != nil {
		return err
	}
	defer rows.Close()

	fresh := newIndex()
	for rows.Next() {
		var in domain.Interaction
		var evType string
		var sessionID *string
		if err := rows.Scan(&in.UserID, &in.ProductID, &evType, &in.EventTime, &sessionID); err != nil {
			return err
		}
		in.Type = domain.EventType(evType)
		if sessionID != nil {
			in.SessionID = *sessionID
		}
		fresh.byUser[in.UserID] = append(fresh.byUser[in.UserID], in)
		fresh.byProduct[in.ProductID] = append(fresh.byProduct[in.ProductID], in)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	catRows, err := s.conn.QueryContext(ctx, `SELECT product_id, category FROM product_categories`)
	if err != nil {
		return err
	}
	defer catRows.Close()
	for catRows.Next() {
		var pid int
		var cat string
		if err := catRows.Scan(&pid, &cat); err != nil {
			return err
		}
		fresh.categories[pid] = cat
	}
	if err := catRows.Err(); err != nil {
		return err
	}

	s.idx = fresh
	return nil
}
