// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"

	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/graphstore"
	"github.com/orbitlane/recoengine/internal/vectorstore"
)

// GraphSource is the graph store's read surface the orchestrator needs.
type GraphSource interface {
	Collaborative(ctx context.Context, uid, limit, minShared int) ([]domain.ScoredProduct, error)
	Trending(ctx context.Context, limit int, types []domain.EventType) ([]domain.ScoredProduct, error)
	Complementary(ctx context.Context, pid, limit int) ([]domain.ScoredProduct, error)
	HasRecentPurchase(ctx context.Context, uid, lookbackHours int) (domain.PurchaseStatus, error)
	UserHistory(ctx context.Context, uid, limit int, types []domain.EventType) ([]domain.HistoryEntry, error)
	RecentViewed(ctx context.Context, uid, limit int) ([]domain.HistoryEntry, error)
	PurchaseHistory(ctx context.Context, uid, limit int) ([]domain.HistoryEntry, error)
	Stats(ctx context.Context) (domain.GraphStats, error)
}

// VectorSource is the vector store's read surface the orchestrator needs.
type VectorSource interface {
	Search(ctx context.Context, query []float32, opts vectorstore.SearchOptions) []vectorstore.Result
	Retrieve(ctx context.Context, ids []int, withVectors bool) []vectorstore.Result
	Count() int
}

var _ GraphSource = (*graphstore.Store)(nil)
var _ VectorSource = (*vectorstore.Store)(nil)
