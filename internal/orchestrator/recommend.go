// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/orbitlane/recoengine/internal/cache"
	"github.com/orbitlane/recoengine/internal/config"
	"github.com/orbitlane/recoengine/internal/domain"
	"github.com/orbitlane/recoengine/internal/logging"
	"github.com/orbitlane/recoengine/internal/metrics"
	"github.com/orbitlane/recoengine/internal/vectorstore"
)

const cacheType = "recommendations"

// Orchestrator is the recommendation orchestrator (C6).
type Orchestrator struct {
	graph  GraphSource
	vector VectorSource
	cfg    config.RecommendConfig
	cache  cache.Cacher
}

// New builds an Orchestrator over the given graph and vector sources. A
// per-process LFU cache absorbs repeat Recommend calls for the same
// (user, weights, mmr_diversity, limit) within cfg.CacheTTL, since
// recommendations are eventually consistent with ingestion anyway
// (spec.md §5) and re-running the full source fan-in for an unchanged
// request is wasted graph/vector work.
func New(graph GraphSource, vector VectorSource, cfg config.RecommendConfig) *Orchestrator {
	return &Orchestrator{
		graph:  graph,
		vector: vector,
		cfg:    cfg,
		cache:  cache.NewLFU(cfg.CacheCapacity, cfg.CacheTTL),
	}
}

// Request is the input to Recommend.
type Request struct {
	UserID         int
	Limit          int
	MMRDiversity   float64
	IncludeReasons bool
	LookbackHours  int
	Weights        config.WeightsConfig
}

// Response is the recommendation result returned from Recommend (spec.md
// §4.6.4 step 6).
type Response struct {
	UserID          int                         `json:"user_id"`
	Mode            domain.Mode                 `json:"mode"`
	ModeContext     any                         `json:"mode_context"`
	TotalCount      int                         `json:"total_count"`
	SourcesUsed     []domain.Source             `json:"sources_used"`
	Strategy        string                      `json:"strategy"`
	Recommendations []domain.RecommendationItem `json:"recommendations"`
}

func (r Request) normalized(defaults config.RecommendConfig) Request {
	if r.Limit <= 0 {
		r.Limit = 10
	}
	if r.MMRDiversity <= 0 {
		r.MMRDiversity = defaults.MMRDiversityDefault
	}
	if r.LookbackHours <= 0 {
		r.LookbackHours = defaults.PostPurchaseLookbackHrs
	}
	if r.Weights.Behavioral == 0 && r.Weights.Trending == 0 && r.Weights.Activity == 0 {
		r.Weights = defaults.DefaultWeights
	}
	return r
}

// Recommend implements spec.md §4.6.2-§4.6.4: mode classification, budget
// allocation, per-mode source fan-out, dedup, enrichment and pagination
// prep.
func (o *Orchestrator) Recommend(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	req = req.normalized(o.cfg)

	key := cache.GenerateKey("recommend", req)
	if cached, ok := o.cache.Get(key); ok {
		metrics.CacheHits.WithLabelValues(cacheType).Inc()
		return cached.(Response), nil
	}
	metrics.CacheMisses.WithLabelValues(cacheType).Inc()

	classified := classifyMode(ctx, o.graph, req.UserID, req.LookbackHours)
	behavioralLimit, trendingLimit, activityLimit := allocateBudget(req.Weights, req.Limit)

	var items []domain.RecommendationItem

	items = append(items, o.behavioral(ctx, req.UserID, behavioralLimit)...)
	items = append(items, o.trending(ctx, trendingLimit, nil)...)

	switch classified.Mode {
	case domain.ModePostPurchase:
		items = append(items, o.postPurchase(ctx, req.UserID, classified.Context.(domain.PurchaseStatus), activityLimit)...)
	case domain.ModeBrowsing:
		items = append(items, o.browsing(ctx, req.UserID, activityLimit, req.MMRDiversity, items)...)
	default:
		items = append(items, o.coldStartTrending(ctx, activityLimit, items)...)
	}

	deduped := dedupe(items)
	sortByScoreDesc(deduped)
	if len(deduped) > req.Limit {
		deduped = deduped[:req.Limit]
	}

	o.enrich(ctx, deduped)
	if !req.IncludeReasons {
		for i := range deduped {
			deduped[i].Reason = ""
		}
	}

	resp := Response{
		UserID:          req.UserID,
		Mode:            classified.Mode,
		ModeContext:     classified.Context,
		TotalCount:      len(deduped),
		SourcesUsed:     uniqueSources(deduped),
		Strategy:        strategyFor(classified.Mode),
		Recommendations: deduped,
	}

	metrics.RecordRecommendation(string(classified.Mode), time.Since(start), sourceCounts(deduped))
	o.cache.Set(key, resp)
	return resp, nil
}

// behavioral implements the always-included collaborative source
// (spec.md §4.6.3).
func (o *Orchestrator) behavioral(ctx context.Context, uid, limit int) []domain.RecommendationItem {
	if limit <= 0 {
		return nil
	}
	start := time.Now()
	products, err := o.graph.Collaborative(ctx, uid, limit, 1)
	metrics.RecordGraphQuery("collaborative", time.Since(start), err)
	if err != nil {
		logging.Warn().Int("user_id", uid).Err(err).Msg("orchestrator: collaborative source failed, skipping")
		return nil
	}
	out := make([]domain.RecommendationItem, 0, len(products))
	for _, p := range products {
		out = append(out, domain.RecommendationItem{
			ProductID: p.ProductID,
			Score:     p.TotalScore,
			Source:    domain.SourceBehavioral,
			Reason:    fmt.Sprintf("Based on %d similar users", p.RecommenderCount),
		})
	}
	return out
}

// trending implements the always-included trending source.
func (o *Orchestrator) trending(ctx context.Context, limit int, types []domain.EventType) []domain.RecommendationItem {
	if limit <= 0 {
		return nil
	}
	start := time.Now()
	products, err := o.graph.Trending(ctx, limit, types)
	metrics.RecordGraphQuery("trending", time.Since(start), err)
	if err != nil {
		logging.Warn().Err(err).Msg("orchestrator: trending source failed, skipping")
		return nil
	}
	out := make([]domain.RecommendationItem, 0, len(products))
	for _, p := range products {
		out = append(out, domain.RecommendationItem{
			ProductID: p.ProductID,
			Score:     p.TotalScore,
			Source:    domain.SourceTrending,
			Reason:    "Trending now",
		})
	}
	return out
}

// postPurchase implements the POST_PURCHASE mode block (spec.md §4.6.3):
// complementary products to the user's last purchase, excluding every
// product the user has ever bought.
func (o *Orchestrator) postPurchase(ctx context.Context, uid int, status domain.PurchaseStatus, limit int) []domain.RecommendationItem {
	if limit <= 0 || status.LastPurchasedProduct == 0 {
		return nil
	}
	start := time.Now()
	products, err := o.graph.Complementary(ctx, status.LastPurchasedProduct, limit)
	metrics.RecordGraphQuery("complementary", time.Since(start), err)
	if err != nil {
		logging.Warn().Int("user_id", uid).Err(err).Msg("orchestrator: complementary source failed, skipping")
		return nil
	}

	purchases, err := o.graph.PurchaseHistory(ctx, uid, 0)
	if err != nil {
		logging.Warn().Int("user_id", uid).Err(err).Msg("orchestrator: purchase_history lookup failed, skipping exclusion")
	}
	excluded := toIDSet(purchases)

	products = excludeScored(products, excluded)
	out := make([]domain.RecommendationItem, 0, len(products))
	for _, p := range products {
		out = append(out, domain.RecommendationItem{
			ProductID: p.ProductID,
			Score:     p.TotalScore,
			Source:    domain.SourceComplementary,
			Reason:    "Frequently bought together",
		})
	}
	return out
}

// browsing implements the BROWSING mode block (spec.md §4.6.3): search the
// vector store from up to 3 recently viewed products' embeddings, merge,
// and truncate.
func (o *Orchestrator) browsing(ctx context.Context, uid int, limit int, mmrDiversity float64, accumulator []domain.RecommendationItem) []domain.RecommendationItem {
	if limit <= 0 {
		return nil
	}
	recent, err := o.graph.RecentViewed(ctx, uid, 3)
	if err != nil {
		logging.Warn().Int("user_id", uid).Err(err).Msg("orchestrator: recent_viewed lookup failed, skipping semantic source")
		return nil
	}
	if len(recent) == 0 {
		return nil
	}

	seeds := make([]int, 0, len(recent))
	for _, r := range recent {
		seeds = append(seeds, r.ProductID)
	}
	seedVectors := o.vector.Retrieve(ctx, seeds, true)

	excluded := idSetFromItems(accumulator)
	for _, e := range recent {
		excluded[e.ProductID] = struct{}{}
	}

	var merged []vectorstore.Result
	for _, seed := range seedVectors {
		if len(seed.Vector) == 0 {
			continue
		}
		start := time.Now()
		hits := o.vector.Search(ctx, seed.Vector, vectorstore.SearchOptions{
			Limit:         limit,
			UseMMR:        true,
			MMRDiversity:  mmrDiversity,
			MMRCandidates: 10 * limit,
		})
		metrics.RecordVectorSearch("mmr", time.Since(start))
		for _, h := range hits {
			if _, skip := excluded[h.ID]; skip {
				continue
			}
			merged = append(merged, h)
		}
	}

	sortResultsByScoreDesc(merged)
	if len(merged) > limit {
		merged = merged[:limit]
	}

	out := make([]domain.RecommendationItem, 0, len(merged))
	for _, r := range merged {
		out = append(out, domain.RecommendationItem{
			ProductID: r.ID,
			Score:     r.Score,
			Source:    domain.SourceSemanticSim,
			Reason:    "Similar to products you've viewed",
			Payload:   r.Payload,
		})
	}
	return out
}

// coldStartTrending implements the COLD_START mode block (spec.md §4.6.3):
// an additional purchase-weighted trending pass excluding ids already
// present in the accumulator.
func (o *Orchestrator) coldStartTrending(ctx context.Context, limit int, accumulator []domain.RecommendationItem) []domain.RecommendationItem {
	if limit <= 0 {
		return nil
	}
	start := time.Now()
	products, err := o.graph.Trending(ctx, limit, []domain.EventType{domain.EventPurchase})
	metrics.RecordGraphQuery("trending_purchase", time.Since(start), err)
	if err != nil {
		logging.Warn().Err(err).Msg("orchestrator: cold start trending source failed, skipping")
		return nil
	}

	excluded := idSetFromItems(accumulator)
	products = excludeScored(products, excluded)

	out := make([]domain.RecommendationItem, 0, len(products))
	for _, p := range products {
		out = append(out, domain.RecommendationItem{
			ProductID: p.ProductID,
			Score:     p.TotalScore,
			Source:    domain.SourceTrending,
			Reason:    "Popular purchase right now",
		})
	}
	return out
}

// enrich batch-retrieves payloads from the vector store for every item
// that does not already carry one (spec.md §4.6.4 step 4).
func (o *Orchestrator) enrich(ctx context.Context, items []domain.RecommendationItem) {
	var missing []int
	for _, it := range items {
		if it.Payload == nil {
			missing = append(missing, it.ProductID)
		}
	}
	if len(missing) == 0 {
		return
	}

	results := o.vector.Retrieve(ctx, missing, false)
	payloads := make(map[int]map[string]any, len(results))
	for _, r := range results {
		payloads[r.ID] = r.Payload
	}
	for i := range items {
		if items[i].Payload == nil {
			items[i].Payload = payloads[items[i].ProductID]
		}
	}
}

func excludeScored(items []domain.ScoredProduct, excluded map[int]struct{}) []domain.ScoredProduct {
	return excludeIDs(items, excluded)
}

func idSetFromItems(items []domain.RecommendationItem) map[int]struct{} {
	set := make(map[int]struct{}, len(items))
	for _, it := range items {
		set[it.ProductID] = struct{}{}
	}
	return set
}

func sortResultsByScoreDesc(items []vectorstore.Result) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
}

func uniqueSources(items []domain.RecommendationItem) []domain.Source {
	seen := make(map[domain.Source]struct{})
	var out []domain.Source
	for _, it := range items {
		if _, ok := seen[it.Source]; ok {
			continue
		}
		seen[it.Source] = struct{}{}
		out = append(out, it.Source)
	}
	return out
}

func sourceCounts(items []domain.RecommendationItem) map[string]int {
	counts := make(map[string]int)
	for _, it := range items {
		counts[string(it.Source)]++
	}
	return counts
}
