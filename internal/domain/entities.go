package domain

import (
	"time"

	json "github.com/goccy/go-json"
)

// EventType classifies a user-product interaction edge (spec.md §3.1).
type EventType string

const (
	EventView     EventType = "view"
	EventCart     EventType = "cart"
	EventPurchase EventType = "purchase"
)

// Valid reports whether t is one of the three admissible literals.
func (t EventType) Valid() bool {
	switch t {
	case EventView, EventCart, EventPurchase:
		return true
	default:
		return false
	}
}

// Weight returns the fixed event weight used by every aggregate scoring
// formula in the graph adapter (spec.md §4.1.6).
func (t EventType) Weight() float64 {
	switch t {
	case EventPurchase:
		return 80
	case EventCart:
		return 30
	case EventView:
		return 1
	default:
		return 0
	}
}

// Interaction is a single append-only User->Product edge.
type Interaction struct {
	UserID    int
	ProductID int
	Type      EventType
	EventTime time.Time
	SessionID string
}

// NormalizeTime truncates an event time to UTC second precision, per
// spec.md invariant 3.2.1.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// Envelope is the wire representation of an event as it crosses the broker
// (spec.md §3.1, §6.1).
type Envelope struct {
	EventTime   time.Time `json:"event_time"`
	EventType   EventType `json:"event_type"`
	ProductID   int       `json:"product_id"`
	UserID      int       `json:"user_id,omitempty"`
	UserSession string    `json:"user_session"`

	RetryCount  int        `json:"retry_count,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	LastRetryAt *time.Time `json:"last_retry_at,omitempty"`
	FinalError  string     `json:"final_error,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`

	PublishedAt time.Time `json:"published_at,omitempty"`
}

// EventTimeLayout is the strict wire format required by spec.md §6.1.
const EventTimeLayout = "2006-01-02 15:04:05"

// timestampLayout is the ISO-8601-with-milliseconds form spec.md §6.1 uses
// for published_at (and, by the same convention, the retry bookkeeping
// timestamps added by the projector).
const timestampLayout = "2006-01-02T15:04:05.000Z"

// envelopeWire is Envelope's on-wire JSON shape (spec.md §6.1): event_time
// as the strict "YYYY-MM-DD HH:MM:SS" form, every other timestamp as
// ISO-8601 with millisecond precision.
type envelopeWire struct {
	EventTime   string    `json:"event_time"`
	EventType   EventType `json:"event_type"`
	ProductID   int       `json:"product_id"`
	UserID      int       `json:"user_id,omitempty"`
	UserSession string    `json:"user_session"`

	RetryCount  int    `json:"retry_count,omitempty"`
	LastError   string `json:"last_error,omitempty"`
	LastRetryAt string `json:"last_retry_at,omitempty"`
	FinalError  string `json:"final_error,omitempty"`
	FailedAt    string `json:"failed_at,omitempty"`

	PublishedAt string `json:"published_at,omitempty"`
}

// MarshalJSON renders the envelope in spec.md §6.1's wire format.
func (e Envelope) MarshalJSON() ([]byte, error) {
	w := envelopeWire{
		EventTime:   e.EventTime.UTC().Format(EventTimeLayout),
		EventType:   e.EventType,
		ProductID:   e.ProductID,
		UserID:      e.UserID,
		UserSession: e.UserSession,
		RetryCount:  e.RetryCount,
		LastError:   e.LastError,
		FinalError:  e.FinalError,
	}
	if e.LastRetryAt != nil {
		w.LastRetryAt = e.LastRetryAt.UTC().Format(timestampLayout)
	}
	if e.FailedAt != nil {
		w.FailedAt = e.FailedAt.UTC().Format(timestampLayout)
	}
	if !e.PublishedAt.IsZero() {
		w.PublishedAt = e.PublishedAt.UTC().Format(timestampLayout)
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses an envelope from spec.md §6.1's wire format.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var w envelopeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*e = Envelope{
		EventType:   w.EventType,
		ProductID:   w.ProductID,
		UserID:      w.UserID,
		UserSession: w.UserSession,
		RetryCount:  w.RetryCount,
		LastError:   w.LastError,
		FinalError:  w.FinalError,
	}

	if w.EventTime != "" {
		t, err := time.ParseInLocation(EventTimeLayout, w.EventTime, time.UTC)
		if err != nil {
			return err
		}
		e.EventTime = t
	}
	if w.PublishedAt != "" {
		t, err := time.Parse(timestampLayout, w.PublishedAt)
		if err != nil {
			return err
		}
		e.PublishedAt = t
	}
	if w.LastRetryAt != "" {
		t, err := time.Parse(timestampLayout, w.LastRetryAt)
		if err != nil {
			return err
		}
		e.LastRetryAt = &t
	}
	if w.FailedAt != "" {
		t, err := time.Parse(timestampLayout, w.FailedAt)
		if err != nil {
			return err
		}
		e.FailedAt = &t
	}
	return nil
}

// Source identifies which recommender produced a candidate item.
type Source string

const (
	SourceBehavioral     Source = "BEHAVIORAL"
	SourceTrending       Source = "TRENDING"
	SourceSemanticSim    Source = "SEMANTIC_SIMILAR"
	SourceComplementary  Source = "COMPLEMENTARY"
	SourceHybrid         Source = "HYBRID"
)

// Mode is the user's classified recommendation mode (spec.md §4.6.1).
type Mode string

const (
	ModeBrowsing     Mode = "BROWSING"
	ModePostPurchase Mode = "POST_PURCHASE"
	ModeColdStart    Mode = "COLD_START"
)

// RecommendationItem is an ephemeral, in-memory candidate product.
type RecommendationItem struct {
	ProductID int            `json:"product_id"`
	Score     float64        `json:"score"`
	Source    Source         `json:"source"`
	Reason    string         `json:"reason,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// ProductStats is the aggregate per-product counters returned by
// GraphStore.ProductStats (spec.md §4.1 table).
type ProductStats struct {
	ProductID         int     `json:"product_id"`
	TotalInteractions int     `json:"total_interactions"`
	UniqueUsers       int     `json:"unique_users"`
	Views             int     `json:"views"`
	Carts             int     `json:"carts"`
	Purchases         int     `json:"purchases"`
	ConversionRate    float64 `json:"conversion_rate"`
}

// PurchaseStatus is the result of GraphStore.HasRecentPurchase.
type PurchaseStatus struct {
	HasPurchase          bool      `json:"has_purchase"`
	LastPurchasedProduct int       `json:"last_purchased_product_id,omitempty"`
	PurchaseTime         time.Time `json:"purchase_time,omitempty"`
	SessionID            string    `json:"session_id,omitempty"`
}

// HistoryEntry is one row from GraphStore.UserHistory.
type HistoryEntry struct {
	ProductID int       `json:"product_id"`
	EventType EventType `json:"event_type"`
	EventTime time.Time `json:"event_time"`
	SessionID string    `json:"session_id"`
}

// ScoredProduct is the common shape of the graph adapter's count/score
// query results (collaborative, similar_products, trending, etc.).
type ScoredProduct struct {
	ProductID        int     `json:"product_id"`
	RecommenderCount int     `json:"recommender_count,omitempty"`
	SharedUsers      int     `json:"shared_users,omitempty"`
	BuyerCount       int     `json:"buyer_count,omitempty"`
	PurchaseCount    int     `json:"purchase_count,omitempty"`
	CartCount        int     `json:"cart_count,omitempty"`
	ViewCount        int     `json:"view_count,omitempty"`
	UserCount        int     `json:"user_count,omitempty"`
	InteractionScore float64 `json:"interaction_score,omitempty"`
	TotalScore       float64 `json:"total_score"`
}

// ScoredUser is the result shape of GraphStore.SimilarUsers.
type ScoredUser struct {
	UserID         int     `json:"user_id"`
	SharedProducts int     `json:"shared_products"`
	Similarity     float64 `json:"similarity"`
}

// GraphStats is the result of GraphStore.Stats.
type GraphStats struct {
	Users        int `json:"users"`
	Products     int `json:"products"`
	Interactions int `json:"interactions"`
}
