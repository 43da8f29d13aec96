package events

import "time"

// MatchCompletedEvent is published after every scored questionnaire,
// whether or not the session was persisted.
type MatchCompletedEvent struct {
	SessionID    string    `json:"session_id,omitempty"`
	Vertical     string    `json:"vertical"`
	TopProductID string    `json:"top_product_id"`
	TopScore     float64   `json:"top_score"`
	Alternatives []string  `json:"alternatives,omitempty"`
	Fallback     bool      `json:"fallback"`
	Savings      int64     `json:"savings"`
	DurationMs   int64     `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

// CatalogReloadedEvent announces a catalog swap to interested consumers.
type CatalogReloadedEvent struct {
	Products  int       `json:"products"`
	Timestamp time.Time `json:"timestamp"`
}
