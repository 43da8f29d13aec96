// Package store persists completed questionnaire sessions and their
// recommendation outcomes.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is one completed questionnaire run and the recommendation it
// produced. Answers and alternatives are stored as JSON documents.
type Session struct {
	ID       uuid.UUID `json:"session_id"`
	Vertical string    `json:"vertical"`

	Answers map[string]interface{} `json:"answers"`

	TopProductID string   `json:"top_product_id"`
	TopScore     float64  `json:"top_score"`
	Alternatives []string `json:"alternatives,omitempty"`
	Fallback     bool     `json:"fallback"`
	Savings      int64    `json:"savings"`

	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type SessionFilter struct {
	Vertical string
	Fallback *bool
	Limit    int
	Offset   int
}

type Stats struct {
	TotalSessions int            `json:"total_sessions"`
	FallbackCount int            `json:"fallback_count"`
	AvgTopScore   float64        `json:"avg_top_score"`
	AvgDurationMs float64        `json:"avg_duration_ms"`
	ByVertical    map[string]int `json:"by_vertical"`
}

type Store interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]*Session, error)

	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}
