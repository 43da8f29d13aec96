package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	sess := &Session{
		Vertical:     "cards",
		Answers:      map[string]interface{}{"payment_behavior": "full"},
		TopProductID: "aurum-free",
		TopScore:     72,
		Savings:      360_000,
		DurationMs:   3,
	}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == uuid.Nil {
		t.Fatal("expected assigned session id")
	}
	if sess.CreatedAt.IsZero() {
		t.Fatal("expected assigned created_at")
	}

	got, err := s.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.TopProductID != "aurum-free" {
		t.Fatalf("got %+v, want stored session", got)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	got, err := s.GetSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown session, got %+v", got)
	}
}

func TestMemoryStoreListFilters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seed := []*Session{
		{Vertical: "cards", TopProductID: "a", TopScore: 70},
		{Vertical: "cards", TopProductID: "b", TopScore: 50, Fallback: true},
		{Vertical: "credit", TopProductID: "c", TopScore: 60},
	}
	for _, sess := range seed {
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	cards, err := s.ListSessions(ctx, SessionFilter{Vertical: "cards"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 2 {
		t.Errorf("cards sessions = %d, want 2", len(cards))
	}

	fallback := true
	fb, err := s.ListSessions(ctx, SessionFilter{Fallback: &fallback})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(fb) != 1 || fb[0].TopProductID != "b" {
		t.Errorf("fallback sessions = %+v, want only b", fb)
	}

	limited, err := s.ListSessions(ctx, SessionFilter{Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited sessions = %d, want 1", len(limited))
	}
}

func TestMemoryStoreStats(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seed := []*Session{
		{Vertical: "cards", TopScore: 80, DurationMs: 4},
		{Vertical: "cards", TopScore: 60, DurationMs: 2, Fallback: true},
		{Vertical: "credit", TopScore: 70, DurationMs: 3},
	}
	for _, sess := range seed {
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalSessions != 3 {
		t.Errorf("total = %d, want 3", stats.TotalSessions)
	}
	if stats.FallbackCount != 1 {
		t.Errorf("fallback = %d, want 1", stats.FallbackCount)
	}
	if stats.AvgTopScore != 70 {
		t.Errorf("avg score = %v, want 70", stats.AvgTopScore)
	}
	if stats.ByVertical["cards"] != 2 || stats.ByVertical["credit"] != 1 {
		t.Errorf("by vertical = %v", stats.ByVertical)
	}
}
