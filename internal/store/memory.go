package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory. It backs local
// development runs without a database and the handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID]*Session)}
}

func (s *MemoryStore) CreateSession(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.ID = uuid.New()
	sess.CreatedAt = time.Now().UTC()

	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *MemoryStore) ListSessions(_ context.Context, filter SessionFilter) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Session
	for _, sess := range s.sessions {
		if filter.Vertical != "" && sess.Vertical != filter.Vertical {
			continue
		}
		if filter.Fallback != nil && sess.Fallback != *filter.Fallback {
			continue
		}
		cp := *sess
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) GetStats(_ context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByVertical: map[string]int{}}
	var scoreSum, durationSum float64
	for _, sess := range s.sessions {
		stats.TotalSessions++
		if sess.Fallback {
			stats.FallbackCount++
		}
		stats.ByVertical[sess.Vertical]++
		scoreSum += sess.TopScore
		durationSum += float64(sess.DurationMs)
	}
	if stats.TotalSessions > 0 {
		stats.AvgTopScore = scoreSum / float64(stats.TotalSessions)
		stats.AvgDurationMs = durationSum / float64(stats.TotalSessions)
	}
	return stats, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
