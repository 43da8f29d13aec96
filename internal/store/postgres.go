package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const sessionColumns = `session_id, vertical, answers,
	top_product_id, top_score, alternatives, fallback, savings,
	duration_ms, created_at`

func (s *PostgresStore) CreateSession(ctx context.Context, sess *Session) error {
	answersJSON, _ := json.Marshal(sess.Answers)
	alternativesJSON, _ := json.Marshal(sess.Alternatives)

	return s.pool.QueryRow(ctx, `
		INSERT INTO match_sessions (vertical, answers,
			top_product_id, top_score, alternatives, fallback, savings,
			duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING session_id, created_at`,
		sess.Vertical, answersJSON,
		sess.TopProductID, sess.TopScore, alternativesJSON, sess.Fallback, sess.Savings,
		sess.DurationMs,
	).Scan(&sess.ID, &sess.CreatedAt)
}

func (s *PostgresStore) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	sess := &Session{}
	var answersJSON, alternativesJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM match_sessions WHERE session_id = $1`, id,
	).Scan(
		&sess.ID, &sess.Vertical, &answersJSON,
		&sess.TopProductID, &sess.TopScore, &alternativesJSON, &sess.Fallback, &sess.Savings,
		&sess.DurationMs, &sess.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if answersJSON != nil {
		_ = json.Unmarshal(answersJSON, &sess.Answers)
	}
	if alternativesJSON != nil {
		_ = json.Unmarshal(alternativesJSON, &sess.Alternatives)
	}
	return sess, nil
}

func (s *PostgresStore) ListSessions(ctx context.Context, filter SessionFilter) ([]*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM match_sessions WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Vertical != "" {
		n++
		query += fmt.Sprintf(" AND vertical = $%d", n)
		args = append(args, filter.Vertical)
	}
	if filter.Fallback != nil {
		n++
		query += fmt.Sprintf(" AND fallback = $%d", n)
		args = append(args, *filter.Fallback)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByVertical: map[string]int{}}
	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN fallback THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(top_score), 0),
			COALESCE(AVG(duration_ms), 0)
		FROM match_sessions`,
	).Scan(&stats.TotalSessions, &stats.FallbackCount, &stats.AvgTopScore, &stats.AvgDurationMs)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT vertical, COUNT(*) FROM match_sessions GROUP BY vertical`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var vertical string
		var count int
		if err := rows.Scan(&vertical, &count); err != nil {
			return nil, err
		}
		stats.ByVertical[vertical] = count
	}
	return stats, rows.Err()
}

func scanSessions(rows pgx.Rows) ([]*Session, error) {
	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var answersJSON, alternativesJSON []byte
		if err := rows.Scan(
			&sess.ID, &sess.Vertical, &answersJSON,
			&sess.TopProductID, &sess.TopScore, &alternativesJSON, &sess.Fallback, &sess.Savings,
			&sess.DurationMs, &sess.CreatedAt,
		); err != nil {
			return nil, err
		}
		if answersJSON != nil {
			_ = json.Unmarshal(answersJSON, &sess.Answers)
		}
		if alternativesJSON != nil {
			_ = json.Unmarshal(alternativesJSON, &sess.Alternatives)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
