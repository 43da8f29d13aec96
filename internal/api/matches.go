package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/banqueando/matchd/internal/events"
	"github.com/banqueando/matchd/internal/scoring"
	"github.com/banqueando/matchd/internal/store"
)

// MatchesHandler serves questionnaire scoring. One engine per vertical;
// persistence and event publication are best effort and never fail the
// recommendation itself.
type MatchesHandler struct {
	engines map[string]*scoring.Engine
	store   store.Store
	events  events.Client
	logger  *slog.Logger
}

func NewMatchesHandler(engines map[string]*scoring.Engine, s store.Store, e events.Client, logger *slog.Logger) *MatchesHandler {
	return &MatchesHandler{engines: engines, store: s, events: e, logger: logger}
}

type MatchRequest struct {
	Vertical string                 `json:"vertical,omitempty"`
	Answers  map[string]interface{} `json:"answers"`
}

type MatchResponse struct {
	SessionID string `json:"session_id,omitempty"`
	Vertical  string `json:"vertical"`
	*scoring.ResultSet
}

func (h *MatchesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Answers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "answers required"})
		return
	}
	if req.Vertical == "" {
		req.Vertical = "cards"
	}
	engine, ok := h.engines[req.Vertical]
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown vertical"})
		return
	}

	start := time.Now()
	rs := engine.Match(scoring.AnswerSet(req.Answers))
	elapsed := time.Since(start)

	matchRequests.WithLabelValues(req.Vertical).Inc()
	matchDuration.Observe(elapsed.Seconds())

	resp := MatchResponse{Vertical: req.Vertical, ResultSet: rs}
	if rs.TopMatch == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if rs.TopMatch.Fallback {
		matchFallbacks.Inc()
	}

	alternatives := make([]string, 0, len(rs.Alternatives))
	for _, alt := range rs.Alternatives {
		alternatives = append(alternatives, alt.ID)
	}

	sess := &store.Session{
		Vertical:     req.Vertical,
		Answers:      req.Answers,
		TopProductID: rs.TopMatch.ID,
		TopScore:     rs.TopMatch.Score,
		Alternatives: alternatives,
		Fallback:     rs.TopMatch.Fallback,
		Savings:      rs.TopMatch.Savings,
		DurationMs:   elapsed.Milliseconds(),
	}
	if h.store != nil {
		if err := h.store.CreateSession(r.Context(), sess); err != nil {
			h.logger.Error("failed to persist session", "error", err)
		} else {
			resp.SessionID = sess.ID.String()
		}
	}

	if h.events != nil {
		ev := events.MatchCompletedEvent{
			SessionID:    resp.SessionID,
			Vertical:     req.Vertical,
			TopProductID: sess.TopProductID,
			TopScore:     sess.TopScore,
			Alternatives: alternatives,
			Fallback:     sess.Fallback,
			Savings:      sess.Savings,
			DurationMs:   sess.DurationMs,
			Timestamp:    time.Now().UTC(),
		}
		subject := events.SubjectMatchCompleted(resp.SessionID)
		if sess.Fallback {
			subject = events.SubjectMatchFallback(resp.SessionID)
		}
		if err := h.events.Publish(subject, ev); err != nil {
			h.logger.Error("failed to publish match event", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
