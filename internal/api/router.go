// Package api exposes the recommendation engine over HTTP: scoring,
// catalog listing, session lookup and admin stats.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/banqueando/matchd/internal/events"
	"github.com/banqueando/matchd/internal/scoring"
	"github.com/banqueando/matchd/internal/store"
)

func NewRouter(engines map[string]*scoring.Engine, s store.Store, e events.Client, adminToken string, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	matches := NewMatchesHandler(engines, s, e, logger)
	products := NewProductsHandler(engines)
	sessions := NewSessionsHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/matches", matches.Create)
		r.Get("/products", products.List)
		r.Get("/sessions/{id}", sessions.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/sessions", sessions.List)
			r.Get("/stats", sessions.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
