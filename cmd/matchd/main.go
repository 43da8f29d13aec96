package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banqueando/matchd/internal/api"
	"github.com/banqueando/matchd/internal/catalog"
	"github.com/banqueando/matchd/internal/config"
	"github.com/banqueando/matchd/internal/events"
	"github.com/banqueando/matchd/internal/rules"
	"github.com/banqueando/matchd/internal/scoring"
	"github.com/banqueando/matchd/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog and scoring policy
	products, err := catalog.Load(cfg.Catalog.ProductsPath)
	if err != nil {
		logger.Error("failed to load product catalog", "error", err)
		os.Exit(1)
	}
	policy, err := rules.Load(cfg.Catalog.RulesPath)
	if err != nil {
		logger.Error("failed to load scoring rules", "error", err)
		os.Exit(1)
	}

	// One engine per vertical, split by product kind.
	var cards, loans []catalog.Product
	for _, p := range products {
		switch p.Kind {
		case catalog.KindLoan:
			loans = append(loans, p)
		default:
			cards = append(cards, p)
		}
	}
	engines := map[string]*scoring.Engine{
		"cards":  scoring.New(cards, policy, logger),
		"credit": scoring.New(loans, policy, logger),
	}
	logger.Info("catalog loaded", "cards", len(cards), "loans", len(loans))

	// Database (optional; memory store keeps sessions for the process
	// lifetime when no database is configured)
	var db store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		db = pg
		logger.Info("connected to database")
	} else {
		db = store.NewMemoryStore()
		logger.Warn("no database configured, sessions are in-memory only")
	}
	defer db.Close()

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to nats")
		}
	}

	// API server
	router := api.NewRouter(engines, db, eventsClient, cfg.Server.AdminToken, cfg.Server.RateLimit, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
