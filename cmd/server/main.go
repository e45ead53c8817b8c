// JobDeck assistant server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/jobdeck/jobdeck/pkg/agent"
	"github.com/jobdeck/jobdeck/pkg/models"
	"github.com/jobdeck/jobdeck/pkg/rag"
	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/store"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "addr", cfg.Addr, "provider", cfg.Provider, "dev", cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	facade, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	provider, err := models.NewProvider(ctx, cfg.Provider, cfg.Model)
	if err != nil {
		slog.Error("Failed to initialize language model", "provider", cfg.Provider, "error", err)
		os.Exit(1)
	}
	// Identical plain completions within the TTL are served from memory.
	model := models.NewCachedModel(provider, 256, 10*time.Minute)

	// A plain-completion fallback behind the tool-calling primary, so an
	// exhausted primary still yields an answer.
	var fallback models.ChatModel
	if cfg.Provider != "openai" && os.Getenv("OPENAI_API_KEY") != "" {
		fallback = models.NewOpenAIModel("")
		slog.Info("OpenAI fallback model enabled")
	}

	sessions := session.NewStore()

	ag, err := agent.New(agent.Options{
		Model:    model,
		Fallback: fallback,
		Catalog:  tools.DefaultCatalog(facade),
		Sessions: sessions,
		Indexer:  rag.NewIndexer(facade),
		Logger:   logger,
	})
	if err != nil {
		slog.Error("Failed to initialize agent", "error", err)
		os.Exit(1)
	}

	handler := &apiHandler{agent: ag, sessions: sessions}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	handler.registerRoutes(r)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

// openStore picks Postgres when DATABASE_URL is set and otherwise falls back
// to a seeded in-memory store for local development.
func openStore(ctx context.Context, cfg Config) (store.Facade, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Info("DATABASE_URL not set, using seeded in-memory store")
		mem := store.NewMemory()
		store.SeedDemo(mem)
		return mem, func() {}, nil
	}

	pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if closeErr := pg.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}
	if err := pg.CreateSchema(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	slog.Info("Database connected")
	return pg, cleanup, nil
}
