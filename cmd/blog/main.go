// Package main is the entrypoint for the Inkpress blog server.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/inkpress/inkpress/internal/auth"
	"github.com/inkpress/inkpress/internal/config"
	"github.com/inkpress/inkpress/internal/handler"
	"github.com/inkpress/inkpress/internal/markdown"
	"github.com/inkpress/inkpress/internal/middleware"
	"github.com/inkpress/inkpress/internal/repository"
	"github.com/inkpress/inkpress/internal/server"
)

func main() {
	ctx := context.Background()

	// A local .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Database: cfg.DBDatabase,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
	})
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("error", err.Error()),
			slog.String("db_host", cfg.DBHost),
			slog.String("db_database", cfg.DBDatabase),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	if err := repo.MaybeCreateSchema(ctx, logger); err != nil {
		logger.Error("failed to bootstrap schema", "error", err)
		repo.Close()
		os.Exit(1)
	}

	templates, err := handler.NewTemplates()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		repo.Close()
		os.Exit(1)
	}

	sessions := auth.NewSessions(cfg.CookieSecret, cfg.SessionTTL, cfg.IsProduction())
	hasher := auth.NewHasher()
	renderer := markdown.New()

	blogHandler := handler.NewBlogHandler(repo, templates, logger)
	feedHandler := handler.NewFeedHandler(repo, templates,
		strings.TrimSuffix(cfg.BaseURL, "/"), cfg.SiteTitle, logger)
	composeHandler := handler.NewComposeHandler(repo, renderer, templates, logger)
	authHandler := handler.NewAuthHandler(repo, hasher, sessions, templates, logger)

	r := setupRouter(blogHandler, feedHandler, composeHandler, authHandler, repo, sessions, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("database", func(context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	blogHandler *handler.BlogHandler,
	feedHandler *handler.FeedHandler,
	composeHandler *handler.ComposeHandler,
	authHandler *handler.AuthHandler,
	repo *repository.Repository,
	sessions *auth.Sessions,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware; CurrentAuthor runs on every route so templates
	// can show the signed-in state even on public pages.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CurrentAuthor(middleware.SessionConfig{
		Logger:   logger,
		Sessions: sessions,
		Authors:  repo,
	}))

	// Public pages
	r.Get("/", blogHandler.Home)
	r.Get("/archive", blogHandler.Archive)
	r.Get("/feed", feedHandler.Feed)
	r.Get("/entry/{slug}", blogHandler.Entry)

	// Compose requires a logged-in author
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthor())
		r.Get("/compose", composeHandler.Show)
		r.Post("/compose", composeHandler.Submit)
	})

	// Auth flows
	r.Route("/auth", func(r chi.Router) {
		r.Get("/create", authHandler.ShowCreate)
		r.Post("/create", authHandler.Create)
		r.Get("/login", authHandler.ShowLogin)
		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
	})

	return r
}
