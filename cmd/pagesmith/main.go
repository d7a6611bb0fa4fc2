// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the pagesmith server.
// It loads configuration, connects to the optional backing services, wires
// the page pipeline and starts the HTTP server with graceful shutdown.
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

	"pagesmith/internal/ai"
	"pagesmith/internal/cache"
	"pagesmith/internal/config"
	"pagesmith/internal/database"
	"pagesmith/internal/editor"
	"pagesmith/internal/engine"
	"pagesmith/internal/export"
	"pagesmith/internal/generator"
	"pagesmith/internal/handlers"
	"pagesmith/internal/metrics"
	"pagesmith/internal/middleware"
	"pagesmith/internal/router"
	"pagesmith/internal/storage"
	"pagesmith/internal/store"
)

func main() {
	// Load configuration first so the log format can follow APP_ENV.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logHandler slog.Handler
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"strict", cfg.EditorStrict,
	)

	// Drafts live in Valkey when configured, otherwise in process memory.
	var (
		drafts  cache.DraftStore
		exports cache.ExportCache
	)
	if cfg.ValkeyEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		drafts = cache.NewValkeyDrafts(valkeyClient, cfg.DraftTTL)
		exports = cache.NewValkeyExports(valkeyClient, cache.DefaultExportTTL)
	} else {
		slog.Warn("valkey not configured, drafts are kept in memory")
		drafts = cache.NewMemoryDrafts(cfg.DraftTTL)
		exports = cache.NewMemoryExports(cache.DefaultExportTTL)
	}

	m := metrics.New()

	// Activity log in PostgreSQL (optional).
	var activityStore *store.ActivityStore
	if cfg.ActivityEnabled() {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		activityStore = store.NewActivityStore(db)
	} else {
		slog.Warn("postgres not configured, activity log disabled")
	}

	storageClient, err := storage.New(storage.Config{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBucket:  cfg.S3BucketPublic,
		PrivateBucket: cfg.S3BucketPrivate,
		PublicURL:     cfg.S3PublicURL,
	})
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3BucketPublic,
			"private_bucket", cfg.S3BucketPrivate,
		)
	} else {
		slog.Warn("s3 storage not configured, publishing disabled")
	}

	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	var engineOpts []engine.Option
	if cfg.TrustedMarkup {
		engineOpts = append(engineOpts, engine.WithTrustedMarkup())
	}
	eng, err := engine.New(engineOpts...)
	if err != nil {
		slog.Error("failed to initialize section templates", "error", err)
		os.Exit(1)
	}
	exporter, err := export.New()
	if err != nil {
		slog.Error("failed to initialize exporter", "error", err)
		os.Exit(1)
	}

	ed := editor.New(eng, editor.WithStrict(cfg.EditorStrict))
	gen := generator.New(aiRegistry, ed,
		generator.WithModerator(aiRegistry),
		generator.WithTimeout(cfg.GenerationTimeout),
		generator.WithMaxPromptLen(cfg.PromptMaxLen),
	)

	deps := handlers.Deps{
		Drafts:    drafts,
		Exports:   exports,
		Generator: gen,
		Editor:    ed,
		Exporter:  exporter,
		Storage:   storageClient,
		Metrics:   m,
		BaseURL:   cfg.BaseURL,
	}
	h := router.Handlers{
		Providers: handlers.NewProviders(aiRegistry),
		Metrics:   m,
	}
	// Only assign interfaces from a live store; a typed nil would not be nil.
	if activityStore != nil {
		deps.Activity = activityStore
		h.Activity = handlers.NewActivity(activityStore)
	}
	h.Pages = handlers.NewPages(deps)

	if cfg.GenerateRateLimit > 0 {
		h.GenerateLimit = middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
		defer h.GenerateLimit.Stop()
	}

	r := router.New(h)

	// WriteTimeout must outlast the generation timeout.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
