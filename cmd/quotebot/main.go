package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/alchemy-chemicals/quotebot/internal/api"
	"github.com/alchemy-chemicals/quotebot/internal/catalog"
	"github.com/alchemy-chemicals/quotebot/internal/config"
	"github.com/alchemy-chemicals/quotebot/internal/events"
	"github.com/alchemy-chemicals/quotebot/internal/extract"
	"github.com/alchemy-chemicals/quotebot/internal/gemini"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("quotebot starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog: built-in by default, Postgres when configured.
	cat := catalog.Default()
	if cfg.DatabaseURL != "" {
		loaded, err := catalog.LoadFromDB(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to load catalog from database", "error", err)
			os.Exit(1)
		}
		cat = loaded
		slog.Info("catalog loaded from database", "products", len(cat.Products))
	} else {
		slog.Info("using built-in catalog", "products", len(cat.Products))
	}

	// Gemini extractor (optional — without a key the rule-based
	// extractor handles every turn on its own).
	var model extract.Extractor
	if cfg.GeminiAPIKey != "" {
		gem, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		model = extract.NewModel(gem, cat, slog.Default())
		slog.Info("gemini client ready", "model", cfg.GeminiModel)
	} else {
		slog.Warn("GEMINI_API_KEY not set — running rules-only extraction")
	}

	ext := extract.New(model, extract.NewRules(cat),
		time.Duration(cfg.LLMTimeoutSecs)*time.Second, slog.Default())

	// NATS publisher (optional — quotes still work, just no events).
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		var err error
		publisher, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set — quote events disabled")
	}

	srv, err := api.NewServer(api.Options{
		Port:             cfg.Port,
		Catalog:          cat,
		Extractor:        ext,
		Publisher:        publisher,
		SessionCacheSize: cfg.SessionCacheSize,
		Logger:           slog.Default(),
	})
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("quotebot ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("quotebot stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
