package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"voxintel/backend/internal/adapter/gemini"
	"voxintel/backend/internal/app"
	"voxintel/backend/internal/config"
	"voxintel/backend/internal/logger"
)

func main() {
	// Structured logger with correlation ids pulled from request context
	log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	deps, err := app.Bootstrap(cfg)
	if err != nil {
		slog.Error("failed to bootstrap dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.DB.Close()

	analyzer := gemini.NewAnalyzer(cfg.GeminiAPIKey)

	application, err := app.New(cfg, deps.DB, deps.Publisher, analyzer)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
