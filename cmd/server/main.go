// Package main implements the entry point for the task manager API server,
// which stores tasks in Firestore or PostgreSQL and serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run loads configuration, connects the configured store and serves HTTP
// until ctx is canceled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("store_backend", cfg.Store.Backend),
		slog.Bool("allow_reset", cfg.API.AllowReset))

	taskStore, closeStore, err := openTaskStore(ctx, cfg, l)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, l, taskStore, closeStore)
	if err != nil {
		_ = closeStore()
		return err
	}

	return app.Run(ctx)
}
