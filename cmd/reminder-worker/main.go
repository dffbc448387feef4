package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finbook/internal/config"
	applog "finbook/internal/log"
	"finbook/internal/services"
	"finbook/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentNotifier})
	applog.SetDefault(logger)

	logger.Info("Starting reminder-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	notifier := services.NewNotificationService(services.NewSQLStore(repo))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Reminder pass configured", "interval", cfg.ReminderInterval, "sqlite_db", cfg.SQLiteDBPath)

	// Run one pass immediately so a fresh deployment does not wait a full
	// interval before the first reminders appear.
	if err := notifier.RunReminderPass(ctx); err != nil {
		logger.Error("Initial reminder pass failed", "error", err)
	}

	ticker := time.NewTicker(cfg.ReminderInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := notifier.RunReminderPass(ctx); err != nil {
					logger.Error("Reminder pass failed", "error", err)
					continue
				}
				logger.Info("Reminder pass completed", "duration", time.Since(start).Round(time.Millisecond))
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())
	cancel()

	logger.Info("Worker stopped gracefully")
}
