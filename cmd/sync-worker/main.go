// Package main runs the worker that imports queued mobile-money sync batches.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pesawise/backend/config"
	"github.com/pesawise/backend/internal/application/usecase/ledger"
	"github.com/pesawise/backend/internal/infra/db"
	"github.com/pesawise/backend/internal/integration/persistence"
	"github.com/pesawise/backend/internal/integration/persistence/model"
	"github.com/pesawise/backend/internal/integration/queue"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	logger.Info("Starting PesaWise sync worker",
		"environment", cfg.Server.Environment,
		"queue", cfg.Queue.Queue,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.AutoMigrate(model.AllModels()...); err != nil {
		logger.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	client, err := queue.NewClient(cfg.Queue.URL, cfg.Queue.Exchange, cfg.Queue.Queue, cfg.Queue.Prefetch)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	transactionRepo := persistence.NewTransactionRepository(database.DB())
	worker := queue.NewSyncWorker(ledger.NewImportExternalUseCase(transactionRepo))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := client.Consume(ctx, worker); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	select {
	case <-done:
		logger.Info("Worker shutdown complete")
	case <-time.After(30 * time.Second):
		logger.Warn("Shutdown timeout reached")
	}
}
