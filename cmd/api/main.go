// Package main is the entry point for the PesaWise API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/pesawise/backend/config"
	"github.com/pesawise/backend/internal/infra/db"
	"github.com/pesawise/backend/internal/infra/dependency"
	"github.com/pesawise/backend/internal/infra/server/router"
	"github.com/pesawise/backend/internal/integration/entrypoint/controller"
	"github.com/pesawise/backend/internal/integration/entrypoint/middleware"
	"github.com/pesawise/backend/internal/integration/persistence/model"
	"github.com/pesawise/backend/internal/integration/queue"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting PesaWise API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	var r *router.Router

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		r = router.NewRouter(
			controller.NewHealthController(func() bool { return false }, nil),
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		)
	} else {
		// Run database migrations
		if err := database.AutoMigrate(model.AllModels()...); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		opts := dependency.Options{}

		if cfg.Redis.URL != "" {
			redisClient, err := middleware.NewRedisClient(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				slog.Warn("Invalid Redis configuration, using in-memory rate limits", "error", err)
			} else {
				opts.Redis = redisClient
				defer redisClient.Close()
			}
		}

		if cfg.Queue.Enabled {
			client, err := queue.NewClient(cfg.Queue.URL, cfg.Queue.Exchange, cfg.Queue.Queue, cfg.Queue.Prefetch)
			if err != nil {
				slog.Warn("Sync queue unavailable, importing batches inline", "error", err)
			} else {
				opts.Publisher = client
				defer client.Close()
			}
		}

		injector := dependency.NewInjector(cfg, database.DB(), opts)
		r = injector.Router

		slog.Info("Application services initialized",
			"shared_rate_limits", opts.Redis != nil,
			"queued_sync", opts.Publisher != nil,
			"summaries_configured", cfg.AI.GeminiAPIKey != "",
		)
	}

	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
