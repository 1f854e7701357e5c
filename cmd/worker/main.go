package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finance_tracker_echo/internal/services"
	"finance_tracker_echo/pkg/logging"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment")
	}
	logging.Setup()

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL not set")
		os.Exit(1)
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	recurring := services.NewRecurringService(db)

	slog.Info("Worker started")

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("Shutting down worker...")
		cancel()
	}()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	// Run once immediately, then on every tick
	process(ctx, recurring)

	for {
		select {
		case <-ticker.C:
			process(ctx, recurring)
		case <-ctx.Done():
			return
		}
	}
}

func process(ctx context.Context, recurring *services.RecurringService) {
	processed, err := recurring.ProcessDue(ctx, time.Now())
	if err != nil {
		slog.Error("Failed to process recurring transactions", "error", err)
		return
	}
	if processed > 0 {
		slog.Info("Recurring transactions materialized", "count", processed)
	}
}
