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

	"github.com/joho/godotenv"

	"housetab/internal/amqp"
	"housetab/internal/config"
	"housetab/internal/core"
	apphttp "housetab/internal/http"
	applog "housetab/internal/log"
	"housetab/internal/services"
	"housetab/internal/storage"
)

func main() {
	// Load .env for local development; containers set real env vars.
	_ = godotenv.Load()

	logCfg := applog.DefaultConfig()
	logCfg.Component = "housetab"
	applog.SetDefault(applog.New(logCfg))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// The AMQP publisher is optional: without a broker expenses still work,
	// they just never reach the sheet mirror.
	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		slog.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange)
	} else {
		slog.Info("AMQP disabled, sheet mirroring is off")
	}

	window := core.EditWindow{Window: cfg.EditWindow}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Expenses:   services.NewExpenseService(repo, repo, publisher),
		Calendar:   services.NewCalendarService(repo, repo, window),
		Threads:    services.NewThreadService(repo, window),
		Summary:    services.NewSummaryService(repo, repo, repo),
		Categories: repo,
		Members:    repo,
		Budget:     repo,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Starting housetab server", "port", cfg.Port, "edit_window", cfg.EditWindow)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	slog.Info("Server stopped gracefully")
}
