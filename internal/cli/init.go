// Package cli consolidates the initialization shared by cmd/planner and
// cmd/planner-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"planner/internal/config"
	"planner/internal/log"
	"planner/internal/store"
)

// SetupLogger initializes structured logging and installs it as the
// process default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Missing files are
// fine; production sets real environment variables.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the document store selected by the configuration,
// exiting the process on failure.
func InitStore(logger *log.Logger, cfg *config.Config) store.Store {
	switch cfg.DataBackend {
	case "disk":
		st, err := store.NewDisk(cfg.DataDir)
		if err != nil {
			logger.Error("Failed to open disk store", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		logger.Info("Using disk document store", "dir", cfg.DataDir)
		return st
	case "sqlite":
		st, err := store.NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Using SQLite document store", "path", cfg.SQLiteDBPath)
		return st
	default:
		logger.Info("Using in-memory document store")
		return store.NewMemory()
	}
}

// GracefulShutdown installs signal handling. The returned context is
// cancelled on SIGINT/SIGTERM after the cleanup callback has run; the
// channel closes once shutdown is complete.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup()
		}

		cancel()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		case <-time.After(2 * time.Second):
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and shutdown has
// finished.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
