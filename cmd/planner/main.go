// Command planner serves the planner JSON API backed by a document store,
// with debounced persistence and optional AMQP change fanout.
package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"time"

	"planner/internal/amqp"
	"planner/internal/cli"
	"planner/internal/http"
	"planner/internal/log"
	"planner/internal/planner"
	"planner/internal/store"
	"planner/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	st := cli.InitStore(logger, cfg)

	debouncer := worker.NewDebouncer(st, cfg.SaveDebounce, logger.WithComponent(log.ComponentWorker))

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		amqpClient = client
		logger.Info("AMQP change fanout enabled", "exchange", cfg.AMQPExchange)

		versioned, _ := st.(*store.SQLite)
		debouncer.OnSaved(func(ctx context.Context, key string) {
			var version int64
			if versioned != nil {
				v, err := versioned.Version(ctx, key)
				if err != nil {
					logger.WarnContext(ctx, "Version lookup failed", "key", key, "error", err)
				} else {
					version = v
				}
			}
			if err := amqpClient.PublishDocumentChanged(ctx, key, version); err != nil {
				logger.ErrorContext(ctx, "Change publish failed", "key", key, "error", err)
			}
		})
	}

	svc := planner.NewService(st, debouncer, cfg.Scope, logger.WithComponent(log.ComponentApp))

	server := http.NewServer(":"+cfg.Port, svc)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
		debouncer.Flush(shutdownCtx)
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Error("AMQP close failed", "error", err)
			}
		}
		if closer, ok := st.(*store.SQLite); ok {
			if err := closer.Close(); err != nil {
				logger.Error("Store close failed", "error", err)
			}
		}
	})

	// External edits to the backing store reload the affected session.
	if watcher, ok := st.(store.Watcher); ok {
		events, err := watcher.Subscribe(ctx)
		if err != nil {
			logger.Error("Store subscribe failed", "error", err)
		} else {
			go func() {
				for ev := range events {
					if err := svc.HandleChange(ctx, ev.Key); err != nil {
						logger.Warn("Change reload failed", "key", ev.Key, "error", err)
					}
				}
			}()
			logger.Info("Watching store for external changes")
		}
	}

	go func() {
		logger.Info("Planner API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	cli.WaitForShutdown(ctx, done)
}
