// Command planner-worker consumes document change events and mirrors cycle
// plans into a Google Sheets spreadsheet.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"planner/internal/amqp"
	"planner/internal/cli"
	"planner/internal/export"
	"planner/internal/log"
	"planner/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}
	if !cfg.SheetsEnabled() {
		logger.Error("Google Sheets export is not configured",
			"hint", "set GOOGLE_SPREADSHEET_ID and service account credentials")
		os.Exit(1)
	}

	st := cli.InitStore(logger, cfg)

	creds, err := cfg.SheetsCredentials()
	if err != nil {
		logger.Error("Failed to load Sheets credentials", "error", err)
		os.Exit(1)
	}

	exporter, err := export.NewSheetsExporter(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, creds)
	if err != nil {
		logger.Error("Failed to initialize Sheets exporter", "error", err)
		os.Exit(1)
	}
	logger.Info("Sheets exporter ready",
		"spreadsheet", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}

	w := worker.NewExportWorker(st, exporter, cfg.Scope, logger.WithComponent(log.ComponentExport))

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := client.Close(); err != nil {
			logger.Error("AMQP close failed", "error", err)
		}
	})

	go func() {
		logger.Info("Export worker consuming", "queue", cfg.AMQPQueue)
		if err := client.Consume(ctx, w.HandleDocumentChanged); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Consumer stopped", "error", err)
			os.Exit(1)
		}
	}()

	cli.WaitForShutdown(ctx, done)
}
