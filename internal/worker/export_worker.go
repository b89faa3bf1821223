package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"planner/internal/amqp"
	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/store"
)

// CycleExporter mirrors the cycle tracker somewhere external, e.g. a
// spreadsheet.
type CycleExporter interface {
	ExportCycles(ctx context.Context, user string, set core.CycleSet) error
}

// ExportWorker listens for document changes and re-exports a user's cycle
// tracker whenever their cycles document is saved. Other collections pass
// through untouched.
type ExportWorker struct {
	store    store.Store
	exporter CycleExporter
	scope    string
	logger   *log.Logger
}

func NewExportWorker(st store.Store, exporter CycleExporter, scope string, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		store:    st,
		exporter: exporter,
		scope:    scope,
		logger:   logger,
	}
}

// HandleDocumentChanged processes one change message. Returning an error
// requeues the message, so only transient failures should error.
func (w *ExportWorker) HandleDocumentChanged(ctx context.Context, msg *amqp.DocumentChangedMessage) error {
	scope, user, collection, err := store.SplitKey(msg.Key)
	if err != nil {
		w.logger.WarnContext(ctx, "Skipping malformed key", "key", msg.Key, "error", err)
		return nil
	}
	if scope != w.scope || collection != store.CollectionCycles {
		return nil
	}

	data, found, err := w.store.Load(ctx, msg.Key)
	if err != nil {
		return fmt.Errorf("load cycles for export: %w", err)
	}
	if !found {
		w.logger.WarnContext(ctx, "Cycles document vanished before export", "key", msg.Key)
		return nil
	}

	var set core.CycleSet
	if err := json.Unmarshal(data, &set); err != nil {
		w.logger.ErrorContext(ctx, "Cycles document undecodable", "key", msg.Key, "error", err)
		return nil // re-delivering the same bytes cannot succeed
	}

	if err := w.exporter.ExportCycles(ctx, user, set); err != nil {
		return fmt.Errorf("export cycles for %s: %w", user, err)
	}

	w.logger.InfoContext(ctx, "Cycles exported", "user", user, "version", msg.Version)
	return nil
}
