package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"planner/internal/amqp"
	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/store"
)

type fakeExporter struct {
	calls []string
	err   error
}

func (f *fakeExporter) ExportCycles(_ context.Context, user string, _ core.CycleSet) error {
	f.calls = append(f.calls, user)
	return f.err
}

func TestExportWorkerExportsCycles(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	set := core.GenerateCycles("2024-01-01")
	data, _ := json.Marshal(set)
	key := store.Key("planner", "u1", store.CollectionCycles)
	if err := mem.Save(ctx, key, data); err != nil {
		t.Fatalf("seed: %v", err)
	}

	exporter := &fakeExporter{}
	w := NewExportWorker(mem, exporter, "planner", log.New(log.DefaultConfig()))

	if err := w.HandleDocumentChanged(ctx, &amqp.DocumentChangedMessage{Key: key, Version: 1}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(exporter.calls) != 1 || exporter.calls[0] != "u1" {
		t.Fatalf("export calls: %v", exporter.calls)
	}
}

func TestExportWorkerIgnoresOtherCollections(t *testing.T) {
	ctx := context.Background()
	exporter := &fakeExporter{}
	w := NewExportWorker(store.NewMemory(), exporter, "planner", log.New(log.DefaultConfig()))

	for _, key := range []string{
		store.Key("planner", "u1", store.CollectionTasks),
		store.Key("other", "u1", store.CollectionCycles),
		"garbage",
	} {
		if err := w.HandleDocumentChanged(ctx, &amqp.DocumentChangedMessage{Key: key}); err != nil {
			t.Fatalf("handle %s: %v", key, err)
		}
	}
	if len(exporter.calls) != 0 {
		t.Fatalf("unexpected exports: %v", exporter.calls)
	}
}

func TestExportWorkerPropagatesExportErrors(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	key := store.Key("planner", "u1", store.CollectionCycles)
	data, _ := json.Marshal(core.GenerateCycles("2024-01-01"))
	if err := mem.Save(ctx, key, data); err != nil {
		t.Fatalf("seed: %v", err)
	}

	exporter := &fakeExporter{err: errors.New("spreadsheet unavailable")}
	w := NewExportWorker(mem, exporter, "planner", log.New(log.DefaultConfig()))

	if err := w.HandleDocumentChanged(ctx, &amqp.DocumentChangedMessage{Key: key}); err == nil {
		t.Fatal("transient export failure should error for requeue")
	}
}
