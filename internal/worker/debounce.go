// Package worker contains the background pieces: the debounced document
// writer and the cycle export worker.
package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"planner/internal/log"
	"planner/internal/store"
)

const saveTimeout = 10 * time.Second

// Debouncer coalesces rapid saves of the same document into one write
// after a quiet interval. Mutators enqueue and move on; write failures are
// logged and the in-memory state stays authoritative.
type Debouncer struct {
	store    store.Store
	logger   *log.Logger
	interval time.Duration

	// onSaved runs after each successful write, outside the lock. Used to
	// publish change fanout. May be nil.
	onSaved func(ctx context.Context, key string)

	mu       sync.Mutex
	pending  map[string][]byte
	timer    *time.Timer
	inflight sync.WaitGroup
}

func NewDebouncer(st store.Store, interval time.Duration, logger *log.Logger) *Debouncer {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Debouncer{
		store:    st,
		logger:   logger,
		interval: interval,
		pending:  make(map[string][]byte),
	}
}

// OnSaved installs the post-save hook. Call before the first Enqueue.
func (d *Debouncer) OnSaved(fn func(ctx context.Context, key string)) {
	d.onSaved = fn
}

// Enqueue schedules a document for writing. A newer document for the same
// key replaces the queued one.
func (d *Debouncer) Enqueue(key string, data []byte) {
	d.mu.Lock()
	d.pending[key] = data
	if d.timer == nil {
		d.timer = time.AfterFunc(d.interval, func() {
			d.inflight.Add(1)
			defer d.inflight.Done()
			d.flush(context.Background())
		})
	}
	d.mu.Unlock()
}

// Flush writes everything queued and waits for in-flight writes. Called on
// shutdown so the quiet interval never loses the last edits.
func (d *Debouncer) Flush(ctx context.Context) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.flush(ctx)
	d.inflight.Wait()
}

func (d *Debouncer) flush(ctx context.Context) {
	d.mu.Lock()
	batch := d.pending
	d.pending = make(map[string][]byte)
	d.timer = nil
	d.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for key, data := range batch {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, saveTimeout)
			defer cancel()
			if err := d.store.Save(sctx, key, data); err != nil {
				d.logger.ErrorContext(sctx, "Document save failed", "key", key, "error", err)
				return nil // one bad document must not abort the batch
			}
			if d.onSaved != nil {
				d.onSaved(sctx, key)
			}
			return nil
		})
	}
	g.Wait()
}
