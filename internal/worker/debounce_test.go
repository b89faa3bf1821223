package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"planner/internal/log"
)

// countingStore records every save so coalescing can be asserted.
type countingStore struct {
	mu    sync.Mutex
	saves map[string]int
	last  map[string][]byte
}

func newCountingStore() *countingStore {
	return &countingStore{
		saves: make(map[string]int),
		last:  make(map[string][]byte),
	}
}

func (s *countingStore) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (s *countingStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[key]++
	s.last[key] = data
	return nil
}

func (s *countingStore) Close() error { return nil }

func (s *countingStore) stats(key string) (int, []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves[key], s.last[key]
}

func TestDebouncerCoalescesRapidSaves(t *testing.T) {
	st := newCountingStore()
	d := NewDebouncer(st, 20*time.Millisecond, log.New(log.DefaultConfig()))

	d.Enqueue("planner/u1/tasks", []byte(`1`))
	d.Enqueue("planner/u1/tasks", []byte(`2`))
	d.Enqueue("planner/u1/tasks", []byte(`3`))

	deadline := time.Now().Add(2 * time.Second)
	for {
		if n, _ := st.stats("planner/u1/tasks"); n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("document never written")
		}
		time.Sleep(5 * time.Millisecond)
	}

	n, data := st.stats("planner/u1/tasks")
	if n != 1 {
		t.Fatalf("expected one coalesced write, got %d", n)
	}
	if string(data) != `3` {
		t.Fatalf("expected newest document to win, got %q", data)
	}
}

func TestDebouncerFlushWritesImmediately(t *testing.T) {
	st := newCountingStore()
	d := NewDebouncer(st, time.Hour, log.New(log.DefaultConfig()))

	d.Enqueue("planner/u1/habits", []byte(`[]`))
	d.Flush(context.Background())

	if n, _ := st.stats("planner/u1/habits"); n != 1 {
		t.Fatalf("flush should write pending documents, got %d writes", n)
	}
}

func TestDebouncerOnSavedHook(t *testing.T) {
	st := newCountingStore()
	d := NewDebouncer(st, time.Hour, log.New(log.DefaultConfig()))

	var mu sync.Mutex
	var saved []string
	d.OnSaved(func(_ context.Context, key string) {
		mu.Lock()
		saved = append(saved, key)
		mu.Unlock()
	})

	d.Enqueue("planner/u1/tasks", []byte(`[]`))
	d.Enqueue("planner/u1/cycles", []byte(`{}`))
	d.Flush(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(saved) != 2 {
		t.Fatalf("expected hook per saved key, got %v", saved)
	}
}
