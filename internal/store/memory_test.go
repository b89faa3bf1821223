package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLoadSave(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Load(ctx, "planner/u1/tasks"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := m.Save(ctx, "planner/u1/tasks", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, ok, err := m.Load(ctx, "planner/u1/tasks")
	if err != nil || !ok || string(data) != `{"a":1}` {
		t.Fatalf("load: %q ok=%v err=%v", data, ok, err)
	}

	// Mutating the returned slice must not corrupt the stored copy.
	data[0] = 'x'
	again, _, _ := m.Load(ctx, "planner/u1/tasks")
	if string(again) != `{"a":1}` {
		t.Fatalf("stored copy mutated: %q", again)
	}
}

func TestMemorySubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMemory()
	events, err := m.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := m.Save(ctx, "planner/u1/habits", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Key != "planner/u1/habits" {
			t.Fatalf("event key: %q", ev.Key)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	cancel()
	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected channel to close after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
