package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store used for tests and ephemeral runs. It also
// implements Watcher so session fan-out can be exercised without a disk.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
	subs map[chan Event]struct{}
}

func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string][]byte),
		subs: make(map[chan Event]struct{}),
	}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	m.docs[key] = cp
	subs := make([]chan Event, 0, len(m.subs))
	for ch := range m.subs {
		subs = append(subs, ch)
	}
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- Event{Key: key}:
		default:
			// Drop rather than block the writer; subscribers reload on
			// the next event anyway.
		}
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs, ch)
		m.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) Close() error {
	return nil
}
