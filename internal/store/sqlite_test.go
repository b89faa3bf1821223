package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteLoadSave(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	key := Key("planner", "u1", CollectionCycles)
	if _, ok, err := s.Load(ctx, key); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Save(ctx, key, []byte(`{"list":[]}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, ok, err := s.Load(ctx, key)
	if err != nil || !ok || string(data) != `{"list":[]}` {
		t.Fatalf("load: %q ok=%v err=%v", data, ok, err)
	}
}

func TestSQLiteVersionBumpsPerSave(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	key := Key("planner", "u1", CollectionTasks)
	if v, err := s.Version(ctx, key); err != nil || v != 0 {
		t.Fatalf("absent version: %d, %v", v, err)
	}

	for i := 1; i <= 3; i++ {
		if err := s.Save(ctx, key, []byte(`[]`)); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		v, err := s.Version(ctx, key)
		if err != nil || v != int64(i) {
			t.Fatalf("version after save %d: %d, %v", i, v, err)
		}
	}
}
