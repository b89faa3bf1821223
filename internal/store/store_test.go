package store

import "testing"

func TestKeyRoundTrip(t *testing.T) {
	key := Key("planner", "u1", CollectionTasks)
	if key != "planner/u1/tasks" {
		t.Fatalf("key: %q", key)
	}
	scope, user, collection, err := SplitKey(key)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if scope != "planner" || user != "u1" || collection != CollectionTasks {
		t.Fatalf("split: %q %q %q", scope, user, collection)
	}
}

func TestSplitKeyRejectsMalformed(t *testing.T) {
	for _, key := range []string{"", "planner", "planner/u1", "planner//tasks", "a/b/c/d"} {
		if _, _, _, err := SplitKey(key); err == nil {
			t.Fatalf("expected error for %q", key)
		}
	}
}
