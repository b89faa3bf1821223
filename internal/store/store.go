// Package store persists planner documents as opaque JSON blobs keyed by
// scope, user, and collection. Backends share one contract so the rest of
// the app never cares whether bytes live in memory, on disk, or in SQLite.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Collection names. Each user owns at most one document per collection.
const (
	CollectionTasks      = "tasks"
	CollectionCategories = "categories"
	CollectionCycles     = "cycles"
	CollectionWealth     = "wealth_v2"
	CollectionReviews    = "reviews"
	CollectionHabits     = "habits"
)

// Store reads and writes whole documents.
type Store interface {
	// Load returns the document bytes and whether the key exists at all.
	// A missing document is not an error; callers seed defaults for it.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Event signals that the document under Key changed outside the caller's
// own writes.
type Event struct {
	Key string
}

// Watcher is implemented by backends that can report external changes.
type Watcher interface {
	// Subscribe streams change events until ctx is cancelled. The channel
	// is closed when the watch ends; slow consumers may miss events and
	// should treat any event as a hint to reload.
	Subscribe(ctx context.Context) (<-chan Event, error)
}

// Key builds the canonical document key: scope/user/collection.
func Key(scope, user, collection string) string {
	return scope + "/" + user + "/" + collection
}

// SplitKey is the inverse of Key.
func SplitKey(key string) (scope, user, collection string, err error) {
	parts := strings.Split(key, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("store: malformed key %q", key)
	}
	return parts[0], parts[1], parts[2], nil
}
