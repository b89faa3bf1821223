package core

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier. UUIDs replace the short random
// base-36 ids the app historically generated, which could collide when two
// records were created in the same tick.
func NewID() string {
	return uuid.NewString()
}
