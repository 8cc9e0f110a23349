package repository

import (
	"context"
)

// KVRepository is a durable key-value slot store. Put replaces the whole
// value for a key in one step.
type KVRepository interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written or was deleted.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
