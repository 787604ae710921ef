package driven

import "context"

// KeyValueStore is the backing store the content, theme and session stores
// write through to. Values are opaque serialised documents.
type KeyValueStore interface {
	// Get returns the value stored under key, or domain.ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists the keys currently held
	Keys(ctx context.Context) ([]string, error)

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error
}
