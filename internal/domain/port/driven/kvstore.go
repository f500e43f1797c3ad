package driven

import "context"

// KVStore defines the driven port for the persistent key-value store that
// holds cached portfolio snapshots. Values are opaque bytes.
type KVStore interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
