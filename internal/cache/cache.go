package cache

import "time"

// Cache is the contract the resolver uses for memoizing membership state.
// Keeping it an interface allows swapping the in-memory implementation for a
// shared one without touching the services.
type Cache interface {
	// Set stores a value under key for the given duration.
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value by key, reporting whether it was present.
	Get(key string) (interface{}, bool)

	// Delete removes a value by key.
	Delete(key string)
}
