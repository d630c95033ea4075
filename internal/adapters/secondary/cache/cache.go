package cache

import "time"

// Cache defines the key/value contract used by the cached repository.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the value stored under key.
	// Returns the value and true if present and not expired, nil and false otherwise.
	Get(key string) (any, bool)

	// Set stores value under key, overwriting any previous entry.
	// The entry expires ttl after the call.
	Set(key string, value any, ttl time.Duration)
}
