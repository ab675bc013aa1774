package cache

import (
	"context"
	"time"
)

// Store is a key-value backend with TTL expiry. It is passed into the
// handlers that need caching so tests can substitute a deterministic
// implementation.
type Store interface {
	// Get returns the cached value and whether the key was present and
	// not yet expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Clear removes the key immediately, regardless of remaining TTL.
	Clear(ctx context.Context, key string) error
	// ClearPrefix removes every key starting with prefix.
	ClearPrefix(ctx context.Context, prefix string) error
}
