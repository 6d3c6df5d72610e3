// Package locker provides per-key mutual exclusion for cache misses, so
// concurrent requests for the same missing key render once instead of N
// times. Use Local (default) for in-process locks, or RedisLocker to
// coordinate renders across replicas sharing one store.
package locker

import "context"

// Locker serializes work per key.
type Locker interface {
	// Acquire blocks until the key's lock is held or ctx is done. The
	// returned release must be called exactly once; extra calls are no-ops.
	Acquire(ctx context.Context, key string) (release func(), err error)

	// Close releases resources (no-op ok).
	Close(context.Context) error
}
