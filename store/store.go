// Package store defines the artifact storage abstraction used by rendercache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Put for a key (no prepended/
// appended metadata, no re-encoding, no mutation). If a store performs
// internal transforms (e.g., compression), they MUST be fully reversed so
// that the bytes returned by Get are identical to the bytes given to Put.
//
// Publication MUST be atomic at the key level: a concurrent or later Get may
// observe no artifact or the complete artifact, never a partial one. A Put
// that fails must leave nothing visible under the key.
package store

import "context"

// Store is a minimal byte store addressed by content-derived keys.
// Must be safe for concurrent use.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put publishes value under key atomically.
	// Returns ok=false when the store rejected the write under pressure.
	Put(ctx context.Context, key string, value []byte) (ok bool, err error)

	// Exists reports whether a complete artifact is published under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Del removes a key (best-effort). The cache uses it only to drop
	// artifacts that fail integrity checks.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
