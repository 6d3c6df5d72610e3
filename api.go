package rendercache

import (
	"context"
	"time"

	cd "github.com/unkn0wn-root/rendercache/codec"
	lk "github.com/unkn0wn-root/rendercache/locker"
	rd "github.com/unkn0wn-root/rendercache/renderer"
	st "github.com/unkn0wn-root/rendercache/store"
)

// KeyFunc derives the cache key for a content blob. It must be a pure
// function of the exact input bytes and return a filesystem-safe string
// (no path separators); byte-identical inputs must map to the same key.
type KeyFunc func(content []byte) string

// Cache is the high-level, store-agnostic render cache API.
// V is the artifact type produced by the Renderer; serialization between V
// and stored bytes is handled by a pluggable Codec[V].
type Cache[V any] interface {
	Enabled() bool
	Close(context.Context) error

	// Render returns the artifact for content. If one is already published
	// under the content's key it is returned without invoking the renderer;
	// otherwise the renderer runs once and the result is published first.
	Render(ctx context.Context, content []byte) (V, error)

	// Key returns the cache key derived from content.
	Key(content []byte) string

	// Contains reports whether an artifact is already published for content.
	Contains(ctx context.Context, content []byte) (bool, error)
}

// Options tune the behavior of the render cache.
// Store, Renderer, and Codec are required; others have sensible defaults.
type Options[V any] struct {
	// Required
	Store    st.Store
	Renderer rd.Renderer[V]
	Codec    cd.Codec[V]

	Logger        Logger        // if nil, NopLogger is used
	Hooks         Hooks         // if nil, NopHooks is used
	Locker        lk.Locker     // nil => locker.NewLocal() (in-process)
	KeyFunc       KeyFunc       // nil => SHA256Hex
	RenderTimeout time.Duration // bounds each renderer invocation; 0 => 2m
	Disabled      bool          // render every call; never touch the store
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
