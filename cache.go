package rendercache

import (
	"context"
	"fmt"
	"time"

	cd "github.com/unkn0wn-root/rendercache/codec"
	lk "github.com/unkn0wn-root/rendercache/locker"
	rd "github.com/unkn0wn-root/rendercache/renderer"
	st "github.com/unkn0wn-root/rendercache/store"
)

const defaultRenderTimeout = 2 * time.Minute

type cache[V any] struct {
	store    st.Store
	renderer rd.Renderer[V]
	codec    cd.Codec[V]
	log      Logger
	hooks    Hooks
	locks    lk.Locker
	keyFn    KeyFunc
	timeout  time.Duration
	enabled  bool
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("rendercache: store is required")
	}
	if opts.Renderer == nil {
		return nil, fmt.Errorf("rendercache: renderer is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("rendercache: codec is required")
	}

	c := &cache[V]{
		store:    opts.Store,
		renderer: opts.Renderer,
		codec:    opts.Codec,
		enabled:  !opts.Disabled,
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.timeout = coalesce[time.Duration](opts.RenderTimeout, defaultRenderTimeout)

	if opts.KeyFunc != nil {
		c.keyFn = opts.KeyFunc
	} else {
		c.keyFn = SHA256Hex
	}

	if opts.Locker != nil {
		c.locks = opts.Locker
	} else {
		// default to in-process per-key locks
		c.locks = lk.NewLocal()
	}

	return c, nil
}

func (c *cache[V]) Enabled() bool { return c.enabled }

func (c *cache[V]) Key(content []byte) string { return c.keyFn(content) }

func (c *cache[V]) Close(ctx context.Context) error {
	// Close locker first (best effort)
	if c.locks != nil {
		_ = c.locks.Close(ctx)
	}
	if c.store != nil {
		return c.store.Close(ctx)
	}
	return nil
}

func (c *cache[V]) Contains(ctx context.Context, content []byte) (bool, error) {
	if !c.enabled {
		return false, nil
	}
	key := c.keyFn(content)
	ok, err := c.store.Exists(ctx, key)
	if err != nil {
		return false, &StorageError{Op: "exists", Key: key, Err: err}
	}
	return ok, nil
}

func (c *cache[V]) Render(ctx context.Context, content []byte) (V, error) {
	var zero V
	key := c.keyFn(content)

	if !c.enabled {
		return c.invoke(ctx, key, content)
	}

	// Fast path: artifact already published.
	if v, ok, err := c.lookup(ctx, key); err != nil {
		return zero, err
	} else if ok {
		c.hooks.Hit(key)
		return v, nil
	}

	release, err := c.locks.Acquire(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("rendercache: acquire lock %q: %w", key, err)
	}
	defer release()

	// Re-check under the lock: another caller may have published the
	// artifact while we waited.
	if v, ok, err := c.lookup(ctx, key); err != nil {
		return zero, err
	} else if ok {
		c.hooks.Hit(key)
		return v, nil
	}

	c.hooks.Miss(key)
	c.log.Debug("miss; invoking renderer", Fields{"key": key})

	v, err := c.invoke(ctx, key, content)
	if err != nil {
		return zero, err
	}

	payload, err := c.codec.Encode(v)
	if err != nil {
		return zero, &RenderError{Key: key, Err: fmt.Errorf("encode artifact: %w", err)}
	}

	ok, err := c.store.Put(ctx, key, payload)
	if err != nil {
		return zero, &StorageError{Op: "put", Key: key, Err: err}
	}
	if !ok {
		// Nothing was published; hand the fresh artifact to the caller and
		// let a later call try the store again.
		c.hooks.StorePutRejected(key)
		c.log.Debug("store rejected artifact write (pressure)", Fields{"key": key})
		return v, nil
	}

	// Read back what was published so every caller observes the stored bytes.
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return zero, &StorageError{Op: "read_back", Key: key, Err: err}
	}
	if !ok {
		return zero, &StorageError{Op: "read_back", Key: key, Err: errMissingAfterWrite}
	}
	out, err := c.codec.Decode(raw)
	if err != nil {
		_ = c.store.Del(ctx, key) // do not leave a corrupt artifact visible
		c.hooks.SelfHeal(key, "read_back_decode")
		return zero, &StorageError{Op: "read_back", Key: key, Err: err}
	}
	return out, nil
}

// lookup returns the decoded artifact for key if one is published.
// Undecodable payloads are deleted and reported as a miss so a corrupt
// entry can never permanently poison its key.
func (c *cache[V]) lookup(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return zero, false, &StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return zero, false, nil
	}
	v, err := c.codec.Decode(raw)
	if err != nil {
		_ = c.store.Del(ctx, key) // self-heal corrupt
		c.hooks.SelfHeal(key, "value_decode")
		c.log.Warn("deleted undecodable artifact", Fields{"key": key, "err": err})
		return zero, false, nil
	}
	return v, true, nil
}

// invoke runs the renderer under the configured deadline.
func (c *cache[V]) invoke(ctx context.Context, key string, content []byte) (V, error) {
	var zero V
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	start := time.Now()
	v, err := c.renderer.Render(ctx, content)
	if err != nil {
		c.hooks.RenderFailed(key, err)
		return zero, &RenderError{Key: key, Err: err}
	}
	c.hooks.RenderDone(key, time.Since(start))
	return v, nil
}
