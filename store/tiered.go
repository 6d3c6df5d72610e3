package store

import (
	"context"
	"errors"
)

// Tiered composes a fast, lossy front store (e.g. BigCache, Ristretto) with
// an authoritative back store (filesystem, Redis, S3). Reads consult the
// front first and backfill it on a back hit; writes land in the back first
// and seed the front best-effort. The back store alone decides existence.
type Tiered struct {
	Front Store
	Back  Store
}

var _ Store = (*Tiered)(nil)

func NewTiered(front, back Store) (*Tiered, error) {
	if front == nil || back == nil {
		return nil, errors.New("tiered store: front and back are required")
	}
	return &Tiered{Front: front, Back: back}, nil
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, err := t.Front.Get(ctx, key); err == nil && ok {
		return b, true, nil
	}
	b, ok, err := t.Back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_, _ = t.Front.Put(ctx, key, b) // backfill best-effort
	return b, true, nil
}

func (t *Tiered) Put(ctx context.Context, key string, value []byte) (bool, error) {
	ok, err := t.Back.Put(ctx, key, value)
	if err != nil || !ok {
		return ok, err
	}
	_, _ = t.Front.Put(ctx, key, value) // seed best-effort
	return true, nil
}

func (t *Tiered) Exists(ctx context.Context, key string) (bool, error) {
	return t.Back.Exists(ctx, key)
}

func (t *Tiered) Del(ctx context.Context, key string) error {
	ferr := t.Front.Del(ctx, key)
	berr := t.Back.Del(ctx, key)
	return errors.Join(ferr, berr)
}

func (t *Tiered) Close(ctx context.Context) error {
	ferr := t.Front.Close(ctx)
	berr := t.Back.Close(ctx)
	return errors.Join(ferr, berr)
}
