// Package ristretto adapts dgraph-io/ristretto as an in-memory artifact
// store.
//
// Ristretto admits entries probabilistically and evicts under cost pressure,
// so Put may be rejected and a stored entry may disappear; use it as the
// front tier of store.Tiered in front of a durable store.
package ristretto

import (
	"context"
	"errors"

	rc "github.com/dgraph-io/ristretto"
)

type Store struct {
	c *rc.Cache
}

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	// Entry cost is the artifact's byte length.
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (p *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (p *Store) Put(_ context.Context, key string, value []byte) (bool, error) {
	return p.c.Set(key, value, int64(len(value))), nil
}

func (p *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := p.Get(ctx, key)
	return ok, err
}

func (p *Store) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Store) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Wait blocks until buffered writes have been applied, making a preceding
// Put visible to Get. Mostly useful in tests.
func (p *Store) Wait() { p.c.Wait() }

// Metrics exposes ristretto metrics if enabled (not part of store.Store).
func (p *Store) Metrics() *rc.Metrics { return p.c.Metrics }
