// Package redis implements a Redis-backed artifact store.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	st "github.com/unkn0wn-root/rendercache/store"
)

var ErrNilClient = errors.New("redis store: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	prefix      string
	ttl         time.Duration
	closeClient bool
}

var _ st.Store = (*Redis)(nil)

type Config struct {
	Client goredis.UniversalClient

	// Prefix isolates this cache's keys inside a shared Redis keyspace,
	// e.g. "render:blog:".
	Prefix string

	// TTL expires artifacts after the given duration. Zero keeps artifacts
	// forever; eviction then stays an operator concern (maxmemory policy).
	TTL time.Duration

	CloseClient bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{
		rdb:         cfg.Client,
		prefix:      cfg.Prefix,
		ttl:         cfg.TTL,
		closeClient: cfg.CloseClient,
	}, nil
}

func (p *Redis) key(k string) string { return p.prefix + k }

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, p.key(key)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (p *Redis) Put(ctx context.Context, key string, value []byte) (bool, error) {
	if err := p.rdb.Set(ctx, p.key(key), value, p.ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := p.rdb.Exists(ctx, p.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (p *Redis) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, p.key(key)).Err()
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
