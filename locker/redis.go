package locker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL   = 30 * time.Second
	defaultLockRetry = 50 * time.Millisecond
)

// releaseScript deletes the lock only if the caller still owns it, so a
// holder whose lock expired cannot release a successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// RedisLocker serializes renders per key across processes via SET NX with a
// random ownership token. The TTL bounds how long a crashed holder can block
// a key; since renders for one key are byte-identical, an expired lock that
// lets a second replica render the same key is wasteful but harmless.
type RedisLocker struct {
	rdb   redis.UniversalClient
	ns    string        // key prefix; should identify the cache instance
	ttl   time.Duration // lock expiry
	retry time.Duration // poll interval while waiting
}

var _ Locker = (*RedisLocker)(nil)

// NewRedisLocker creates a Redis-backed locker with default TTL (30s) and
// retry interval (50ms).
func NewRedisLocker(client redis.UniversalClient, namespace string) *RedisLocker {
	return NewRedisLockerWithTTL(client, namespace, defaultLockTTL, defaultLockRetry)
}

// NewRedisLockerWithTTL creates a Redis-backed locker. Non-positive ttl or
// retry fall back to the defaults.
func NewRedisLockerWithTTL(client redis.UniversalClient, namespace string, ttl, retry time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if retry <= 0 {
		retry = defaultLockRetry
	}
	return &RedisLocker{rdb: client, ns: namespace, ttl: ttl, retry: retry}
}

func (l *RedisLocker) key(k string) string { return "lock:" + l.ns + ":" + k }

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	k := l.key(key)
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				// Best-effort: an expired lock has already been released
				// by Redis, and the script refuses foreign tokens.
				_ = releaseScript.Run(context.Background(), l.rdb, []string{k}, token).Err()
			}
			return release, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close closes the underlying Redis client.
func (l *RedisLocker) Close(context.Context) error { return l.rdb.Close() }
