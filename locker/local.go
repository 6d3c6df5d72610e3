package locker

import (
	"context"
	"sync"
)

type localLock struct {
	sem  chan struct{} // capacity 1; a buffered send acquires
	refs int
}

// Local keeps per-key locks in-process (default).
// Lock entries are created on demand and removed once no goroutine holds or
// waits on them, so the map does not grow with the keyspace.
type Local struct {
	mu    sync.Mutex
	locks map[string]*localLock
}

var _ Locker = (*Local)(nil)

func NewLocal() *Local {
	return &Local{locks: make(map[string]*localLock)}
}

func (l *Local) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &localLock{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		release := func() {
			once.Do(func() {
				<-e.sem
				l.unref(key, e)
			})
		}
		return release, nil
	case <-ctx.Done():
		l.unref(key, e)
		return nil, ctx.Err()
	}
}

func (l *Local) unref(key string, e *localLock) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}

func (l *Local) Close(context.Context) error { return nil }
