// Package asynchook decouples hook callbacks from the render hot path: events
// are queued to a bounded channel and delivered by worker goroutines; when
// the queue is full, events are dropped rather than blocking a render.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    HitEvery: 100, // sample logs: ~every 100th hit
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := rendercache.New[[]byte](rendercache.Options[[]byte]{
//	    Store:    store,
//	    Renderer: renderer,
//	    Codec:    codec.Bytes{},
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"time"

	"github.com/unkn0wn-root/rendercache"
)

type Hooks struct {
	inner rendercache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ rendercache.Hooks = (*Hooks)(nil)

func New(inner rendercache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(k string)  { h.try(func() { h.inner.Hit(k) }) }
func (h *Hooks) Miss(k string) { h.try(func() { h.inner.Miss(k) }) }
func (h *Hooks) RenderDone(k string, d time.Duration) {
	h.try(func() { h.inner.RenderDone(k, d) })
}
func (h *Hooks) RenderFailed(k string, err error) {
	h.try(func() { h.inner.RenderFailed(k, err) })
}
func (h *Hooks) StorePutRejected(k string) {
	h.try(func() { h.inner.StorePutRejected(k) })
}
func (h *Hooks) SelfHeal(k, r string) { h.try(func() { h.inner.SelfHeal(k, r) }) }
