package sloghooks

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/rendercache"
)

type Options struct {
	// Sampling to avoid floods on hot paths; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ rendercache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(key string) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("rendercache.hit", "key", key)
}

func (h *Hooks) Miss(key string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("rendercache.miss", "key", key)
}

func (h *Hooks) RenderDone(key string, d time.Duration) {
	if h.l == nil {
		return
	}
	h.l.Info("rendercache.render_done",
		"key", key,
		"duration", d)
}

func (h *Hooks) RenderFailed(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("rendercache.render_failed",
		"key", key,
		"err", err)
}

func (h *Hooks) StorePutRejected(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("rendercache.store_put_rejected", "key", key)
}

func (h *Hooks) SelfHeal(key, reason string) {
	if h.l == nil {
		return
	}
	h.l.Warn("rendercache.self_heal",
		"key", key,
		"reason", reason)
}
