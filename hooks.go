package rendercache

import "time"

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// An artifact already existed for the key.
	Hit(key string)

	// No artifact existed; the renderer is about to run.
	Miss(key string)

	// Renderer produced an artifact.
	RenderDone(key string, d time.Duration)

	// Renderer failed, timed out, or produced no output.
	RenderFailed(key string, err error)

	// Store returned ok=false on Put (backpressure/eviction).
	StorePutRejected(key string)

	// A published artifact failed to decode and was deleted.
	// reason ∈ {"value_decode", "read_back_decode"}
	SelfHeal(key, reason string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string)                       {}
func (NopHooks) Miss(string)                      {}
func (NopHooks) RenderDone(string, time.Duration) {}
func (NopHooks) RenderFailed(string, error)       {}
func (NopHooks) StorePutRejected(string)          {}
func (NopHooks) SelfHeal(string, string)          {}
