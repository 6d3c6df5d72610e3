// Package renderer defines the rendering capability consumed by rendercache.
//
// A Renderer is a black box from content bytes to an artifact. The cache
// never inspects how rendering happens; it only requires that a nil error
// means the artifact is complete and safe to persist, and that the renderer
// honors ctx (invocations are bounded by the cache's render timeout).
package renderer

import "context"

// Renderer turns raw content into an artifact of type V.
type Renderer[V any] interface {
	Render(ctx context.Context, content []byte) (V, error)
}

// Func adapts a plain function to Renderer.
type Func[V any] func(ctx context.Context, content []byte) (V, error)

func (f Func[V]) Render(ctx context.Context, content []byte) (V, error) {
	return f(ctx, content)
}
