// Package rendercache implements a content-addressed render cache: a content
// blob is hashed to a fixed-length key, a previously rendered artifact under
// that key is returned as-is, and a miss invokes a pluggable Renderer and
// publishes its output atomically before returning it.
//
// Components:
//   - Store: byte store addressed by key (filesystem, Redis, S3, or an
//     in-memory tier composed in front of a durable one).
//   - Renderer[V]: turns raw content into an artifact. External command,
//     in-process Markdown, or any function.
//   - Codec[V]: (de)serializes V <-> []byte. codec.Bytes for raw artifacts.
//   - Locker: per-key mutual exclusion so concurrent misses render once.
//
// Keys are hex digests of the exact content bytes (SHA-256 by default), so
// byte-identical inputs share one artifact and any edit produces a new key.
// An artifact, once published, is never rewritten; a failed render leaves
// nothing behind under its key.
//
// Typical use:
//
//	st, _ := fs.New(fs.Config{Dir: ".render-cache", Ext: ".html"})
//	r, _ := execrender.New(execrender.Config{
//		Command: "jupyter",
//		Args:    []string{"nbconvert", "--to", "html", "{input}", "--output", "{output}"},
//	})
//	cache, _ := rendercache.New[[]byte](rendercache.Options[[]byte]{
//		Store:    st,
//		Renderer: r,
//		Codec:    codec.Bytes{},
//	})
//	html, err := cache.Render(ctx, block)
package rendercache
