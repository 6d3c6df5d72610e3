// Package markdown renders Markdown content to HTML in-process via goldmark.
// Needs no external toolchain, which makes it the cheapest useful renderer
// to put behind the cache.
package markdown

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Config struct {
	// GFM enables GitHub Flavored Markdown extensions (tables,
	// strikethrough, autolinks, task lists).
	GFM bool

	// UnsafeHTML passes raw HTML blocks through instead of escaping them.
	// Enable only for trusted content.
	UnsafeHTML bool
}

type Renderer struct {
	md goldmark.Markdown
}

func New(cfg Config) *Renderer {
	var opts []goldmark.Option
	if cfg.GFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	if cfg.UnsafeHTML {
		opts = append(opts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	return &Renderer{md: goldmark.New(opts...)}
}

func (r *Renderer) Render(ctx context.Context, content []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.md.Convert(content, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
