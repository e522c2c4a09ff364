package md2tex

import (
	"context"
	"io"
	"strings"

	"github.com/alnah/go-md2tex/internal/inspect"
	"github.com/alnah/go-md2tex/internal/pipeline"
)

// Converter turns Markdown into LaTeX. It holds no per-document state and is
// safe for concurrent use.
type Converter struct {
	opts      pipeline.Options
	inspector *inspect.Inspector
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithDefaults, WithMaxLineSize).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		inspector: inspect.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads Markdown from r and writes LaTeX to w.
// The caller owns r and w; Convert flushes its own buffer but never closes w.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	return pipeline.Convert(ctx, r, w, c.opts)
}

// ConvertString converts an in-memory Markdown document.
func (c *Converter) ConvertString(ctx context.Context, markdown string) (string, error) {
	var b strings.Builder
	if _, err := c.Convert(ctx, strings.NewReader(markdown), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Inspect reports Markdown constructs in source that Convert writes as plain
// text instead of translating.
func (c *Converter) Inspect(ctx context.Context, source []byte) ([]Finding, error) {
	return c.inspector.Inspect(ctx, source)
}
