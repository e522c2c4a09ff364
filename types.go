package md2tex

import (
	"github.com/alnah/go-md2tex/internal/inspect"
	"github.com/alnah/go-md2tex/internal/metadata"
	"github.com/alnah/go-md2tex/internal/pipeline"
	"github.com/alnah/go-md2tex/internal/tex"
)

// Metadata holds the document settings read from front matter.
type Metadata = metadata.Metadata

// Stats summarizes one conversion.
type Stats = pipeline.Stats

// Finding is one Markdown construct the converter does not translate.
type Finding = inspect.Finding

// DefaultMetadata returns the built-in metadata defaults
// (a4paper, 12pt, article, 1in, freesans, "Untitled", "No Author").
func DefaultMetadata() Metadata {
	return metadata.Defaults()
}

// ParseMetadata parses a front-matter YAML block without its "---" delimiters.
func ParseMetadata(source string) (Metadata, error) {
	return metadata.Load(source)
}

// Preamble returns the LaTeX preamble for meta, without \begin{document}.
func Preamble(meta Metadata) string {
	return pipeline.BuildPreamble(meta)
}

// Escape returns text with LaTeX reserved characters escaped.
func Escape(text string) string {
	return tex.Escape(text)
}

// SectionCommand returns the sectioning command for a heading level (1-4).
// Other levels return ErrInvalidHeadingLevel.
func SectionCommand(level int) (string, error) {
	return tex.SectionCommand(level)
}

// Option configures a Converter.
type Option func(*Converter)

// WithDefaults sets the metadata used for fields missing from front matter
// and for documents without front matter. Empty fields of meta keep the
// values of DefaultMetadata.
func WithDefaults(meta Metadata) Option {
	return func(c *Converter) {
		c.opts.Defaults = meta
	}
}

// WithMaxLineSize bounds the size of a single input line in bytes.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithMaxLineSize(n int) Option {
	if n <= 0 {
		panic("md2tex: WithMaxLineSize size must be positive")
	}
	return func(c *Converter) {
		c.opts.MaxLineSize = n
	}
}
