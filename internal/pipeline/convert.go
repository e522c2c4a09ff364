package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-md2tex/internal/markdown"
	"github.com/alnah/go-md2tex/internal/metadata"
	"github.com/alnah/go-md2tex/internal/tex"
)

// HeaderMarker opens and closes a front-matter block.
const HeaderMarker = "---"

// DefaultMaxLineSize bounds a single input line (1MB).
const DefaultMaxLineSize = 1 << 20

// Sentinel errors for conversion.
var (
	ErrUnclosedFrontMatter = errors.New("front matter opened but never closed")
	ErrReadInput           = errors.New("failed to read input")
	ErrWriteOutput         = errors.New("failed to write output")
)

// Options tunes a single conversion. The zero value is ready to use.
type Options struct {
	// Defaults fills metadata fields missing from the front matter. Empty
	// fields fall back to metadata.Defaults() one by one.
	Defaults metadata.Metadata
	// MaxLineSize bounds one input line in bytes. Zero means DefaultMaxLineSize.
	MaxLineSize int
}

func (o Options) withDefaults() Options {
	o.Defaults = metadata.Overlay(metadata.Defaults(), o.Defaults)
	if o.MaxLineSize <= 0 {
		o.MaxLineSize = DefaultMaxLineSize
	}
	return o
}

// state is the position of the converter relative to the front matter.
type state int

const (
	stateBeforeHeader state = iota // no line consumed yet
	stateInHeader                  // inside an open front-matter block
	stateBody                      // header written; every line is body
)

// lineKind classifies a body line.
type lineKind int

const (
	kindBlank lineKind = iota
	kindHeading
	kindText
)

// converter holds the state of one conversion run.
type converter struct {
	out      *bufio.Writer
	defaults metadata.Metadata
	state    state
	header   strings.Builder
	stats    Stats
}

// Convert reads Markdown from r and writes LaTeX to w. Output is buffered
// and flushed once after \end{document}. On error, anything already
// flushed to w is left as is and is not guaranteed to be valid LaTeX.
func Convert(ctx context.Context, r io.Reader, w io.Writer, opts Options) (Stats, error) {
	opts = opts.withDefaults()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, opts.MaxLineSize)), opts.MaxLineSize)

	c := &converter{
		out:      bufio.NewWriter(w),
		defaults: opts.Defaults,
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return c.stats, err
		}
		c.stats.Lines++
		if err := c.step(sc.Text()); err != nil {
			return c.stats, err
		}
	}
	if err := sc.Err(); err != nil {
		return c.stats, fmt.Errorf("%w: line %d: %w", ErrReadInput, c.stats.Lines+1, err)
	}

	return c.stats, c.finish()
}

// step advances the state machine by one input line.
func (c *converter) step(line string) error {
	switch c.state {
	case stateBeforeHeader:
		if line == HeaderMarker {
			c.state = stateInHeader
			c.stats.FrontMatter = true
			return nil
		}
		c.state = stateBody
		if err := c.write(BuildHeader(c.defaults)); err != nil {
			return err
		}
		return c.body(line)

	case stateInHeader:
		if line == HeaderMarker {
			meta, err := metadata.LoadWithDefaults(c.header.String(), c.defaults)
			if err != nil {
				return err
			}
			c.header.Reset()
			c.state = stateBody
			return c.write(BuildHeader(meta))
		}
		c.header.WriteString(line)
		c.header.WriteByte('\n')
		return nil

	default:
		return c.body(line)
	}
}

// body converts and writes one body line.
func (c *converter) body(line string) error {
	out, kind := convertLine(line)
	switch kind {
	case kindBlank:
		c.stats.BlankLines++
	case kindHeading:
		h, _ := markdown.MatchHeading(line)
		c.stats.Headings[h.Level-1]++
	default:
		c.stats.TextLines++
		if markdown.IsListItem(line) {
			c.stats.ListItems++
		}
	}
	return c.write(out + "\n")
}

// finish closes the document once the input is exhausted.
func (c *converter) finish() error {
	switch c.state {
	case stateInHeader:
		return fmt.Errorf("%w: missing closing %q", ErrUnclosedFrontMatter, HeaderMarker)
	case stateBeforeHeader:
		if err := c.write(BuildHeader(c.defaults)); err != nil {
			return err
		}
	}
	if err := c.write(EndDocument + "\n"); err != nil {
		return err
	}
	if err := c.out.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func (c *converter) write(s string) error {
	if _, err := c.out.WriteString(s); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// ConvertLine converts a single body line to LaTeX without a trailing
// newline. Headings of level 1-4 become sectioning commands; any other
// non-empty line is escaped as plain text.
func ConvertLine(line string) string {
	out, _ := convertLine(line)
	return out
}

func convertLine(line string) (string, lineKind) {
	if line == "" {
		return "", kindBlank
	}
	if h, ok := markdown.MatchHeading(line); ok {
		if s, err := tex.Section(h.Level, h.Content); err == nil {
			return s, kindHeading
		}
	}
	return tex.Escape(line), kindText
}
