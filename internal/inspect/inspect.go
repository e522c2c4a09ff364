// Package inspect reports Markdown constructs that the LaTeX pipeline does
// not translate. Such constructs still reach the output, but only as escaped
// plain text, so a document relying on them renders differently than its
// Markdown source suggests.
package inspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ErrInspect indicates the document could not be analyzed.
var ErrInspect = errors.New("inspection failed")

// maxSectionLevel is the deepest heading the pipeline turns into a command.
const maxSectionLevel = 4

// Kind names a category of untranslated construct.
type Kind string

// Construct kinds.
const (
	KindList          Kind = "list"
	KindEmphasis      Kind = "emphasis"
	KindStrong        Kind = "strong"
	KindLink          Kind = "link"
	KindImage         Kind = "image"
	KindCodeSpan      Kind = "code-span"
	KindCodeBlock     Kind = "code-block"
	KindBlockquote    Kind = "blockquote"
	KindTable         Kind = "table"
	KindStrikethrough Kind = "strikethrough"
	KindFootnote      Kind = "footnote"
	KindHTML          Kind = "html"
	KindDeepHeading   Kind = "deep-heading"
	KindSetextHeading Kind = "setext-heading"
)

// Finding is one untranslated construct. Line is 1-based; 0 means the
// position could not be determined.
type Finding struct {
	Line    int
	Kind    Kind
	Message string
}

func (f Finding) String() string {
	if f.Line == 0 {
		return fmt.Sprintf("?: %s: %s", f.Kind, f.Message)
	}
	return fmt.Sprintf("%d: %s: %s", f.Line, f.Kind, f.Message)
}

// Inspector parses Markdown with goldmark and walks its AST.
type Inspector struct {
	md goldmark.Markdown
}

// New creates an Inspector with GFM, footnote and front-matter support.
// Front matter is consumed by goldmark-meta so its delimiters are not
// mistaken for thematic breaks or setext underlines.
func New() *Inspector {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			meta.Meta,          // --- front matter ---
		),
	)
	return &Inspector{md: md}
}

// Inspect returns findings for source, ordered by line.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (i *Inspector) Inspect(ctx context.Context, source []byte) ([]Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		findings []Finding
		err      error
	}

	done := make(chan result, 1)

	go func() {
		doc := i.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))
		w := &walker{source: source}
		if err := ast.Walk(doc, w.visit); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrInspect, err)}
			return
		}
		sort.SliceStable(w.findings, func(a, b int) bool {
			la, lb := w.findings[a].Line, w.findings[b].Line
			if la == 0 || lb == 0 {
				return lb == 0 && la != 0
			}
			return la < lb
		})
		done <- result{findings: w.findings}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.findings, r.err
	}
}

// walker collects findings during an AST walk.
type walker struct {
	source   []byte
	findings []Finding
}

func (w *walker) add(n ast.Node, kind Kind, msg string) {
	line := 0
	if off, ok := offsetOf(n); ok {
		line = bytes.Count(w.source[:off], []byte("\n")) + 1
	}
	w.findings = append(w.findings, Finding{Line: line, Kind: kind, Message: msg})
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch node := n.(type) {
	case *ast.List:
		if node.IsOrdered() {
			w.add(n, KindList, "ordered list items are written as plain text")
		} else {
			w.add(n, KindList, "bullet list items are written as plain text")
		}
	case *ast.Emphasis:
		if node.Level >= 2 {
			w.add(n, KindStrong, "strong emphasis markers are escaped, not rendered bold")
		} else {
			w.add(n, KindEmphasis, "emphasis markers are escaped, not rendered italic")
		}
	case *ast.Link, *ast.AutoLink:
		w.add(n, KindLink, "links are written as plain text")
	case *ast.Image:
		w.add(n, KindImage, "images are not included")
		return ast.WalkSkipChildren, nil
	case *ast.CodeSpan:
		w.add(n, KindCodeSpan, "inline code is not typeset verbatim")
		return ast.WalkSkipChildren, nil
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.add(n, KindCodeBlock, "code blocks are escaped line by line, not typeset verbatim")
		return ast.WalkSkipChildren, nil
	case *ast.Blockquote:
		w.add(n, KindBlockquote, "blockquote markers are written as plain text")
	case *ast.HTMLBlock, *ast.RawHTML:
		w.add(n, KindHTML, "raw HTML is written as plain text")
		return ast.WalkSkipChildren, nil
	case *east.Table:
		w.add(n, KindTable, "tables are written as plain text rows")
		return ast.WalkSkipChildren, nil
	case *east.Strikethrough:
		w.add(n, KindStrikethrough, "strikethrough markers are written as plain text")
	case *east.Footnote:
		w.add(n, KindFootnote, "footnote definitions are written as plain text")
		return ast.WalkSkipChildren, nil
	case *ast.Heading:
		w.checkHeading(node)
	}
	return ast.WalkContinue, nil
}

func (w *walker) checkHeading(h *ast.Heading) {
	off, ok := offsetOf(h)
	if ok && !isATXLine(w.source, off) {
		w.add(h, KindSetextHeading, "underlined headings are written as plain text; use # markers")
		return
	}
	if h.Level > maxSectionLevel {
		w.add(h, KindDeepHeading, fmt.Sprintf("level %d heading has no sectioning command (max %d)", h.Level, maxSectionLevel))
	}
}

// isATXLine reports whether the source line containing off starts with '#'
// after leading spaces.
func isATXLine(source []byte, off int) bool {
	start := bytes.LastIndexByte(source[:off], '\n') + 1
	line := bytes.TrimLeft(source[start:off], " ")
	return len(line) > 0 && line[0] == '#'
}

// offsetOf returns the byte offset of the first source text belonging to n.
// Inline nodes carry no line segments, so the first descendant text node is
// used instead.
func offsetOf(n ast.Node) (int, bool) {
	switch node := n.(type) {
	case *ast.Text:
		return node.Segment.Start, true
	case *ast.RawHTML:
		if node.Segments != nil && node.Segments.Len() > 0 {
			return node.Segments.At(0).Start, true
		}
	case *ast.FencedCodeBlock:
		// The info string sits on the opening fence line.
		if node.Info != nil {
			return node.Info.Segment.Start, true
		}
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := offsetOf(c); ok {
			return off, true
		}
	}
	return 0, false
}
