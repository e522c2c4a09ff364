package pipeline

import (
	"strings"

	"github.com/alnah/go-md2tex/internal/metadata"
	"github.com/alnah/go-md2tex/internal/tex"
)

// DocumentClass is the LaTeX class used for every generated document.
const DocumentClass = "report"

// Markup wrapped around the document body.
const (
	BeginDocument = `\begin{document}`
	EndDocument   = `\end{document}`
)

// trailingPackages lists argument-only \usepackage lines emitted after geometry
// and fontspec, in order.
var trailingPackages = []string{"graphicx", "placeins"}

// BuildPreamble returns the document class, package loads, font and title
// declarations for meta, one command per line. Title and author are escaped;
// option values are emitted as given.
func BuildPreamble(meta metadata.Metadata) string {
	lines := []string{
		tex.Command("documentclass",
			[]tex.KeyValue{tex.Bare(meta.PaperSize), tex.Bare(meta.FontSize)},
			[][]tex.KeyValue{{tex.Bare(DocumentClass)}}),
		tex.Command("usepackage",
			[]tex.KeyValue{tex.Pair("margin", meta.Margin)},
			[][]tex.KeyValue{{tex.Bare("geometry")}}),
		tex.Simple("usepackage", "fontspec"),
		tex.Simple("setmainfont", meta.FontFamily),
	}
	for _, pkg := range trailingPackages {
		lines = append(lines, tex.Simple("usepackage", pkg))
	}
	lines = append(lines,
		tex.Simple("title", tex.Escape(meta.Title)),
		tex.Simple("author", tex.Escape(meta.Author)),
	)
	return strings.Join(lines, "\n") + "\n"
}

// BuildDocumentStart returns the markup placed right after \begin{document}.
func BuildDocumentStart() string {
	return tex.CommandName("maketitle") + tex.CommandName("tableofcontents") + tex.CommandName("newpage")
}

// BuildHeader returns everything written before the first body line.
func BuildHeader(meta metadata.Metadata) string {
	return BuildPreamble(meta) + BeginDocument + BuildDocumentStart() + "\n"
}
