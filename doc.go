// Package md2tex converts Markdown documents to LaTeX.
//
// # Quick Start
//
// Create a converter and stream a document through it:
//
//	conv := md2tex.NewConverter()
//	stats, err := conv.Convert(ctx, os.Stdin, os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or convert an in-memory string:
//
//	latex, err := conv.ConvertString(ctx, "# Hello\n\nWorld")
//
// # Conversion Pipeline
//
// Input is processed one line at a time:
//
//  1. An optional front-matter block delimited by "---" lines is parsed as
//     YAML into Metadata (paper_size, font_size, document_type, margin,
//     font_family, title, author). Missing keys take default values.
//  2. The metadata is expanded into a report-class preamble, followed by
//     \begin{document} and \maketitle\tableofcontents\newpage.
//  3. Headings "#" to "####" become \chapter, \section, \subsection and
//     \subsubsection. Every other line is written as plain text with LaTeX
//     reserved characters escaped.
//  4. \end{document} closes the output.
//
// Lists, emphasis, links, code and tables are not translated. Use Inspect
// to find such constructs before converting.
//
// # Configuration
//
// Use functional options to change metadata defaults:
//
//	defaults := md2tex.DefaultMetadata()
//	defaults.Author = "Docs Team"
//	conv := md2tex.NewConverter(md2tex.WithDefaults(defaults))
//
// # Errors
//
// A front-matter block that is not valid YAML returns ErrMetadataParse. A
// block that is opened but never closed returns ErrUnclosedFrontMatter and
// writes nothing. I/O failures wrap ErrReadInput or ErrWriteOutput.
package md2tex
