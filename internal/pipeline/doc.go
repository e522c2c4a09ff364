// Package pipeline implements the Markdown-to-LaTeX conversion pipeline.
//
// Input is consumed one line at a time through a small state machine:
//   - an optional front-matter block delimited by "---" lines is buffered
//     and parsed into metadata;
//   - the metadata is expanded into a LaTeX preamble followed by
//     \begin{document} and the title/TOC markup;
//   - every body line is classified (blank, heading, plain text) and
//     written as LaTeX, with reserved characters escaped;
//   - \end{document} closes the output once the input is exhausted.
//
// The package never opens files: callers supply an io.Reader and io.Writer.
package pipeline
