// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path and, when one was searched, the user config
// location to create.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-md2tex/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForUnclosedFrontMatter returns hints for front matter missing its closing marker.
func ForUnclosedFrontMatter() string {
	return format(`add a line containing only "---" after the metadata block`)
}

// ForMetadataParse returns hints for invalid front-matter YAML.
func ForMetadataParse() string {
	return formatHints([]string{
		"front matter must be YAML key: value pairs",
		`quote values containing ":" or "#"`,
	})
}

// ForLineTooLong returns hints for input lines exceeding the scanner limit.
func ForLineTooLong() string {
	return format("raise the limit with --max-line-size")
}

// ForInputNotFound returns hints for a missing input path.
func ForInputNotFound() string {
	return format("pass a .md file, a directory, or - to read stdin")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForFindings returns hints printed after check reports untranslated constructs.
func ForFindings(strict bool) string {
	hints := []string{"these constructs are written to LaTeX as escaped plain text"}
	if !strict {
		hints = append(hints, "use --strict to fail on findings")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
