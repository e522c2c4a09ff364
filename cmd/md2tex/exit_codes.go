package main

import (
	"bufio"
	"errors"
	"os"

	"github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/hints"
)

// Exit codes for md2tex CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or document metadata
	ExitIO      = 3 // File not found, permission denied, read/write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2tex.ErrReadInput) ||
		errors.Is(err, md2tex.ErrWriteOutput) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	// Usage/config/metadata errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, md2tex.ErrMetadataParse) ||
		errors.Is(err, md2tex.ErrUnclosedFrontMatter) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "" when none applies.
func hintFor(err error) string {
	var cfgErr *configLoadError
	switch {
	case errors.As(err, &cfgErr) && errors.Is(err, config.ErrConfigNotFound):
		if fileutil.IsFilePath(cfgErr.name) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(cfgErr.name))
	case errors.Is(err, md2tex.ErrUnclosedFrontMatter):
		return hints.ForUnclosedFrontMatter()
	case errors.Is(err, md2tex.ErrMetadataParse):
		return hints.ForMetadataParse()
	case errors.Is(err, bufio.ErrTooLong):
		return hints.ForLineTooLong()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, os.ErrNotExist):
		return hints.ForInputNotFound()
	}
	return ""
}
