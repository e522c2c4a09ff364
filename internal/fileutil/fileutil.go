// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrAtomicFileClosed       = errors.New("atomic file already committed or aborted")
)

// MarkdownExtensions lists the file extensions treated as Markdown input.
var MarkdownExtensions = []string{".md", ".markdown"}

// AtomicFile writes to a temporary file next to its destination and renames
// it into place on Commit. Until Commit succeeds the destination is untouched.
type AtomicFile struct {
	f    *os.File
	path string
	done bool
}

// CreateAtomic opens a temporary file in the directory of path.
// The caller must call Commit or Abort.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	return &AtomicFile{f: f, path: path}, nil
}

// Write implements io.Writer.
func (a *AtomicFile) Write(p []byte) (int, error) {
	if a.done {
		return 0, ErrAtomicFileClosed
	}
	return a.f.Write(p)
}

// Commit closes the temporary file and renames it to the destination.
func (a *AtomicFile) Commit() error {
	if a.done {
		return ErrAtomicFileClosed
	}
	a.done = true
	tmp := a.f.Name()
	if err := a.f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil { // #nosec G302 -- output is a regular document
		_ = os.Remove(tmp)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp, a.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit, so it can
// be deferred unconditionally.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	_ = a.f.Close()
	_ = os.Remove(a.f.Name())
}

// ValidateExtension checks that the extension is safe for use in file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// ReplaceExtension swaps the extension of path for extension (without dot).
//
// Examples:
//   - ("doc.md", "tex") -> "doc.tex"
//   - ("dir/notes.markdown", "tex") -> "dir/notes.tex"
//   - ("README", "tex") -> "README.tex"
func ReplaceExtension(path, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + extension, nil
}

// IsMarkdown reports whether path has a Markdown extension (case-insensitive).
func IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, m := range MarkdownExtensions {
		if ext == m {
			return true
		}
	}
	return false
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "work" -> false (name)
//   - "./md2tex.yaml" -> true (relative path)
//   - "../shared/md2tex.yaml" -> true (parent path)
//   - "/etc/md2tex.yaml" -> true (absolute)
//   - "C:\config\md2tex.yaml" -> true (Windows)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
