package fileutil_test

// Notes:
// - Close and Rename failures in Commit are not tested because triggering
//   them is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-md2tex/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"valid extension tex", "tex", nil},
		{"valid extension md", "md", nil},
		{"empty extension", "", fileutil.ErrExtensionEmpty},
		{"forward slash path traversal", "../etc/passwd", fileutil.ErrExtensionPathTraversal},
		{"backslash path traversal", "..\\windows\\system32", fileutil.ErrExtensionPathTraversal},
		{"null byte injection", "tex\x00exe", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReplaceExtension / TestIsMarkdown - Path helpers
// ---------------------------------------------------------------------------

func TestReplaceExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"doc.md", "doc.tex"},
		{"dir/notes.markdown", "dir/notes.tex"},
		{"README", "README.tex"},
		{"archive.tar.md", "archive.tar.tex"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := fileutil.ReplaceExtension(tt.path, "tex")
			if err != nil {
				t.Fatalf("ReplaceExtension() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReplaceExtension(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	t.Run("invalid extension", func(t *testing.T) {
		t.Parallel()

		if _, err := fileutil.ReplaceExtension("doc.md", "../x"); !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
			t.Errorf("error = %v, want ErrExtensionPathTraversal", err)
		}
	})
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"doc.md", true},
		{"doc.MD", true},
		{"notes.markdown", true},
		{"doc.tex", false},
		{"md", false},
		{"dir.md/file.txt", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsMarkdown(tt.path); got != tt.want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestAtomicFile - Temp file + rename
// ---------------------------------------------------------------------------

func TestAtomicFile_Commit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "out.tex")

	af, err := fileutil.CreateAtomic(dest)
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}
	if _, err := af.Write([]byte(`\end{document}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if fileutil.FileExists(dest) {
		t.Fatal("destination should not exist before Commit")
	}
	if err := af.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading destination: %v", err)
	}
	if string(data) != `\end{document}` {
		t.Errorf("content = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the destination", len(entries))
	}

	if err := af.Commit(); !errors.Is(err, fileutil.ErrAtomicFileClosed) {
		t.Errorf("second Commit() error = %v, want ErrAtomicFileClosed", err)
	}
	if _, err := af.Write([]byte("x")); !errors.Is(err, fileutil.ErrAtomicFileClosed) {
		t.Errorf("Write() after Commit error = %v, want ErrAtomicFileClosed", err)
	}
}

func TestAtomicFile_Abort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "out.tex")
	if err := os.WriteFile(dest, []byte("previous"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	af, err := fileutil.CreateAtomic(dest)
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}
	if _, err := af.Write([]byte("partial")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	af.Abort()
	af.Abort()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading destination: %v", err)
	}
	if string(data) != "previous" {
		t.Errorf("destination changed after Abort: %q", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %d entries", len(entries))
	}
}

func TestCreateAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := fileutil.CreateAtomic(filepath.Join(t.TempDir(), "missing", "out.tex"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists / TestIsFilePath
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"my-config", false},
		{"./md2tex.yaml", true},
		{"../shared/md2tex.yaml", true},
		{"/etc/md2tex.yaml", true},
		{`C:\config\md2tex.yaml`, true},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
