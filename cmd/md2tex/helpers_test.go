package main

// Notes:
// - Shared test infrastructure for the cmd tests: environments with captured
//   output, a fixed clock, and file helpers.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2tex"
)

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

// testEnv is an Environment whose writers are inspectable buffers.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an environment reading stdin and advancing a fixed
// clock by 10ms per call.
func newTestEnv(stdin string) *testEnv {
	var stdout, stderr bytes.Buffer
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &testEnv{
		Environment: &Environment{
			Now: func() time.Time {
				now = now.Add(10 * time.Millisecond)
				return now
			},
			Stdin:  strings.NewReader(stdin),
			Stdout: &stdout,
			Stderr: &stderr,
		},
		stdout: &stdout,
		stderr: &stderr,
	}
}

// ---------------------------------------------------------------------------
// File Helpers
// ---------------------------------------------------------------------------

// writeFile creates path (and parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// staticMockConverter writes a fixed body or fails with err after writing
// a partial body.
type staticMockConverter struct {
	output string
	err    error
}

func (m *staticMockConverter) Convert(_ context.Context, _ io.Reader, w io.Writer) (md2tex.Stats, error) {
	if _, err := w.Write([]byte(m.output)); err != nil {
		return md2tex.Stats{}, err
	}
	return md2tex.Stats{Lines: 1}, m.err
}
