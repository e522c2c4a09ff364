package inspect_test

// Notes:
// - Positions are asserted only for constructs whose first source text is on
//   the reported line; autolinks may legitimately report an unknown line.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"testing"

	"github.com/alnah/go-md2tex/internal/inspect"
)

// ---------------------------------------------------------------------------
// TestInspect - Untranslated construct detection
// ---------------------------------------------------------------------------

func TestInspect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		wantKind inspect.Kind
		wantLine int
	}{
		{"bullet list", "- a\n- b\n", inspect.KindList, 1},
		{"ordered list", "intro\n\n1. first\n2. second\n", inspect.KindList, 3},
		{"emphasis", "some *stress* here\n", inspect.KindEmphasis, 1},
		{"strong", "some **stress** here\n", inspect.KindStrong, 1},
		{"link", "see [docs](https://example.com)\n", inspect.KindLink, 1},
		{"image", "![logo](logo.png)\n", inspect.KindImage, 1},
		{"code span", "run `go test`\n", inspect.KindCodeSpan, 1},
		{"fenced code", "text\n\n```go\nx := 1\n```\n", inspect.KindCodeBlock, 3},
		{"blockquote", "> quoted\n", inspect.KindBlockquote, 1},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |\n", inspect.KindTable, 1},
		{"strikethrough", "~~gone~~\n", inspect.KindStrikethrough, 1},
		{"deep heading", "##### Deep\n", inspect.KindDeepHeading, 1},
		{"setext heading", "Title\n=====\n", inspect.KindSetextHeading, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			findings, err := inspect.New().Inspect(context.Background(), []byte(tt.source))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, f := range findings {
				if f.Kind == tt.wantKind {
					if f.Line != tt.wantLine {
						t.Errorf("%s finding on line %d, want %d", f.Kind, f.Line, tt.wantLine)
					}
					return
				}
			}
			t.Errorf("no %s finding in %v", tt.wantKind, findings)
		})
	}
}

func TestInspect_Clean(t *testing.T) {
	t.Parallel()

	sources := []string{
		"",
		"---\ntitle: T\nauthor: A\n---\n# Head\n\nBody text\n",
		"# A\n## B\n### C\n#### D\n\nPlain paragraph 100% & more.\n",
	}

	ins := inspect.New()
	for _, src := range sources {
		findings, err := ins.Inspect(context.Background(), []byte(src))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("Inspect(%q) = %v, want no findings", src, findings)
		}
	}
}

func TestInspect_SortedByLine(t *testing.T) {
	t.Parallel()

	src := "# Ok\n\n> quote\n\n- item\n\nend *here*\n"
	findings, err := inspect.New().Inspect(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) < 3 {
		t.Fatalf("got %d findings, want at least 3: %v", len(findings), findings)
	}
	for i := 1; i < len(findings); i++ {
		if findings[i].Line != 0 && findings[i].Line < findings[i-1].Line {
			t.Errorf("findings not sorted: %v", findings)
		}
	}
	if findings[0].Kind != inspect.KindBlockquote || findings[0].Line != 3 {
		t.Errorf("first finding = %v, want blockquote on line 3", findings[0])
	}
}

func TestInspect_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := inspect.New().Inspect(ctx, []byte("# x\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFinding_String(t *testing.T) {
	t.Parallel()

	f := inspect.Finding{Line: 4, Kind: inspect.KindTable, Message: "tables are written as plain text rows"}
	if got, want := f.String(), "4: table: tables are written as plain text rows"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	f.Line = 0
	if got, want := f.String(), "?: table: tables are written as plain text rows"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
