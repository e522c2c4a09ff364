package md2tex_test

// Notes:
// - Conversion semantics are covered in internal/pipeline; these tests check
//   that the public API forwards options and errors correctly.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-md2tex"
)

// ---------------------------------------------------------------------------
// TestConverter - Public API
// ---------------------------------------------------------------------------

func TestConverter_ConvertString(t *testing.T) {
	t.Parallel()

	conv := md2tex.NewConverter()
	got, err := conv.ConvertString(context.Background(), "---\ntitle: A & B\nauthor: Me\n---\n# Intro\nText\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{`\title{A \& B}`, `\author{Me}`, `\chapter{Intro}`, "\nText\n", "\\end{document}\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestConverter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unclosed front matter", "---\ntitle: x\n", md2tex.ErrUnclosedFrontMatter},
		{"malformed metadata", "---\ntitle: [x\n---\n", md2tex.ErrMetadataParse},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := md2tex.NewConverter().ConvertString(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if got != "" {
				t.Errorf("output = %q, want empty on error", got)
			}
		})
	}
}

func TestConverter_WithDefaults_PartialMetadata(t *testing.T) {
	t.Parallel()

	conv := md2tex.NewConverter(md2tex.WithDefaults(md2tex.Metadata{Author: "Docs Team"}))
	got, err := conv.ConvertString(context.Background(), "hi\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		`\documentclass[a4paper,12pt]{report}`,
		`\usepackage[margin=1in]{geometry}`,
		`\setmainfont{freesans}`,
		`\title{Untitled}`,
		`\author{Docs Team}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestConverter_WithMaxLineSize(t *testing.T) {
	t.Parallel()

	conv := md2tex.NewConverter(md2tex.WithMaxLineSize(16))
	_, err := conv.ConvertString(context.Background(), strings.Repeat("x", 64)+"\n")
	if !errors.Is(err, md2tex.ErrReadInput) {
		t.Errorf("error = %v, want ErrReadInput", err)
	}
}

func TestWithMaxLineSize_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithMaxLineSize(%d) should panic", n)
				}
			}()
			md2tex.WithMaxLineSize(n)
		}()
	}
}

func TestConverter_Concurrent(t *testing.T) {
	t.Parallel()

	conv := md2tex.NewConverter()
	want, err := conv.ConvertString(context.Background(), "# Same\nbody\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := conv.ConvertString(context.Background(), "# Same\nbody\n")
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- errors.New("concurrent output differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// ---------------------------------------------------------------------------
// TestHelpers - Re-exported building blocks
// ---------------------------------------------------------------------------

func TestParseMetadata(t *testing.T) {
	t.Parallel()

	meta, err := md2tex.ParseMetadata("title: T\nmargin: 2cm\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := md2tex.DefaultMetadata()
	want.Title = "T"
	want.Margin = "2cm"
	if meta != want {
		t.Errorf("ParseMetadata() = %+v, want %+v", meta, want)
	}
}

func TestPreamble(t *testing.T) {
	t.Parallel()

	got := md2tex.Preamble(md2tex.DefaultMetadata())
	if !strings.HasPrefix(got, `\documentclass[a4paper,12pt]{report}`) {
		t.Errorf("Preamble() = %q", got)
	}
	if strings.Contains(got, `\begin{document}`) {
		t.Error("Preamble() should not contain \\begin{document}")
	}
}

func TestSectionCommand(t *testing.T) {
	t.Parallel()

	if got, err := md2tex.SectionCommand(3); err != nil || got != "subsection" {
		t.Errorf("SectionCommand(3) = %q, %v; want subsection", got, err)
	}
	if _, err := md2tex.SectionCommand(5); !errors.Is(err, md2tex.ErrInvalidHeadingLevel) {
		t.Errorf("SectionCommand(5) error = %v, want ErrInvalidHeadingLevel", err)
	}
}
