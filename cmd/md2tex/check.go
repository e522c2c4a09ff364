package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/hints"
)

// Sentinel errors for the check command.
var (
	ErrFindings         = errors.New("untranslated constructs found")
	ErrInvalidDocuments = errors.New("documents failed validation")
)

// checkReport is the result of checking one document.
type checkReport struct {
	Path     string        `json:"path"`
	Error    string        `json:"error,omitempty"`
	Findings []findingJSON `json:"findings"`
	err      error
}

// findingJSON is the JSON form of a finding. Line 0 means unknown.
type findingJSON struct {
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// runCheckCmd parses flags and runs the check command.
func runCheckCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args)
	if err != nil {
		return err
	}
	return runCheck(ctx, positional, flags, env)
}

// runCheck validates front matter and inspects every input document.
func runCheck(ctx context.Context, positionalArgs []string, flags *checkFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	if !flags.common.quiet && !flags.json {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	inputPath, err := resolveInputPath(positionalArgs, flags.input.file, cfg)
	if err != nil {
		return err
	}

	paths, err := checkPaths(inputPath)
	if err != nil {
		return err
	}

	conv := md2tex.NewConverter(md2tex.WithDefaults(cfg.MetadataDefaults(md2tex.DefaultMetadata())))

	reports := make([]checkReport, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		reports = append(reports, checkPath(ctx, conv, p, env))
	}

	// A single document's error is returned as is, keeping its exit code and hint.
	if len(reports) == 1 && reports[0].err != nil {
		if flags.json {
			if err := writeCheckJSON(env.Stdout, reports); err != nil {
				return errors.Join(reports[0].err, err)
			}
		}
		return reports[0].err
	}

	if flags.json {
		if err := writeCheckJSON(env.Stdout, reports); err != nil {
			return err
		}
	} else {
		printCheckReports(reports, flags, env)
	}

	total, failed := 0, 0
	for _, r := range reports {
		total += len(r.Findings)
		if r.err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidDocuments, failed, len(reports))
	}
	if flags.strict && total > 0 {
		return fmt.Errorf("%w: %d", ErrFindings, total)
	}
	return nil
}

// checkPaths expands inputPath into the documents to check.
func checkPaths(inputPath string) ([]string, error) {
	if inputPath == stdinName {
		return []string{stdinName}, nil
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if !info.IsDir() {
		return []string{inputPath}, nil
	}

	files, err := discoverFiles(inputPath, "")
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.InputPath
	}
	return paths, nil
}

// checkPath reads and checks one document.
func checkPath(ctx context.Context, conv *md2tex.Converter, path string, env *Environment) checkReport {
	report := checkReport{Path: path, Findings: []findingJSON{}}

	var data []byte
	var err error
	if path == stdinName {
		report.Path = "<stdin>"
		data, err = io.ReadAll(env.Stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided or discovered path
	}
	if err != nil {
		report.setErr(fmt.Errorf("%w: %w", md2tex.ErrReadInput, err))
		return report
	}

	findings, err := checkDocument(ctx, conv, data)
	if err != nil {
		report.setErr(err)
		return report
	}
	for _, f := range findings {
		report.Findings = append(report.Findings, findingJSON{Line: f.Line, Kind: string(f.Kind), Message: f.Message})
	}
	return report
}

func (r *checkReport) setErr(err error) {
	r.err = err
	r.Error = err.Error()
}

// checkDocument runs a discarded conversion to validate front matter, then
// inspects the Markdown.
func checkDocument(ctx context.Context, conv *md2tex.Converter, data []byte) ([]md2tex.Finding, error) {
	if _, err := conv.Convert(ctx, bytes.NewReader(data), io.Discard); err != nil {
		return nil, err
	}
	return conv.Inspect(ctx, data)
}

// printCheckReports writes findings as "path:line: kind: message".
func printCheckReports(reports []checkReport, flags *checkFlags, env *Environment) {
	total, withFindings := 0, 0
	for _, r := range reports {
		if r.err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Path, r.err, hintFor(r.err))
			continue
		}
		if len(r.Findings) == 0 {
			if flags.common.verbose {
				fmt.Fprintf(env.Stdout, "%s: ok\n", r.Path)
			}
			continue
		}
		withFindings++
		total += len(r.Findings)
		if flags.common.quiet {
			continue
		}
		for _, f := range r.Findings {
			line := "?"
			if f.Line > 0 {
				line = fmt.Sprint(f.Line)
			}
			fmt.Fprintf(env.Stdout, "%s:%s: %s: %s\n", r.Path, line, f.Kind, f.Message)
		}
	}

	if flags.common.quiet {
		return
	}
	if total == 0 {
		fmt.Fprintf(env.Stdout, "No untranslated constructs in %d file(s)\n", len(reports))
		return
	}
	fmt.Fprintf(env.Stdout, "\n%d finding(s) in %d of %d file(s)%s\n", total, withFindings, len(reports), hints.ForFindings(flags.strict))
}

// writeCheckJSON writes reports as an indented JSON array.
func writeCheckJSON(w io.Writer, reports []checkReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
