package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrCreateOutputDir   = errors.New("failed to create output directory")
	ErrNoMarkdownFiles   = errors.New("no markdown files found")
	ErrConversionsFailed = errors.New("conversions failed")
)

// stdinName selects standard input as the input path.
const stdinName = "-"

// texExtension is the extension of generated files, without dot.
const texExtension = "tex"

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, r io.Reader, w io.Writer) (md2tex.Stats, error)
}

// Compile-time interface implementation check.
var _ Converter = (*md2tex.Converter)(nil)

// configLoadError records which config name failed to load, for hints.
type configLoadError struct {
	name string
	err  error
}

func (e *configLoadError) Error() string { return "loading config: " + e.err.Error() }
func (e *configLoadError) Unwrap() error { return e.err }

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate numeric flags early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.maxLineSize <= 0 {
		return fmt.Errorf("%w: --max-line-size must be positive, got %d", ErrInvalidFlags, flags.maxLineSize)
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	inputPath, err := resolveInputPath(positionalArgs, flags.input.file, cfg)
	if err != nil {
		return err
	}

	conv := md2tex.NewConverter(
		md2tex.WithDefaults(cfg.MetadataDefaults(md2tex.DefaultMetadata())),
		md2tex.WithMaxLineSize(flags.maxLineSize),
	)

	if inputPath == stdinName {
		outPath := resolveSingleOutput("stdin", flags.output, cfg.Output.DefaultDir)
		return convertSingle(ctx, conv, env.Stdin, "<stdin>", outPath, flags.common, env)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return err
		}
		f, err := os.Open(inputPath) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		defer func() { _ = f.Close() }()

		outPath := resolveSingleOutput(inputPath, flags.output, cfg.Output.DefaultDir)
		return convertSingle(ctx, conv, f, inputPath, outPath, flags.common, env)
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	workers := resolveWorkerCount(flags.workers, envCfg.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), workers)
	}

	results := convertBatch(ctx, conv, files, workers, env)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%w: %d of %d", ErrConversionsFailed, failedCount, len(results))
	}
	return nil
}

// loadConfig loads the config named by the flag, falling back to
// MD2TEX_CONFIG. No name means built-in defaults.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, &configLoadError{name: name, err: err}
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	m := flags.metadata
	if m.title != "" {
		cfg.Metadata.Title = m.title
	}
	if m.author != "" {
		cfg.Metadata.Author = m.author
	}
	if m.paperSize != "" {
		cfg.Metadata.PaperSize = m.paperSize
	}
	if m.fontSize != "" {
		cfg.Metadata.FontSize = m.fontSize
	}
	if m.margin != "" {
		cfg.Metadata.Margin = m.margin
	}
	if m.font != "" {
		cfg.Metadata.FontFamily = m.font
	}
}

// resolveInputPath determines the input path from args, --file, or config.
// With none of them set, input is read from stdin.
func resolveInputPath(args []string, flagFile string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlags, len(args))
	}
	if len(args) == 1 && flagFile != "" && args[0] != flagFile {
		return "", fmt.Errorf("%w: input given both as argument and --file", ErrInvalidFlags)
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if flagFile != "" {
		return flagFile, nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return stdinName, nil
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveSingleOutput determines where a single document is written.
// An empty result means stdout.
func resolveSingleOutput(inputPath, flagOutput, cfgOutputDir string) string {
	base := filepath.Base(inputPath)
	texName, _ := fileutil.ReplaceExtension(base, texExtension)

	if flagOutput != "" {
		if fileutil.DirExists(flagOutput) || strings.HasSuffix(flagOutput, string(filepath.Separator)) {
			return filepath.Join(flagOutput, texName)
		}
		return flagOutput
	}
	if cfgOutputDir != "" {
		return filepath.Join(cfgOutputDir, texName)
	}
	return ""
}

// convertSingle converts one document to outPath, or to stdout when outPath
// is empty.
func convertSingle(ctx context.Context, conv Converter, r io.Reader, name, outPath string, common commonFlags, env *Environment) error {
	start := env.Now()

	if outPath == "" {
		stats, err := conv.Convert(ctx, r, env.Stdout)
		if err != nil {
			return err
		}
		if common.verbose {
			fmt.Fprintf(env.Stderr, "%s -> stdout (%v, %s)\n", name, env.Now().Sub(start).Round(timeRounding), formatStats(stats))
		}
		return nil
	}

	stats, err := convertToFile(ctx, conv, r, outPath)
	if err != nil {
		return err
	}

	switch {
	case common.quiet:
	case common.verbose:
		fmt.Fprintf(env.Stdout, "%s -> %s (%v, %s)\n", name, outPath, env.Now().Sub(start).Round(timeRounding), formatStats(stats))
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", outPath)
	}
	return nil
}

// convertToFile converts r into outPath atomically: on failure the
// destination is left untouched.
func convertToFile(ctx context.Context, conv Converter, r io.Reader, outPath string) (md2tex.Stats, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), dirPermissions); err != nil {
		return md2tex.Stats{}, fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}

	out, err := fileutil.CreateAtomic(outPath)
	if err != nil {
		return md2tex.Stats{}, fmt.Errorf("%w: %v", md2tex.ErrWriteOutput, err)
	}
	defer out.Abort()

	stats, err := conv.Convert(ctx, r, out)
	if err != nil {
		return stats, err
	}
	if err := out.Commit(); err != nil {
		return stats, fmt.Errorf("%w: %v", md2tex.ErrWriteOutput, err)
	}
	return stats, nil
}

// formatStats renders conversion statistics for verbose output.
func formatStats(s md2tex.Stats) string {
	fm := "no front matter"
	if s.FrontMatter {
		fm = "front matter"
	}
	return fmt.Sprintf("%d lines, %d headings, %s", s.Lines, s.HeadingCount(), fm)
}
