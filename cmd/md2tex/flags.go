package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2tex/internal/pipeline"
)

// ErrInvalidFlags wraps flag parsing and flag combination errors.
var ErrInvalidFlags = errors.New("invalid flags")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags holds the input selection flags.
type inputFlags struct {
	file string
}

// metadataFlags override metadata defaults. Document front matter still wins.
type metadataFlags struct {
	title     string
	author    string
	paperSize string
	fontSize  string
	margin    string
	font      string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	input       inputFlags
	output      string
	workers     int
	maxLineSize int
	metadata    metadataFlags
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common commonFlags
	input  inputFlags
	strict bool
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and statistics")
}

// addInputFlags adds input selection flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.file, "file", "f", "", "markdown file or directory (\"-\" = stdin)")
}

// addMetadataFlags adds metadata default flags to a FlagSet.
func addMetadataFlags(fs *flag.FlagSet, f *metadataFlags) {
	fs.StringVar(&f.title, "title", "", "default document title")
	fs.StringVar(&f.author, "author", "", "default document author")
	fs.StringVar(&f.paperSize, "paper-size", "", "default paper size (e.g. a4paper, letterpaper)")
	fs.StringVar(&f.fontSize, "font-size", "", "default font size: 10pt, 11pt, 12pt")
	fs.StringVar(&f.margin, "margin", "", "default page margin (e.g. 1in, 2cm)")
	fs.StringVar(&f.font, "font", "", "default main font family")
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
// Shared by parseConvertFlags and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	addInputFlags(fs, &f.input)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.IntVar(&f.maxLineSize, "max-line-size", pipeline.DefaultMaxLineSize, "maximum input line size in bytes")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addMetadataFlags(fs, &f.metadata)

	return fs
}

// newCheckFlagSet registers every check flag on a new FlagSet.
func newCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)

	addInputFlags(fs, &f.input)
	fs.BoolVar(&f.strict, "strict", false, "exit with an error when constructs are found")
	fs.BoolVar(&f.json, "json", false, "print findings as JSON")
	addCommonFlags(fs, &f.common)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newCheckFlagSet(f)
	fs.Usage = func() { printCheckUsage(os.Stderr) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseFlagSet parses args, wrapping errors other than flag.ErrHelp with
// ErrInvalidFlags. pflag's own error output is discarded; runMain prints it.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	return nil
}
