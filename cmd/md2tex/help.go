package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown files to LaTeX")
	fmt.Fprintln(w, "  check       Report markdown constructs that are not translated")
	fmt.Fprintln(w, "  doctor      Check LaTeX engines and environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2tex help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex convert [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to LaTeX.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin (default: stdin,")
	fmt.Fprintln(w, "           or input.defaultDir from config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -f, --file <path>         Input file or directory (same as input)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: stdout for")
	fmt.Fprintln(w, "                            a single input, next to each source for a directory)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w, "      --max-line-size <n>   Maximum input line size in bytes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata defaults (front matter takes precedence):")
	fmt.Fprintln(w, "      --title <s>           Document title")
	fmt.Fprintln(w, "      --author <s>          Document author")
	fmt.Fprintln(w, "      --paper-size <s>      Paper size: a4paper, letterpaper, ...")
	fmt.Fprintln(w, "      --font-size <s>       Font size: 10pt, 11pt, 12pt")
	fmt.Fprintln(w, "      --margin <s>          Page margin: 1in, 2cm, ...")
	fmt.Fprintln(w, "      --font <s>            Main font family")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing and statistics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2TEX_CONFIG, MD2TEX_INPUT_DIR, MD2TEX_OUTPUT_DIR, MD2TEX_WORKERS,")
	fmt.Fprintln(w, "  MD2TEX_AUTHOR, MD2TEX_PAPER_SIZE")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex check [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate front matter and list markdown constructs that convert writes")
	fmt.Fprintln(w, "as plain text (lists, emphasis, links, code, tables, ...).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --file <path>         Input file or directory (same as input)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --strict              Exit with an error when constructs are found")
	fmt.Fprintln(w, "      --json                Print findings as JSON")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show files without findings")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2tex doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check for a LaTeX engine that can compile the output (xelatex or")
		fmt.Fprintln(env.Stdout, "lualatex, required by fontspec) and report environment settings.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2tex version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2tex help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
