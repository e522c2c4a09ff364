package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob []string // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	Args       []string // fixed argument values (e.g., shells)
	TakesFiles bool     // accepts markdown file arguments
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob []string // file glob patterns
	IsDir    bool     // directory completion
}

// markdownGlobs matches markdown inputs.
var markdownGlobs = []string{"*.md", "*.markdown"}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"paper-size": {Values: []string{"a4paper", "a5paper", "b5paper", "letterpaper", "legalpaper", "executivepaper"}},
	"font-size":  {Values: []string{"10pt", "11pt", "12pt"}},

	// File flags with glob patterns
	"config": {FileGlob: []string{"*.yaml", "*.yml"}},
	"file":   {FileGlob: markdownGlobs},

	// Directory flags
	"output": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if len(meta.FileGlob) > 0 {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:       "convert",
			Desc:       "Convert markdown files to LaTeX",
			Flags:      extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles: true,
		},
		{
			Name:       "check",
			Desc:       "Report markdown constructs that are not translated",
			Flags:      extractFlagsFromFlagSet(newCheckFlagSet(&checkFlags{})),
			TakesFiles: true,
		},
		{
			Name:  "doctor",
			Desc:  "Check LaTeX engines and environment",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "print results as JSON"}},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: commands,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2tex completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(md2tex completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2tex completion fish > ~/.config/fish/completions/md2tex.fish")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	names := commandNames(cmds)

	b.WriteString("# bash completion for md2tex\n")
	b.WriteString("_md2tex() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if valueCases := bashValueCases(c.Flags); valueCases != "" {
			b.WriteString("        case \"$prev\" in\n")
			b.WriteString(valueCases)
			b.WriteString("        esac\n")
		}
		if len(c.Flags) > 0 {
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "        COMPREPLY=(%s)\n", bashFileCompgen(markdownGlobs))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _md2tex md2tex\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// bashValueCases renders "case $prev" branches for flags that take values.
func bashValueCases(flags []flagDef) string {
	var b strings.Builder
	for _, f := range flags {
		var reply string
		switch f.Type {
		case flagEnum:
			reply = fmt.Sprintf("$(compgen -W %q -- \"$cur\")", strings.Join(f.Values, " "))
		case flagFile:
			reply = bashFileCompgen(f.FileGlob)
		case flagDir:
			reply = "$(compgen -d -- \"$cur\")"
		default:
			continue
		}
		fmt.Fprintf(&b, "        %s)\n            COMPREPLY=(%s)\n            return\n            ;;\n", strings.Join(flagForms(f), "|"), reply)
	}
	return b.String()
}

// bashFileCompgen completes directories plus files matching globs.
func bashFileCompgen(globs []string) string {
	parts := []string{"$(compgen -d -- \"$cur\")"}
	for _, g := range globs {
		parts = append(parts, fmt.Sprintf("$(compgen -f -X '!%s' -- \"$cur\")", g))
	}
	return strings.Join(parts, " ")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef md2tex\n\n")
	b.WriteString("_md2tex() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:argument:(%s)'", strings.Join(c.Args, " ")))
		case c.TakesFiles:
			specs = append(specs, fmt.Sprintf("'*:file:_files -g \"%s\"'", zshGlob(markdownGlobs)))
		}
		if len(specs) > 0 {
			b.WriteString("        _arguments \\\n")
			for i, s := range specs {
				b.WriteString("            " + s)
				if i < len(specs)-1 {
					b.WriteString(" \\")
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2tex md2tex\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec renders one _arguments spec.
func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = fmt.Sprintf(":value:(%s)", strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"%s\"", zshGlob(f.FileGlob))
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value:"
	}

	desc := "[" + zshEscape(f.Desc) + "]"
	if f.Short == "" {
		return fmt.Sprintf("'--%s%s%s'", f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// zshGlob joins globs into a zsh alternation, e.g. "*.(md|markdown)".
func zshGlob(globs []string) string {
	exts := make([]string, 0, len(globs))
	for _, g := range globs {
		exts = append(exts, strings.TrimPrefix(g, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// zshEscape escapes characters special inside single-quoted _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for md2tex\n")
	b.WriteString("complete -c md2tex -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2tex -n '__fish_use_subcommand' -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_seen_subcommand_from %s'", c.Name)
		for _, f := range c.Flags {
			b.WriteString("complete -c md2tex -n " + cond)
			if f.Short != "" {
				b.WriteString(" -s " + f.Short)
			}
			b.WriteString(" -l " + f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&b, " -x -a %s", fishQuote(strings.Join(f.Values, " ")))
			case flagFile:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -x")
			}
			fmt.Fprintf(&b, " -d %s\n", fishQuote(f.Desc))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c md2tex -n %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		case c.TakesFiles:
			for _, g := range markdownGlobs {
				fmt.Fprintf(&b, "complete -c md2tex -n %s -a '(__fish_complete_suffix %s)'\n", cond, strings.TrimPrefix(g, "*"))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// commandNames returns command names in registry order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagForms returns "--long" and, when present, "-s".
func flagForms(f flagDef) []string {
	forms := []string{"--" + f.Long}
	if f.Short != "" {
		forms = append(forms, "-"+f.Short)
	}
	return forms
}

// flagWords returns every flag form, sorted.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, flagForms(f)...)
	}
	sort.Strings(words)
	return words
}
