package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/fileutil"
)

// latexEngines lists engines able to compile the output. The preamble loads
// fontspec, which pdflatex does not support.
var latexEngines = []string{"xelatex", "lualatex"}

// versionTimeout bounds each "<engine> --version" call.
const versionTimeout = 5 * time.Second

// Injectable for tests.
var (
	lookPath      = exec.LookPath
	engineVersion = queryEngineVersion
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Engines  []engineInfo `json:"engines"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// engineInfo holds LaTeX engine detection results.
type engineInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS          string   `json:"os"`
	Arch        string   `json:"arch"`
	GOMAXPROCS  int      `json:"gomaxprocs"`
	Workers     int      `json:"workers"`
	Config      string   `json:"md2tex_config,omitempty"`
	UnknownVars []string `json:"unknown_vars,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	WorkdirWritable bool `json:"workdir_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	envCfg := loadEnvConfig()
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GOMAXPROCS: runtime.GOMAXPROCS(0),
			Workers:    resolveWorkerCount(0, envCfg.Workers),
			Config:     envCfg.ConfigPath,
		},
	}

	checkEngines(result)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkEngines detects LaTeX engines on PATH.
func checkEngines(result *doctorResult) {
	found := false
	for _, name := range latexEngines {
		info := engineInfo{Name: name}
		if path, err := lookPath(name); err == nil {
			info.Found = true
			info.Path = path
			found = true
			if v, err := engineVersion(path); err == nil {
				info.Version = v
			} else {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Could not get %s version: %v", name, err))
			}
		}
		result.Engines = append(result.Engines, info)
	}

	if !found {
		result.Warnings = append(result.Warnings,
			"No xelatex or lualatex found. Conversion works, but compiling the output requires one")
	}
}

// queryEngineVersion returns the first line of "<path> --version".
func queryEngineVersion(path string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- path comes from exec.LookPath
	if err != nil {
		return "", err
	}
	first, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(first), nil
}

// checkEnvironment validates MD2TEX_* variables.
func checkEnvironment(result *doctorResult) {
	result.Env.UnknownVars = unknownEnvVars()
	for _, name := range result.Env.UnknownVars {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unknown environment variable %s (typo?)", name))
	}

	if result.Env.Config != "" {
		if _, err := config.LoadConfig(result.Env.Config); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("MD2TEX_CONFIG: %v", err))
		}
	}
}

// checkSystem verifies that outputs can be written to the working directory.
func checkSystem(result *doctorResult) {
	probe, err := fileutil.CreateAtomic("md2tex-doctor.tex")
	if err != nil {
		result.Warnings = append(result.Warnings,
			"Current directory not writable; use --output to write elsewhere")
		return
	}
	probe.Abort()
	result.System.WorkdirWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2tex doctor")
	fmt.Fprintln(w)

	// Engines section
	fmt.Fprintln(w, "LaTeX engines")
	for _, e := range r.Engines {
		if !e.Found {
			fmt.Fprintf(w, "  [--] %s: not found\n", e.Name)
			continue
		}
		fmt.Fprintf(w, "  [OK] %s: %s\n", e.Name, e.Path)
		if e.Version != "" {
			fmt.Fprintf(w, "       %s\n", e.Version)
		}
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] GOMAXPROCS: %d (default workers: %d)\n", r.Env.GOMAXPROCS, r.Env.Workers)
	if r.Env.Config != "" {
		fmt.Fprintf(w, "  [OK] MD2TEX_CONFIG: %s\n", r.Env.Config)
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.WorkdirWritable {
		fmt.Fprintln(w, "  [OK] Working directory: writable")
	} else {
		fmt.Fprintln(w, "  [WARN] Working directory: not writable")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
