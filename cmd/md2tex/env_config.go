package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-md2tex/internal/config"
)

// envPrefix is the prefix shared by every md2tex environment variable.
const envPrefix = "MD2TEX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2TEX_CONFIG: config file name or path
	InputDir   string // MD2TEX_INPUT_DIR: default input directory
	OutputDir  string // MD2TEX_OUTPUT_DIR: default output directory
	Workers    int    // MD2TEX_WORKERS: parallel workers
	Author     string // MD2TEX_AUTHOR: default author
	PaperSize  string // MD2TEX_PAPER_SIZE: default paper size
}

// knownEnvVars lists valid MD2TEX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2TEX_CONFIG":     true,
	"MD2TEX_INPUT_DIR":  true,
	"MD2TEX_OUTPUT_DIR": true,
	"MD2TEX_WORKERS":    true,
	"MD2TEX_AUTHOR":     true,
	"MD2TEX_PAPER_SIZE": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MD2TEX_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2TEX_CONFIG"),
		InputDir:   os.Getenv("MD2TEX_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2TEX_OUTPUT_DIR"),
		Author:     os.Getenv("MD2TEX_AUTHOR"),
		PaperSize:  os.Getenv("MD2TEX_PAPER_SIZE"),
	}

	// Invalid or non-positive values are ignored (auto sizing applies)
	if workers := os.Getenv("MD2TEX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// unknownEnvVars returns the sorted names of unrecognized MD2TEX_* variables.
func unknownEnvVars() []string {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// warnUnknownEnvVars logs warnings for unrecognized MD2TEX_* variables.
// Helps catch typos like MD2TEX_OUTPUTDIR instead of MD2TEX_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, name := range unknownEnvVars() {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables replace config file values; CLI flags are applied later via
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Author != "" {
		cfg.Metadata.Author = env.Author
	}
	if env.PaperSize != "" {
		cfg.Metadata.PaperSize = env.PaperSize
	}
}
