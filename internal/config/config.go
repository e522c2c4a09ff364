package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/metadata"
	"github.com/alnah/go-md2tex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-md2tex"

// Field length limits.
const (
	MaxDirLength        = 4096 // PATH_MAX on Linux
	MaxPaperSizeLength  = 30   // "a4paper", "letterpaper"
	MaxFontSizeLength   = 10   // "10pt", "12pt"
	MaxDocTypeLength    = 30   // "article", "report"
	MaxMarginLength     = 20   // "1in", "2.5cm"
	MaxFontFamilyLength = 100  // Font name as known to fontspec
	MaxTitleLength      = 200  // Document title
	MaxAuthorLength     = 200  // One or more author names
)

// Config holds CLI configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Metadata MetadataConfig `yaml:"metadata"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = stdin)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// MetadataConfig overrides the built-in metadata defaults. Empty fields keep
// the built-in value. Front matter in a document still takes precedence.
type MetadataConfig struct {
	PaperSize    string `yaml:"paperSize"`
	FontSize     string `yaml:"fontSize"`
	DocumentType string `yaml:"documentType"`
	Margin       string `yaml:"margin"`
	FontFamily   string `yaml:"fontFamily"`
	Title        string `yaml:"title"`
	Author       string `yaml:"author"`
}

// Validate checks field lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxDirLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxDirLength},
		{"metadata.paperSize", c.Metadata.PaperSize, MaxPaperSizeLength},
		{"metadata.fontSize", c.Metadata.FontSize, MaxFontSizeLength},
		{"metadata.documentType", c.Metadata.DocumentType, MaxDocTypeLength},
		{"metadata.margin", c.Metadata.Margin, MaxMarginLength},
		{"metadata.fontFamily", c.Metadata.FontFamily, MaxFontFamilyLength},
		{"metadata.title", c.Metadata.Title, MaxTitleLength},
		{"metadata.author", c.Metadata.Author, MaxAuthorLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// MetadataDefaults returns base with every non-empty metadata field of c
// applied on top.
func (c *Config) MetadataDefaults(base metadata.Metadata) metadata.Metadata {
	m := c.Metadata
	return metadata.Overlay(base, metadata.Metadata{
		PaperSize:  m.PaperSize,
		FontSize:   m.FontSize,
		DocType:    m.DocumentType,
		Margin:     m.Margin,
		FontFamily: m.FontFamily,
		Title:      m.Title,
		Author:     m.Author,
	})
}

// DefaultConfig returns a configuration with no overrides.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the files LoadConfig tries for a config name, in order:
// <name>.yaml and <name>.yml in the current directory, then the same two
// under <UserConfigDir>/go-md2tex/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
