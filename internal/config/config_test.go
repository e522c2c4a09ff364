package config

// Notes:
// - Name resolution tests change the working directory, so they do not run
//   in parallel.
// - The user config directory case relies on XDG_CONFIG_HOME and is skipped
//   on platforms where os.UserConfigDir ignores it.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-md2tex/internal/metadata"
	"github.com/alnah/go-md2tex/internal/yamlutil"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(originalWd) })
}

// ---------------------------------------------------------------------------
// TestDefaultConfig / TestValidate - Defaults and field limits
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Metadata != (MetadataConfig{}) {
		t.Errorf("Metadata = %+v, want zero value", cfg.Metadata)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value under limit is valid", "12345", 10, false},
		{"value over limit is invalid", "12345678901", 10, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error should wrap ErrFieldTooLong, got %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		field   string
		wantErr bool
	}{
		{"empty config", Config{}, "", false},
		{"typical values", Config{Metadata: MetadataConfig{PaperSize: "a4paper", Title: "Report"}}, "", false},
		{"paper size too long", Config{Metadata: MetadataConfig{PaperSize: strings.Repeat("a", MaxPaperSizeLength+1)}}, "metadata.paperSize", true},
		{"font size too long", Config{Metadata: MetadataConfig{FontSize: strings.Repeat("1", MaxFontSizeLength+1)}}, "metadata.fontSize", true},
		{"document type too long", Config{Metadata: MetadataConfig{DocumentType: strings.Repeat("d", MaxDocTypeLength+1)}}, "metadata.documentType", true},
		{"margin too long", Config{Metadata: MetadataConfig{Margin: strings.Repeat("m", MaxMarginLength+1)}}, "metadata.margin", true},
		{"font family too long", Config{Metadata: MetadataConfig{FontFamily: strings.Repeat("f", MaxFontFamilyLength+1)}}, "metadata.fontFamily", true},
		{"title too long", Config{Metadata: MetadataConfig{Title: strings.Repeat("t", MaxTitleLength+1)}}, "metadata.title", true},
		{"author too long", Config{Metadata: MetadataConfig{Author: strings.Repeat("a", MaxAuthorLength+1)}}, "metadata.author", true},
		{"output dir too long", Config{Output: OutputConfig{DefaultDir: strings.Repeat("o", MaxDirLength+1)}}, "output.defaultDir", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should name field %q", err, tt.field)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMetadataDefaults - Overlay on built-in defaults
// ---------------------------------------------------------------------------

func TestConfig_MetadataDefaults(t *testing.T) {
	t.Parallel()

	t.Run("empty config keeps base", func(t *testing.T) {
		t.Parallel()

		base := metadata.Defaults()
		if got := DefaultConfig().MetadataDefaults(base); got != base {
			t.Errorf("MetadataDefaults() = %+v, want %+v", got, base)
		}
	})

	t.Run("non-empty fields override base", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Metadata: MetadataConfig{
			PaperSize:    "letterpaper",
			DocumentType: "book",
			Author:       "Docs Team",
		}}
		got := cfg.MetadataDefaults(metadata.Defaults())

		want := metadata.Defaults()
		want.PaperSize = "letterpaper"
		want.DocType = "book"
		want.Author = "Docs Team"
		if got != want {
			t.Errorf("MetadataDefaults() = %+v, want %+v", got, want)
		}
	})

	t.Run("all fields override base", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Metadata: MetadataConfig{
			PaperSize: "p", FontSize: "f", DocumentType: "d", Margin: "m",
			FontFamily: "ff", Title: "t", Author: "a",
		}}
		want := metadata.Metadata{
			PaperSize: "p", FontSize: "f", DocType: "d", Margin: "m",
			FontFamily: "ff", Title: "t", Author: "a",
		}
		if got := cfg.MetadataDefaults(metadata.Defaults()); got != want {
			t.Errorf("MetadataDefaults() = %+v, want %+v", got, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and name resolution
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "test.yaml", `input:
  defaultDir: "/path/to/input"
output:
  defaultDir: "/path/to/output"
metadata:
  paperSize: "letterpaper"
  fontFamily: "Carlito"
  title: "Handbook"
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "/path/to/input" {
			t.Errorf("Input.DefaultDir = %q, want %q", cfg.Input.DefaultDir, "/path/to/input")
		}
		if cfg.Output.DefaultDir != "/path/to/output" {
			t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "/path/to/output")
		}
		if cfg.Metadata.PaperSize != "letterpaper" {
			t.Errorf("Metadata.PaperSize = %q, want %q", cfg.Metadata.PaperSize, "letterpaper")
		}
		if cfg.Metadata.FontFamily != "Carlito" {
			t.Errorf("Metadata.FontFamily = %q, want %q", cfg.Metadata.FontFamily, "Carlito")
		}
		if cfg.Metadata.Title != "Handbook" {
			t.Errorf("Metadata.Title = %q, want %q", cfg.Metadata.Title, "Handbook")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "metadata: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("empty file keeps the decoder error", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "empty.yaml", "")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
		if !errors.Is(err, yamlutil.ErrNilData) {
			t.Errorf("error = %v, want wrapped yamlutil.ErrNilData", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "metadata:\n  paper_size: a4paper\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		long := strings.Repeat("x", MaxTitleLength+1)
		path := writeConfig(t, t.TempDir(), "toolong.yaml", "metadata:\n  title: \""+long+"\"\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Getuid() == 0 {
			t.Skip("file permissions are not enforced")
		}
		path := writeConfig(t, t.TempDir(), "unreadable.yaml", "metadata: {}\n")
		if err := os.Chmod(path, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer func() { _ = os.Chmod(path, 0600) }()

		_, err := LoadConfig(path)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myconfig.yaml", "metadata:\n  author: fromname\n")
		chdir(t, dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Metadata.Author != "fromname" {
			t.Errorf("Metadata.Author = %q, want %q", cfg.Metadata.Author, "fromname")
		}
	})

	t.Run("config name resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myconfig.yml", "metadata:\n  author: fromyml\n")
		chdir(t, dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Metadata.Author != "fromyml" {
			t.Errorf("Metadata.Author = %q, want %q", cfg.Metadata.Author, "fromyml")
		}
	})

	t.Run("config name prefers yaml over yml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myconfig.yaml", "metadata:\n  author: yaml\n")
		writeConfig(t, dir, "myconfig.yml", "metadata:\n  author: yml\n")
		chdir(t, dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Metadata.Author != "yaml" {
			t.Errorf("Metadata.Author = %q, want %q (should prefer .yaml)", cfg.Metadata.Author, "yaml")
		}
	})

	t.Run("config name resolves from user config directory", func(t *testing.T) {
		if runtime.GOOS == "windows" || runtime.GOOS == "darwin" || runtime.GOOS == "plan9" {
			t.Skip("os.UserConfigDir ignores XDG_CONFIG_HOME on this platform")
		}
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		appDir := filepath.Join(xdg, AppDirName)
		if err := os.MkdirAll(appDir, 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		writeConfig(t, appDir, "testconfig.yaml", "metadata:\n  author: userdir\n")
		chdir(t, t.TempDir())

		cfg, err := LoadConfig("testconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Metadata.Author != "userdir" {
			t.Errorf("Metadata.Author = %q, want %q", cfg.Metadata.Author, "userdir")
		}
	})

	t.Run("config name not found returns ErrConfigNotFound", func(t *testing.T) {
		chdir(t, t.TempDir())

		_, err := LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
		if err != nil && !strings.Contains(err.Error(), "nonexistent.yml") {
			t.Errorf("error should list tried paths, got %q", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("work")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Errorf("local candidates = %v, want [work.yaml work.yml]", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppDirName) {
			t.Errorf("user candidate %q should be under %s", p, AppDirName)
		}
	}
}
