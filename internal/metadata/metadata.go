// Package metadata loads document metadata from a front-matter YAML block.
package metadata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-md2tex/internal/yamlutil"
)

// ErrMetadataParse indicates the front-matter block is not valid YAML.
var ErrMetadataParse = errors.New("failed to parse metadata")

// Front-matter keys.
const (
	KeyPaperSize    = "paper_size"
	KeyFontSize     = "font_size"
	KeyDocumentType = "document_type"
	KeyMargin       = "margin"
	KeyFontFamily   = "font_family"
	KeyTitle        = "title"
	KeyAuthor       = "author"
)

// Default field values.
const (
	DefaultPaperSize  = "a4paper"
	DefaultFontSize   = "12pt"
	DefaultDocType    = "article"
	DefaultMargin     = "1in"
	DefaultFontFamily = "freesans"
	DefaultTitle      = "Untitled"
	DefaultAuthor     = "No Author"
)

// Metadata holds document settings consumed by the preamble generator.
type Metadata struct {
	PaperSize  string
	FontSize   string
	DocType    string
	Margin     string
	FontFamily string
	Title      string
	Author     string
}

// Defaults returns metadata with every field set to its default.
func Defaults() Metadata {
	return Metadata{
		PaperSize:  DefaultPaperSize,
		FontSize:   DefaultFontSize,
		DocType:    DefaultDocType,
		Margin:     DefaultMargin,
		FontFamily: DefaultFontFamily,
		Title:      DefaultTitle,
		Author:     DefaultAuthor,
	}
}

// Overlay returns base with every non-empty field of over applied on top.
func Overlay(base, over Metadata) Metadata {
	set(&base.PaperSize, over.PaperSize)
	set(&base.FontSize, over.FontSize)
	set(&base.DocType, over.DocType)
	set(&base.Margin, over.Margin)
	set(&base.FontFamily, over.FontFamily)
	set(&base.Title, over.Title)
	set(&base.Author, over.Author)
	return base
}

func set(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Load parses a front-matter block using the built-in defaults.
func Load(source string) (Metadata, error) {
	return LoadWithDefaults(source, Defaults())
}

// LoadWithDefaults parses a front-matter block. Each field falls back to the
// matching field of defaults when its key is missing or not a string.
// A blank block, or a document that is not a mapping, yields defaults.
func LoadWithDefaults(source string, defaults Metadata) (Metadata, error) {
	if strings.TrimSpace(source) == "" {
		return defaults, nil
	}

	doc, ok, err := yamlutil.Mapping([]byte(source))
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %w", ErrMetadataParse, err)
	}
	if !ok {
		return defaults, nil
	}

	return Metadata{
		PaperSize:  stringOr(doc, KeyPaperSize, defaults.PaperSize),
		FontSize:   stringOr(doc, KeyFontSize, defaults.FontSize),
		DocType:    stringOr(doc, KeyDocumentType, defaults.DocType),
		Margin:     stringOr(doc, KeyMargin, defaults.Margin),
		FontFamily: stringOr(doc, KeyFontFamily, defaults.FontFamily),
		Title:      stringOr(doc, KeyTitle, defaults.Title),
		Author:     stringOr(doc, KeyAuthor, defaults.Author),
	}, nil
}

// stringOr returns doc[key] when it is a string scalar, else fallback.
func stringOr(doc map[string]any, key, fallback string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return fallback
}
