package md2tex

import (
	"github.com/alnah/go-md2tex/internal/inspect"
	"github.com/alnah/go-md2tex/internal/metadata"
	"github.com/alnah/go-md2tex/internal/pipeline"
	"github.com/alnah/go-md2tex/internal/tex"
)

// Sentinel errors for library operations.
var (
	ErrMetadataParse       = metadata.ErrMetadataParse
	ErrUnclosedFrontMatter = pipeline.ErrUnclosedFrontMatter
	ErrReadInput           = pipeline.ErrReadInput
	ErrWriteOutput         = pipeline.ErrWriteOutput
	ErrInvalidHeadingLevel = tex.ErrInvalidHeadingLevel
	ErrInspect             = inspect.ErrInspect
)
