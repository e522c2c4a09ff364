package tex

import (
	"errors"
	"fmt"
)

// ErrInvalidHeadingLevel is returned for heading levels without a LaTeX
// sectioning command.
var ErrInvalidHeadingLevel = errors.New("invalid heading level")

// Heading level bounds supported by the report class mapping.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 4
)

// sectionCommands maps heading level (index+1) to its command name.
var sectionCommands = [...]string{
	"chapter",
	"section",
	"subsection",
	"subsubsection",
}

// SectionCommand returns the sectioning command name for a heading level.
func SectionCommand(level int) (string, error) {
	if level < MinHeadingLevel || level > MaxHeadingLevel {
		return "", fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidHeadingLevel, level, MinHeadingLevel, MaxHeadingLevel)
	}
	return sectionCommands[level-1], nil
}

// Section renders a sectioning command with escaped content, e.g.
// \section{Results \& Discussion}.
func Section(level int, content string) (string, error) {
	name, err := SectionCommand(level)
	if err != nil {
		return "", err
	}
	return Simple(name, Escape(content)), nil
}
