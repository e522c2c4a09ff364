// Package markdown classifies single Markdown lines. Each matcher is anchored
// at the start of the line and returns the captured content on success.
package markdown

import (
	"regexp"

	"github.com/rivo/uniseg"
)

// Precompiled regex patterns for performance.
var (
	// ATX heading, levels 1-4 only
	headingPattern = regexp.MustCompile(`^(#{1,4}) (.+)$`)

	// Unordered list item with a dash marker
	unorderedListPattern = regexp.MustCompile(`^- (.*)$`)

	// Ordered list item, no leading zero
	orderedListPattern = regexp.MustCompile(`^[1-9][0-9]*\. (.*)$`)
)

// HeadingMatch describes a matched heading line.
type HeadingMatch struct {
	Content string
	Level   int // number of # markers, 1-4
}

// MatchHeading reports whether line is a heading and returns its content and
// level. The level counts user-perceived characters, not bytes.
func MatchHeading(line string) (HeadingMatch, bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return HeadingMatch{}, false
	}
	return HeadingMatch{
		Content: m[2],
		Level:   uniseg.GraphemeClusterCount(m[1]),
	}, true
}

// MatchUnorderedList reports whether line is a "- item" list entry.
func MatchUnorderedList(line string) (string, bool) {
	return matchContent(unorderedListPattern, line)
}

// MatchOrderedList reports whether line is a "1. item" list entry.
func MatchOrderedList(line string) (string, bool) {
	return matchContent(orderedListPattern, line)
}

// IsListItem returns true for either list form.
func IsListItem(line string) bool {
	return unorderedListPattern.MatchString(line) || orderedListPattern.MatchString(line)
}

func matchContent(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
