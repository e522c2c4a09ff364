package pipeline

// Stats summarizes one conversion run.
type Stats struct {
	Lines       int    // input lines read, front matter included
	FrontMatter bool   // input started with a front-matter block
	Headings    [4]int // sectioning commands emitted, indexed by level-1
	TextLines   int    // lines written as escaped plain text
	BlankLines  int
	ListItems   int // list items passed through as plain text (subset of TextLines)
}

// HeadingCount returns the number of sectioning commands emitted.
func (s Stats) HeadingCount() int {
	n := 0
	for _, c := range s.Headings {
		n += c
	}
	return n
}
