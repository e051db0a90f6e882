package input

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FileSpec is a path with an optional line range.
type FileSpec struct {
	Path      string
	StartLine int  // 1-indexed, 0 means from beginning
	EndLine   int  // 1-indexed, 0 means to end
	HasRegion bool // true if a line range was given
}

var regionPattern = regexp.MustCompile(`^(.+):(\d*)-(\d*)$`)

// ParseFileSpec parses a file specification like "answer.md:11-22".
// Supported forms:
//   - answer.md       - entire file
//   - answer.md:11-22 - lines 11-22
//   - answer.md:11-   - line 11 to end of file
//   - answer.md:-22   - lines 1-22
//
// A colon not followed by a range is part of the path.
func ParseFileSpec(spec string) (FileSpec, error) {
	if spec == "" {
		return FileSpec{}, fmt.Errorf("empty file spec")
	}

	m := regionPattern.FindStringSubmatch(spec)
	if m == nil || (m[2] == "" && m[3] == "") {
		return FileSpec{Path: spec}, nil
	}

	fs := FileSpec{Path: m[1], HasRegion: true}
	var err error
	if m[2] != "" {
		if fs.StartLine, err = strconv.Atoi(m[2]); err != nil {
			return FileSpec{}, fmt.Errorf("invalid start line %q: %w", m[2], err)
		}
	}
	if m[3] != "" {
		if fs.EndLine, err = strconv.Atoi(m[3]); err != nil {
			return FileSpec{}, fmt.Errorf("invalid end line %q: %w", m[3], err)
		}
	}
	if fs.EndLine > 0 && fs.StartLine > fs.EndLine {
		return FileSpec{}, fmt.Errorf("start line %d is after end line %d", fs.StartLine, fs.EndLine)
	}
	return fs, nil
}

// String returns the spec as it would be written on the command line.
func (fs FileSpec) String() string {
	if !fs.HasRegion {
		return fs.Path
	}
	var start, end string
	if fs.StartLine > 0 {
		start = strconv.Itoa(fs.StartLine)
	}
	if fs.EndLine > 0 {
		end = strconv.Itoa(fs.EndLine)
	}
	return fs.Path + ":" + start + "-" + end
}

// ExtractLines returns lines start through end of content, 1-indexed and
// inclusive. 0 for start means from the beginning, 0 for end means to the end.
// A trailing newline on the last selected line is kept, so a region cut
// from the middle of a document still ends its final line.
func ExtractLines(content string, start, end int) string {
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	from := 0
	if start > 0 {
		from = start - 1
	}
	to := len(lines)
	if end > 0 && end < to {
		to = end
	}
	if from >= to {
		return ""
	}
	return strings.Join(lines[from:to], "")
}
