package ui

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	diff "github.com/shogoki/gotextdiff"
)

var (
	diffAddBg    = [3]int{30, 60, 30} // dark green tint
	diffRemoveBg = [3]int{60, 30, 30} // dark red tint
)

// Regex to parse hunk header: @@ -start,count +start,count @@
var hunkRe = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// RepairDiff writes a line-numbered unified diff between a stream prefix and
// its repaired form. Markdown is syntax highlighted when the styles emit
// color. It reports whether the two differ.
func RepairDiff(w io.Writer, styles *Styles, before, after string) (bool, error) {
	if before == after {
		return false, nil
	}

	// A missing final newline would otherwise show up as an extra change
	diffBytes := diff.Diff("input", []byte(withNewline(before)), "repaired", []byte(withNewline(after)))
	if len(diffBytes) == 0 {
		return false, nil
	}

	var hl *Highlighter
	if styles.Colored() {
		hl = NewHighlighter("markdown", "monokai")
	}

	oldLines := strings.Count(before, "\n") + 1
	newLines := strings.Count(after, "\n") + 1
	width := len(strconv.Itoa(max(oldLines, newLines)))
	if width < 3 {
		width = 3
	}

	var out strings.Builder
	var newLineNum int
	hunkCount := 0

	for _, line := range strings.Split(string(diffBytes), "\n") {
		if strings.HasPrefix(line, "diff ") ||
			strings.HasPrefix(line, "--- ") ||
			strings.HasPrefix(line, "+++ ") ||
			line == "" {
			continue
		}

		prefix, content := line[0], line[1:]
		switch prefix {
		case '@':
			if matches := hunkRe.FindStringSubmatch(line); matches != nil {
				newLineNum, _ = strconv.Atoi(matches[2])
			}
			// Show "..." separator between hunks (not before first one)
			if hunkCount > 0 {
				out.WriteString(styles.LineNumber.Render(strings.Repeat(" ", width)+"  ...") + "\n")
			}
			hunkCount++

		case '-':
			gutter := styles.Error.Render(fmt.Sprintf("%*d- ", width, newLineNum))
			out.WriteString(gutter + diffBody(styles.DiffRemove, hl, content, diffRemoveBg) + "\n")

		case '+':
			gutter := styles.Success.Render(fmt.Sprintf("%*d+ ", width, newLineNum))
			out.WriteString(gutter + diffBody(styles.DiffAdd, hl, content, diffAddBg) + "\n")
			newLineNum++

		case ' ':
			gutter := styles.LineNumber.Render(fmt.Sprintf("%*d  ", width, newLineNum))
			out.WriteString(gutter + hl.HighlightLine(content) + "\n")
			newLineNum++

		case '\\':
			// "\ No newline at end of file"
			continue

		default:
			out.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, out.String())
	return true, err
}

func diffBody(style lipgloss.Style, hl *Highlighter, content string, bg [3]int) string {
	if hl != nil {
		return hl.HighlightLineWithBg(content, bg)
	}
	return style.Render(content)
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
