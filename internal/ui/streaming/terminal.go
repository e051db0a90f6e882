package streaming

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// terminalController redraws the partial block in place. It remembers how
// many terminal rows its last draw occupies so the next draw can erase it.
type terminalController struct {
	output io.Writer
	width  int
	rows   int // rows taken by the last Redraw, 0 when nothing is drawn
}

func newTerminalController(output io.Writer, width int) *terminalController {
	return &terminalController{
		output: output,
		width:  width,
	}
}

// eraseRows returns the sequence that moves the cursor up n rows, back to
// the first column, and erases to the end of the screen.
func eraseRows(n int) string {
	if n <= 0 {
		return ""
	}
	return ansi.CursorUp(n) + ansi.CursorHorizontalAbsolute(1) + ansi.EraseDisplay(0)
}

// ClearLines erases the n rows above the cursor.
func (tc *terminalController) ClearLines(n int) error {
	seq := eraseRows(n)
	if seq == "" {
		return nil
	}
	_, err := io.WriteString(tc.output, seq)
	return err
}

// Redraw replaces the previous draw with content. Erasing and drawing go
// out in one write so the terminal never shows the erased state alone.
func (tc *terminalController) Redraw(content string) error {
	seq := eraseRows(tc.rows) + content
	if seq == "" {
		return nil
	}
	if _, err := io.WriteString(tc.output, seq); err != nil {
		return err
	}
	tc.rows = tc.CountLines(content)
	return nil
}

// Clear erases the previous draw, if any.
func (tc *terminalController) Clear() error {
	rows := tc.rows
	tc.rows = 0
	return tc.ClearLines(rows)
}

// Rows returns the rows taken by the last draw.
func (tc *terminalController) Rows() int {
	return tc.rows
}

// CountLines returns how many terminal rows rendered occupies once long
// lines wrap at the terminal width. Escape sequences take no width, an
// empty line takes a row, and a final newline does not start a new one.
func (tc *terminalController) CountLines(rendered string) int {
	if rendered == "" {
		return 0
	}

	rows := 0
	for _, line := range strings.Split(strings.TrimSuffix(rendered, "\n"), "\n") {
		w := ansi.StringWidth(line)
		if w == 0 || tc.width <= 0 {
			rows++
			continue
		}
		rows += (w + tc.width - 1) / tc.width
	}
	return rows
}
