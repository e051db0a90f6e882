package table

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a user-supplied name to a Format. "md" is accepted for
// markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Export renders t in format f.
func Export(t Table, f Format) (string, error) {
	switch f {
	case FormatCSV:
		return ToCSV(t)
	case FormatTSV:
		return ToTSV(t), nil
	case FormatMarkdown:
		return ToMarkdown(t), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// ToCSV renders t as RFC 4180 CSV, header first.
func ToCSV(t Table) (string, error) {
	t = t.normalized()
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(t.Header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return "", fmt.Errorf("write csv rows: %w", err)
	}
	return b.String(), nil
}

var tsvCleaner = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// ToTSV renders t as tab-separated values. Tabs and line breaks inside
// cells become single spaces.
func ToTSV(t Table) string {
	t = t.normalized()
	var b strings.Builder
	writeLine := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(tsvCleaner.Replace(c))
		}
		b.WriteByte('\n')
	}
	writeLine(t.Header)
	for _, row := range t.Rows {
		writeLine(row)
	}
	return b.String()
}

var markdownCellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// ToMarkdown renders t as a GFM pipe table with columns padded to a common
// display width.
func ToMarkdown(t Table) string {
	t = t.normalized()
	cols := len(t.Header)
	if cols == 0 {
		return ""
	}

	escape := func(cells []string) []string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = markdownCellEscaper.Replace(c)
		}
		return out
	}
	header := escape(t.Header)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = escape(row)
	}

	// Three is the shortest delimiter cell that can carry both colons
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 3
	}
	for _, row := range append([][]string{header}, rows...) {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteByte('|')
		for i, c := range cells {
			b.WriteByte(' ')
			b.WriteString(pad(c, widths[i], t.align(i)))
			b.WriteString(" |")
		}
		b.WriteByte('\n')
	}

	writeRow(header)
	b.WriteByte('|')
	for i, w := range widths {
		b.WriteByte(' ')
		b.WriteString(delimiter(t.align(i), w))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

func pad(cell string, width int, a Alignment) string {
	switch a {
	case AlignRight:
		return runewidth.FillLeft(cell, width)
	case AlignCenter:
		gap := width - runewidth.StringWidth(cell)
		if gap <= 0 {
			return cell
		}
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	}
	return runewidth.FillRight(cell, width)
}

func delimiter(a Alignment, width int) string {
	switch a {
	case AlignLeft:
		return ":" + strings.Repeat("-", width-1)
	case AlignRight:
		return strings.Repeat("-", width-1) + ":"
	case AlignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	}
	return strings.Repeat("-", width)
}
