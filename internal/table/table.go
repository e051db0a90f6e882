// Package table pulls GFM tables out of markdown and exports them as CSV,
// TSV or a normalised markdown table.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	// ErrNoTables is returned when a document holds no table to export.
	ErrNoTables = errors.New("no tables found")
	// ErrUnknownFormat is returned for an export format other than csv, tsv or markdown.
	ErrUnknownFormat = errors.New("unknown table format")
)

// Alignment is a column's alignment as written in the delimiter row.
type Alignment string

const (
	AlignNone   Alignment = ""
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Table is a table's cell text with inline markup removed.
type Table struct {
	Header []string    `yaml:"header" json:"header"`
	Rows   [][]string  `yaml:"rows" json:"rows"`
	Align  []Alignment `yaml:"align" json:"align"`
}

// Extract returns every table in markdown, in document order. Rows are
// padded or cut to the header width.
func Extract(markdown string) []Table {
	source := []byte(markdown)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(source))

	var tables []Table
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		tbl, ok := n.(*extast.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		tables = append(tables, fromNode(tbl, source))
		return ast.WalkSkipChildren, nil
	})
	return tables
}

// Select returns the table at index in markdown.
func Select(markdown string, index int) (Table, error) {
	tables := Extract(markdown)
	if len(tables) == 0 {
		return Table{}, ErrNoTables
	}
	if index < 0 || index >= len(tables) {
		return Table{}, fmt.Errorf("table index %d out of range: document has %d tables", index, len(tables))
	}
	return tables[index], nil
}

func fromNode(n *extast.Table, source []byte) Table {
	var t Table
	for _, a := range n.Alignments {
		t.Align = append(t.Align, alignment(a))
	}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, cellText(cell, source))
		}
		switch row.(type) {
		case *extast.TableHeader:
			t.Header = cells
		case *extast.TableRow:
			t.Rows = append(t.Rows, cells)
		}
	}
	return t.normalized()
}

func alignment(a extast.Alignment) Alignment {
	switch a {
	case extast.AlignLeft:
		return AlignLeft
	case extast.AlignCenter:
		return AlignCenter
	case extast.AlignRight:
		return AlignRight
	}
	return AlignNone
}

// cellText flattens a cell's inline nodes to their text.
func cellText(cell ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(cell, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.AutoLink:
			b.Write(n.Label(source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// normalized pads ragged rows with empty cells and cuts long ones, so every
// row has as many cells as the header.
func (t Table) normalized() Table {
	cols := len(t.Header)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out := make([]string, cols)
		copy(out, row)
		rows[i] = out
	}
	t.Rows = rows

	align := make([]Alignment, cols)
	copy(align, t.Align)
	t.Align = align
	return t
}

func (t Table) align(col int) Alignment {
	if col < len(t.Align) {
		return t.Align[col]
	}
	return AlignNone
}
