// Package blocks splits markdown into top-level blocks so that a stream can
// be rendered block by block: finished blocks are rendered once, and only
// the trailing block, the one still being written, needs repairing.
package blocks

import (
	"fmt"
	"strings"

	"github.com/samsaffron/streamdown/internal/repair"
)

// Parse splits markdown into top-level blocks. It is lossless: the Text of
// the returned blocks concatenates back to markdown.
//
// A $$ math block is one block even when it contains blank lines. A
// document with footnote definitions is returned as a single block, since
// references and definitions must be parsed together.
func Parse(markdown string) []Block {
	out, _ := parse(markdown)
	return out
}

// parse also reports whether the last block is a fenced code block that is
// still open.
func parse(markdown string) (out []Block, openFence bool) {
	if markdown == "" {
		return nil, false
	}
	if hasFootnotes(markdown) {
		return []Block{{Kind: KindFootnotes, Text: markdown}}, false
	}

	var lead string // blank lines before the first block
	seg := NewSegmenter(func(b Block) error {
		switch {
		case b.Kind != KindBlank:
			if lead != "" {
				b.Text = lead + b.Text
				b.Start -= len(lead)
				lead = ""
			}
			out = append(out, b)
		case len(out) > 0:
			out[len(out)-1].Text += b.Text
		default:
			lead += b.Text
		}
		return nil
	})

	for _, line := range strings.SplitAfter(markdown, "\n") {
		if line == "" {
			continue
		}
		mustCommit(seg.Line(line))
	}
	openFence = seg.InFence()
	mustCommit(seg.Flush(""))

	if lead != "" {
		out = append(out, Block{Kind: KindBlank, Text: lead})
	}
	return out, openFence
}

// mustCommit panics on a segmenter error. Parse's commit func never fails,
// so an error here is a bug in the segmenter.
func mustCommit(err error) {
	if err != nil {
		panic(fmt.Sprintf("blocks: parse: %v", err))
	}
}

// Split returns the text of each block in markdown.
func Split(markdown string) []string {
	parsed := Parse(markdown)
	out := make([]string, len(parsed))
	for i, b := range parsed {
		out[i] = b.Text
	}
	return out
}

// SafeBoundary returns the byte offset where the trailing block of markdown
// starts. Everything before it is complete and can be rendered as is. It
// returns -1 when markdown is a single block.
func SafeBoundary(markdown string) int {
	parsed := Parse(markdown)
	if len(parsed) < 2 {
		return -1
	}
	return parsed[len(parsed)-1].Start
}

// RepairTrailing repairs the trailing block of markdown and leaves the
// blocks before it untouched. With stripTags, a raw HTML tag still being
// written at the end is removed first.
//
// Text inside a fenced code block that is still open is never touched.
func RepairTrailing(markdown string, stripTags bool) string {
	parsed, openFence := parse(markdown)
	if openFence {
		return markdown
	}
	at := 0
	if len(parsed) > 1 {
		at = parsed[len(parsed)-1].Start
	}
	head, tail := markdown[:at], markdown[at:]
	if stripTags {
		tail = repair.StripIncompleteTag(tail)
	}
	return head + repair.Repair(tail)
}

func hasFootnotes(markdown string) bool {
	if !strings.Contains(markdown, "[^") {
		return false
	}
	for _, line := range strings.Split(markdown, "\n") {
		if isFootnoteDefinition(line) {
			return true
		}
	}
	return false
}
