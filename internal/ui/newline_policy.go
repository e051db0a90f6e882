package ui

import (
	"strings"

	"github.com/samsaffron/streamdown/internal/blocks"
)

// MaxStreamingConsecutiveNewlines limits runaway vertical whitespace in streamed text.
const MaxStreamingConsecutiveNewlines = 2

// StreamingNewlineCompactor incrementally compacts excessive newline runs
// across chunks. Newlines inside fenced code blocks are never dropped.
type StreamingNewlineCompactor struct {
	maxRun int
	run    int

	line    strings.Builder
	inFence bool
	fence   blocks.Fence
}

// NewStreamingNewlineCompactor creates a stateful compactor for streamed text.
func NewStreamingNewlineCompactor(maxRun int) *StreamingNewlineCompactor {
	if maxRun <= 0 {
		maxRun = MaxStreamingConsecutiveNewlines
	}
	return &StreamingNewlineCompactor{maxRun: maxRun}
}

// CompactChunk returns chunk with newline runs capped to maxRun, preserving cross-chunk state.
func (c *StreamingNewlineCompactor) CompactChunk(chunk string) string {
	if c == nil || chunk == "" {
		return chunk
	}
	var b strings.Builder
	b.Grow(len(chunk))
	for i := 0; i < len(chunk); i++ {
		ch := chunk[i]
		if ch != '\n' {
			c.run = 0
			c.line.WriteByte(ch)
			b.WriteByte(ch)
			continue
		}

		wasInFence := c.inFence
		c.endLine()
		if wasInFence {
			c.run = 1
			b.WriteByte(ch)
			continue
		}
		c.run++
		if c.run <= c.maxRun {
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// endLine updates fence state with the line just completed.
func (c *StreamingNewlineCompactor) endLine() {
	line := strings.TrimSuffix(c.line.String(), "\r")
	c.line.Reset()

	switch {
	case c.inFence:
		if c.fence.Closes(line) {
			c.inFence = false
		}
	case blocks.Detect(line) == blocks.KindFencedCode:
		c.inFence = true
		c.fence = blocks.ParseFence(line)
	}
}

// CountTrailingNewlines returns how many '\n' characters appear at the end of s.
func CountTrailingNewlines(s string) int {
	count := 0
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != '\n' {
			break
		}
		count++
	}
	return count
}
