package blocks

import "strings"

// Block is one top-level markdown block. Blank lines belong to the block
// they follow.
type Block struct {
	Kind  Kind   `yaml:"kind" json:"kind"`
	Start int    `yaml:"start" json:"start"`
	Text  string `yaml:"text" json:"text"`
}

// state represents the current state of the segmenter.
type state int

const (
	stateReady        state = iota // Ready for new block
	stateInParagraph               // Accumulating paragraph
	stateInFencedCode              // Inside ``` ... ```
	stateInTable                   // Inside table rows
	stateInList                    // Inside list
	stateInBlockquote              // Inside > block
	stateInMath                    // Inside $$ ... $$
)

// Segmenter groups complete lines into blocks as they arrive. Each finished
// block is handed to the commit function in document order; blank lines
// between blocks are committed on their own as KindBlank.
//
// A Segmenter is not safe for concurrent use.
type Segmenter struct {
	commit func(Block) error

	state state
	kind  Kind

	// Lines of the block still being accumulated
	pending []string

	// Fenced code block state
	fence Fence

	// Base indent level of current list
	listIndent int

	// Bytes committed so far
	offset int
}

// NewSegmenter returns a Segmenter that reports finished blocks to commit.
// An error from commit stops the current Line call and is returned from it.
func NewSegmenter(commit func(Block) error) *Segmenter {
	return &Segmenter{commit: commit}
}

// Pending returns the text of the block still being accumulated.
func (s *Segmenter) Pending() string {
	return strings.Join(s.pending, "")
}

// PendingKind returns the kind of the block still being accumulated, or
// KindBlank when there is none.
func (s *Segmenter) PendingKind() Kind {
	if len(s.pending) == 0 {
		return KindBlank
	}
	return s.kind
}

// InFence reports whether the pending block is an unclosed fenced code block.
func (s *Segmenter) InFence() bool {
	return s.state == stateInFencedCode
}

// Line processes a single line. The line normally ends in "\n"; a final
// line without one is accepted too.
func (s *Segmenter) Line(line string) error {
	// Remove the trailing newline for analysis, but keep the raw line
	content := strings.TrimSuffix(line, "\n")
	content = strings.TrimSuffix(content, "\r")

	switch s.state {
	case stateReady:
		return s.handleReady(content, line)
	case stateInParagraph:
		return s.handleParagraph(content, line)
	case stateInFencedCode:
		return s.handleFencedCode(content, line)
	case stateInTable:
		return s.handleTable(content, line)
	case stateInList:
		return s.handleList(content, line)
	case stateInBlockquote:
		return s.handleBlockquote(content, line)
	case stateInMath:
		return s.handleMath(content, line)
	}

	return nil
}

// Flush appends tail to the pending block and commits it as complete,
// whatever state it is in.
func (s *Segmenter) Flush(tail string) error {
	if tail != "" {
		if len(s.pending) == 0 {
			s.kind = Detect(strings.TrimRight(tail, "\r\n"))
		}
		s.pending = append(s.pending, tail)
	}
	if len(s.pending) == 0 {
		s.state = stateReady
		return nil
	}
	return s.commitPending("")
}

func (s *Segmenter) emit(kind Kind, text string) error {
	b := Block{Kind: kind, Start: s.offset, Text: text}
	s.offset += len(text)
	return s.commit(b)
}

func (s *Segmenter) begin(kind Kind, st state, rawLine string) {
	s.kind = kind
	s.state = st
	s.pending = append(s.pending, rawLine)
}

// commitPending commits the pending lines plus extra as one block and
// returns to the ready state.
func (s *Segmenter) commitPending(extra string) error {
	text := strings.Join(s.pending, "") + extra
	kind := s.kind
	s.pending = nil
	s.state = stateReady
	s.fence = Fence{}
	return s.emit(kind, text)
}

// handleReady processes a line when we're ready for a new block.
func (s *Segmenter) handleReady(content, rawLine string) error {
	kind := Detect(content)

	switch kind {
	case KindBlank:
		return s.emit(KindBlank, rawLine)

	case KindFencedCode:
		s.fence = ParseFence(content)
		s.begin(kind, stateInFencedCode, rawLine)

	case KindMath:
		if isSingleLineMath(content) {
			return s.emit(kind, rawLine)
		}
		s.begin(kind, stateInMath, rawLine)

	case KindHeading, KindThematicBreak:
		// Single-line blocks are complete immediately
		return s.emit(kind, rawLine)

	case KindTable:
		s.begin(kind, stateInTable, rawLine)

	case KindList:
		s.listIndent = CountLeadingSpaces(content)
		s.begin(kind, stateInList, rawLine)

	case KindBlockquote:
		s.begin(kind, stateInBlockquote, rawLine)

	default:
		s.begin(KindParagraph, stateInParagraph, rawLine)
	}

	return nil
}

// handleParagraph processes a line while accumulating a paragraph.
func (s *Segmenter) handleParagraph(content, rawLine string) error {
	if IsBlank(content) {
		return s.commitPending(rawLine)
	}

	// Setext underline (=== or ---) turns the paragraph into a heading.
	// This must be checked before thematic break because --- is ambiguous.
	if IsSetextUnderline(content) && len(s.pending) > 0 {
		s.kind = KindHeading
		return s.commitPending(rawLine)
	}

	switch Detect(content) {
	case KindFencedCode, KindHeading, KindThematicBreak, KindTable, KindList, KindBlockquote, KindMath:
		if err := s.commitPending(""); err != nil {
			return err
		}
		return s.handleReady(content, rawLine)
	}

	s.pending = append(s.pending, rawLine)
	return nil
}

// handleFencedCode processes a line while inside a fenced code block.
func (s *Segmenter) handleFencedCode(content, rawLine string) error {
	s.pending = append(s.pending, rawLine)
	if s.fence.Closes(content) {
		return s.commitPending("")
	}
	return nil
}

// handleMath processes a line while inside a $$ block. Blank lines do not
// end it.
func (s *Segmenter) handleMath(content, rawLine string) error {
	s.pending = append(s.pending, rawLine)
	if closesMath(content) {
		return s.commitPending("")
	}
	return nil
}

// handleTable processes a line while inside a table.
func (s *Segmenter) handleTable(content, rawLine string) error {
	// Tables continue as long as lines contain |
	if IsTableLine(content) {
		s.pending = append(s.pending, rawLine)
		return nil
	}

	if err := s.commitPending(""); err != nil {
		return err
	}
	return s.handleReady(content, rawLine)
}

// handleList processes a line while inside a list.
func (s *Segmenter) handleList(content, rawLine string) error {
	// Blank line might end list or be between items
	if IsBlank(content) {
		s.pending = append(s.pending, rawLine)
		return nil
	}

	indent := CountLeadingSpaces(content)
	trimmed := strings.TrimLeft(content, " \t")

	// A list marker always continues the list
	if IsListMarker(trimmed) {
		s.pending = append(s.pending, rawLine)
		return nil
	}

	kind := Detect(content)
	if kind != KindParagraph && kind != KindBlank {
		if err := s.commitPending(""); err != nil {
			return err
		}
		return s.handleReady(content, rawLine)
	}

	// Continuation text must be indented past the list's base indent
	if indent > s.listIndent {
		s.pending = append(s.pending, rawLine)
		return nil
	}

	if err := s.commitPending(""); err != nil {
		return err
	}
	return s.handleReady(content, rawLine)
}

// handleBlockquote processes a line while inside a blockquote.
func (s *Segmenter) handleBlockquote(content, rawLine string) error {
	trimmed := strings.TrimLeft(content, " \t")

	if IsBlank(content) {
		s.pending = append(s.pending, rawLine)
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '>' {
		s.pending = append(s.pending, rawLine)
		return nil
	}

	if err := s.commitPending(""); err != nil {
		return err
	}
	return s.handleReady(content, rawLine)
}
