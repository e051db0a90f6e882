// Package streaming renders markdown that arrives in pieces, such as a model
// reply, through glamour. Finished blocks are appended to the output as soon
// as they are known to be finished. The block still being written can be
// shown early in repaired form and is redrawn in place as it grows.
package streaming

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/charmbracelet/glamour"

	"github.com/samsaffron/streamdown/internal/blocks"
)

// StreamRenderer is an io.Writer that turns a markdown stream into rendered
// terminal output, block by block.
type StreamRenderer struct {
	tr     *glamour.TermRenderer
	output io.Writer
	logger *slog.Logger

	// Bytes of the line still being written
	lineBuf bytes.Buffer

	// All markdown committed so far (for re-rendering)
	allMarkdown bytes.Buffer

	// Rendered bytes already written to output
	renderedLen int

	// Groups complete lines into blocks and commits them to allMarkdown
	seg *blocks.Segmenter

	partialEnabled bool                // Show the unfinished block early
	stripTags      bool                // Drop a raw HTML tag still being typed
	repairOnFlush  bool                // Repair the trailing block on the final render
	termWidth      int                 // Columns, for counting wrapped rows
	termCtrl       *terminalController // Nil unless redrawing in place

	// What the last partial draw showed
	partialState partialState

	// Kept so Resize can rebuild the TermRenderer
	glamourOpts []glamour.TermRendererOption
}

// NewRenderer returns an append-only StreamRenderer writing to w. opts go to
// glamour.NewTermRenderer unchanged.
func NewRenderer(w io.Writer, opts ...glamour.TermRendererOption) (*StreamRenderer, error) {
	return NewRendererWithOptions(w, nil, opts...)
}

// NewRendererWithOptions is NewRenderer with stream options such as
// WithPartialRendering applied.
func NewRendererWithOptions(
	w io.Writer,
	streamOpts []StreamRendererOption,
	glamourOpts ...glamour.TermRendererOption,
) (*StreamRenderer, error) {
	tr, err := glamour.NewTermRenderer(glamourOpts...)
	if err != nil {
		return nil, err
	}

	sr := &StreamRenderer{
		tr:          tr,
		output:      w,
		logger:      slog.New(slog.DiscardHandler),
		stripTags:   true,
		glamourOpts: glamourOpts,
	}
	sr.seg = blocks.NewSegmenter(sr.commitBlock)

	for _, opt := range streamOpts {
		opt(sr)
	}

	// Partial rendering needs cursor control, which needs the terminal width.
	// Without it the renderer stays append-only.
	if sr.partialEnabled && sr.termWidth > 0 {
		sr.termCtrl = newTerminalController(w, sr.termWidth)
	}

	return sr, nil
}

// Write feeds a chunk of markdown. Chunks may split lines, words and
// multi-byte characters anywhere. Write always reports len(p) consumed.
func (sr *StreamRenderer) Write(p []byte) (n int, err error) {
	sr.lineBuf.Write(p)

	for {
		line, err := sr.lineBuf.ReadString('\n')
		if err != nil {
			// Partial line; keep it for the next Write
			sr.lineBuf.WriteString(line)
			break
		}
		if err := sr.seg.Line(line); err != nil {
			return len(p), err
		}
	}

	if sr.partialEnabled && (sr.seg.Pending() != "" || sr.lineBuf.Len() > 0) {
		if err := sr.renderPartialBlock(); err != nil {
			return len(p), err
		}
	}

	return len(p), nil
}

// commitBlock receives finished blocks from the segmenter. Blank lines are
// kept for the next render but produce no output on their own.
func (sr *StreamRenderer) commitBlock(b blocks.Block) error {
	sr.allMarkdown.WriteString(b.Text)
	if b.Kind == blocks.KindBlank {
		return nil
	}
	sr.logger.Debug("block committed", "kind", b.Kind, "start", b.Start, "bytes", len(b.Text))
	return sr.emitRendered()
}

// emitRendered re-renders everything committed and writes the part not yet
// written, minus trailing newlines, which may change once more text follows.
func (sr *StreamRenderer) emitRendered() error {
	if sr.partialEnabled {
		if err := sr.clearPartialState(); err != nil {
			return err
		}
	}

	if sr.allMarkdown.Len() == 0 {
		return nil
	}

	rendered, err := sr.tr.RenderBytes(sr.allMarkdown.Bytes())
	if err != nil {
		return err
	}

	// Trailing newlines change as more content is added (document margin vs
	// inter-block spacing), so they are held back until Flush.
	stableLen := stableLength(rendered)

	if stableLen > sr.renderedLen {
		if _, err := sr.output.Write(rendered[sr.renderedLen:stableLen]); err != nil {
			return err
		}
		sr.renderedLen = stableLen
	}

	return nil
}

// Flush commits whatever is buffered as if the stream had ended, then writes
// the rest of the final render including its trailing newlines.
func (sr *StreamRenderer) Flush() error {
	if sr.partialEnabled {
		if err := sr.clearPartialState(); err != nil {
			return err
		}
	}

	tail := sr.lineBuf.String()
	sr.lineBuf.Reset()
	if tail != "" && tail[len(tail)-1] != '\n' {
		tail += "\n"
	}
	if err := sr.seg.Flush(tail); err != nil {
		return err
	}

	if sr.allMarkdown.Len() == 0 {
		return nil
	}

	doc := sr.allMarkdown.Bytes()
	if sr.repairOnFlush {
		doc = []byte(repairPartial(sr.allMarkdown.String(), sr.stripTags))
	}
	rendered, err := sr.tr.RenderBytes(doc)
	if err != nil {
		return err
	}

	if len(rendered) > sr.renderedLen {
		if _, err := sr.output.Write(rendered[sr.renderedLen:]); err != nil {
			return err
		}
		sr.renderedLen = len(rendered)
	}

	return nil
}

// Close is Flush.
func (sr *StreamRenderer) Close() error {
	return sr.Flush()
}

// Markdown returns the markdown committed so far.
func (sr *StreamRenderer) Markdown() string {
	return sr.allMarkdown.String()
}

// Resize rewraps at newWidth and writes the committed document again from
// the top. Clearing the screen first is up to the caller.
func (sr *StreamRenderer) Resize(newWidth int) error {
	if newWidth <= 0 {
		return nil
	}

	sr.termWidth = newWidth
	if sr.termCtrl != nil {
		sr.termCtrl.width = newWidth
	}

	newOpts := make([]glamour.TermRendererOption, 0, len(sr.glamourOpts)+1)
	newOpts = append(newOpts, sr.glamourOpts...)
	newOpts = append(newOpts, glamour.WithWordWrap(newWidth))

	tr, err := glamour.NewTermRenderer(newOpts...)
	if err != nil {
		return err
	}
	sr.tr = tr

	sr.partialState = partialState{}

	sr.renderedLen = 0

	if sr.allMarkdown.Len() > 0 {
		rendered, err := sr.tr.RenderBytes(sr.allMarkdown.Bytes())
		if err != nil {
			return err
		}

		stableLen := stableLength(rendered)
		if stableLen > 0 {
			if _, err := sr.output.Write(rendered[:stableLen]); err != nil {
				return err
			}
			sr.renderedLen = stableLen
		}
	}

	return nil
}

// stableLength returns the length of rendered without its trailing newlines.
func stableLength(rendered []byte) int {
	n := len(rendered)
	for n > 0 && rendered[n-1] == '\n' {
		n--
	}
	return n
}
