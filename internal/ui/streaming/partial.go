package streaming

import (
	"strings"

	"github.com/samsaffron/streamdown/internal/blocks"
	"github.com/samsaffron/streamdown/internal/render"
)

// partialState tracks the partial block currently on screen. The rows it
// occupies are tracked by the terminal controller.
type partialState struct {
	repairedMarkdown string // Repaired markdown currently displayed
	rendered         string // Rendered output currently displayed
}

// currentBlockContent returns the current incomplete block content
// by combining pending lines and any partial line in the buffer.
func (sr *StreamRenderer) currentBlockContent() string {
	return sr.seg.Pending() + sr.lineBuf.String()
}

// renderPartialBlock shows the block still being written, repaired so that
// open emphasis, code and links render as if they were closed.
// In altscreen mode (with termCtrl), it clears and re-renders.
// In flowing mode (no termCtrl), partial rendering is disabled since
// there is no cursor control to clear and re-render.
func (sr *StreamRenderer) renderPartialBlock() error {
	if sr.termCtrl == nil {
		return nil
	}

	content := sr.currentBlockContent()
	if strings.TrimSpace(content) == "" {
		return nil
	}

	repaired := repairPartial(content, sr.stripTags)
	if repaired == "" || repaired == sr.partialState.repairedMarkdown {
		return nil
	}

	rendered, err := sr.renderPartial(repaired)
	if err != nil {
		return err
	}

	if err := sr.termCtrl.Redraw(rendered); err != nil {
		return err
	}

	sr.partialState.repairedMarkdown = repaired
	sr.partialState.rendered = rendered
	sr.logger.Debug("partial block rendered", "bytes", len(content), "rows", sr.termCtrl.Rows())
	return nil
}

// repairPartial prepares an incomplete block for the terminal. The terminal
// cannot mark a link as pending, so a pending link is shown as its label.
func repairPartial(content string, stripTags bool) string {
	repaired := blocks.RepairTrailing(content, stripTags)
	return strings.TrimRight(render.NeutralizeMarkdown(repaired), " \t")
}

// renderPartial renders repaired content through glamour.
func (sr *StreamRenderer) renderPartial(content string) (string, error) {
	rendered, err := sr.tr.Render(content)
	if err != nil {
		return "", err
	}

	// Strip trailing newlines from partial render since we'll re-render later
	return strings.TrimRight(rendered, "\n"), nil
}

// clearPartialState clears the partial rendering state and
// removes partial output from terminal before emitting complete block.
func (sr *StreamRenderer) clearPartialState() error {
	sr.partialState = partialState{}
	if sr.termCtrl == nil {
		return nil
	}
	return sr.termCtrl.Clear()
}
