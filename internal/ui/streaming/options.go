package streaming

import "log/slog"

// StreamRendererOption configures a StreamRenderer.
type StreamRendererOption func(*StreamRenderer)

// WithPartialRendering enables partial block rendering with re-rendering.
// When enabled, the block being written is repaired and shown immediately,
// and the output will be re-rendered when the block completes.
func WithPartialRendering() StreamRendererOption {
	return func(sr *StreamRenderer) {
		sr.partialEnabled = true
	}
}

// WithTerminalWidth sets the terminal width for accurate line counting
// during partial rendering. This is used to calculate how many lines
// the rendered output occupies for cursor repositioning.
func WithTerminalWidth(width int) StreamRendererOption {
	return func(sr *StreamRenderer) {
		sr.termWidth = width
	}
}

// WithStripIncompleteTags controls whether a raw HTML tag still being typed
// at the end of the partial block is hidden. It is on by default.
func WithStripIncompleteTags(strip bool) StreamRendererOption {
	return func(sr *StreamRenderer) {
		sr.stripTags = strip
	}
}

// WithRepairOnFlush repairs the trailing block before the final render, for
// streams that may stop before the document is finished. Without it the
// final render shows the markdown exactly as received.
func WithRepairOnFlush() StreamRendererOption {
	return func(sr *StreamRenderer) {
		sr.repairOnFlush = true
	}
}

// WithLogger sets the logger used for block commit and partial render
// events, logged at debug level.
func WithLogger(logger *slog.Logger) StreamRendererOption {
	return func(sr *StreamRenderer) {
		if logger != nil {
			sr.logger = logger
		}
	}
}
