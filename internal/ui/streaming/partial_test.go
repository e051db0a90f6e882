package streaming

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
)

func TestRepairPartial(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		stripTags bool
		want      string
	}{
		{"plain text", "hello world", true, "hello world"},
		{"open bold", "hello **wor", true, "hello **wor**"},
		{"open italic", "hello *wor", true, "hello *wor*"},
		{"open code", "hello `code", true, "hello `code`"},
		{"open strikethrough", "hello ~~strike", true, "hello ~~strike~~"},
		{"pending link shows label", "hello [link", true, "hello link"},
		{"pending link with bold label", "see [the **docs", true, "see the **docs**"},
		{"complete link kept", "hello [link](url) test", true, "hello [link](url) test"},
		{"image being written is hidden", "look ![alt", true, "look"},
		{"partial tag stripped", "Hello <di", true, "Hello"},
		{"partial tag kept", "Hello <di", false, "Hello <di"},
		{"escaped asterisk", "hello \\*not italic", true, "hello \\*not italic"},
		{"nested incomplete", "text *a **b", true, "text *a **b***"},
		{"open fence untouched", "```go\nfunc main() {", true, "```go\nfunc main() {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repairPartial(tt.content, tt.stripTags); got != tt.want {
				t.Errorf("repairPartial(%q, %v) = %q, want %q", tt.content, tt.stripTags, got, tt.want)
			}
		})
	}
}

func TestPartialRenderingShowsRepairedBlock(t *testing.T) {
	var buf bytes.Buffer
	sr, err := NewRendererWithOptions(
		&buf,
		[]StreamRendererOption{WithPartialRendering(), WithTerminalWidth(80)},
		glamour.WithStandardStyle("dark"),
	)
	if err != nil {
		t.Fatalf("NewRendererWithOptions failed: %v", err)
	}

	sr.Write([]byte("See [the docs"))
	out := buf.String()
	if !strings.Contains(out, "docs") {
		t.Errorf("partial output missing label: %q", out)
	}
	if strings.Contains(out, "incomplete-link") || strings.Contains(out, "](") {
		t.Errorf("partial output leaks link syntax: %q", out)
	}
	if sr.termCtrl.Rows() == 0 {
		t.Error("partial rows should be tracked after a partial render")
	}

	// Unchanged repaired text is not re-rendered
	n := buf.Len()
	sr.Write([]byte(""))
	if buf.Len() != n {
		t.Errorf("re-rendered identical partial block: %q", buf.String()[n:])
	}

	sr.Write([]byte("](https://example.com)\n\n"))
	if sr.termCtrl.Rows() != 0 || sr.partialState.repairedMarkdown != "" {
		t.Error("partial state should be cleared once the block is committed")
	}
	sr.Close()
}

func TestPartialRenderingFlowingModeIsAppendOnly(t *testing.T) {
	var buf bytes.Buffer
	sr, err := NewRendererWithOptions(&buf, []StreamRendererOption{WithPartialRendering()}, glamour.WithStandardStyle("dark"))
	if err != nil {
		t.Fatalf("NewRendererWithOptions failed: %v", err)
	}
	sr.Write([]byte("Hello **wor"))
	if buf.Len() != 0 {
		t.Errorf("flowing mode wrote partial output: %q", buf.String())
	}
	sr.Close()
}

func TestTerminalControllerCountLines(t *testing.T) {
	tests := []struct {
		content string
		width   int
		want    int
	}{
		{"", 80, 0},
		{"hello world", 80, 1},
		{"hello\n", 80, 1},
		{"\n\n\n", 80, 3},
		{"line1\nline2\nline3", 80, 3},
		{"this is a very long line that should wrap", 20, 3},
		{"exactly ten", 11, 1},
		{"\x1b[1mhello\x1b[0m", 5, 1},
		{"界界界", 4, 2},
		{"no width known", 0, 1},
	}

	for _, tt := range tests {
		tc := newTerminalController(io.Discard, tt.width)
		if got := tc.CountLines(tt.content); got != tt.want {
			t.Errorf("CountLines(%q) at width %d = %d, want %d", tt.content, tt.width, got, tt.want)
		}
	}
}

func TestTerminalControllerClearLines(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-1, ""},
		{3, "\x1b[3A\x1b[G\x1b[J"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := newTerminalController(&buf, 80).ClearLines(tt.n); err != nil {
			t.Fatalf("ClearLines(%d): %v", tt.n, err)
		}
		// The column and erase parameters may be spelled out or defaulted.
		got := strings.NewReplacer("[1G", "[G", "[0J", "[J").Replace(buf.String())
		if got != tt.want {
			t.Errorf("ClearLines(%d) wrote %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTerminalControllerRedraw(t *testing.T) {
	var buf bytes.Buffer
	tc := newTerminalController(&buf, 10)

	if err := tc.Redraw("first\nsecond"); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}
	if buf.String() != "first\nsecond" || tc.Rows() != 2 {
		t.Fatalf("first draw wrote %q with %d rows", buf.String(), tc.Rows())
	}

	buf.Reset()
	if err := tc.Redraw("a line that wraps"); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b[2A") || !strings.HasSuffix(out, "a line that wraps") {
		t.Errorf("second draw should erase two rows then draw, got %q", out)
	}
	if tc.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2 for a 17 column line at width 10", tc.Rows())
	}

	buf.Reset()
	if err := tc.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\x1b[2A") || tc.Rows() != 0 {
		t.Errorf("Clear wrote %q, rows %d", buf.String(), tc.Rows())
	}
}

func TestCurrentBlockContent(t *testing.T) {
	var buf bytes.Buffer
	sr := newTestRenderer(t, &buf)

	sr.Write([]byte("line1\nline2\npartial"))
	if got, want := sr.currentBlockContent(), "line1\nline2\npartial"; got != want {
		t.Errorf("currentBlockContent() = %q, want %q", got, want)
	}
}

func TestClearPartialStateErasesDraw(t *testing.T) {
	var buf bytes.Buffer
	sr := newTestRenderer(t, &buf, WithPartialRendering(), WithTerminalWidth(80))

	sr.partialState = partialState{repairedMarkdown: "test", rendered: "test"}
	sr.termCtrl.rows = 2

	if err := sr.clearPartialState(); err != nil {
		t.Fatalf("clearPartialState: %v", err)
	}
	if sr.partialState != (partialState{}) || sr.termCtrl.Rows() != 0 {
		t.Errorf("state left behind: %+v, rows %d", sr.partialState, sr.termCtrl.Rows())
	}
	if !strings.HasPrefix(buf.String(), "\x1b[2A") {
		t.Errorf("expected the two drawn rows to be erased, got %q", buf.String())
	}
}

func TestWithLogger(t *testing.T) {
	var logBuf, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sr, err := NewRendererWithOptions(&out, []StreamRendererOption{WithLogger(logger)}, glamour.WithStandardStyle("dark"))
	if err != nil {
		t.Fatalf("NewRendererWithOptions failed: %v", err)
	}
	sr.Write([]byte("# Title\n\n"))
	sr.Close()

	logged := logBuf.String()
	if !strings.Contains(logged, "block committed") || !strings.Contains(logged, "kind=heading") {
		t.Errorf("expected heading commit in log, got %q", logged)
	}
	if strings.Contains(logged, "kind=blank") {
		t.Errorf("blank lines should not be logged as commits: %q", logged)
	}
}

func TestRepairOnFlush(t *testing.T) {
	render := func(opts ...StreamRendererOption) string {
		var buf bytes.Buffer
		sr, err := NewRendererWithOptions(&buf, opts, glamour.WithStandardStyle("notty"))
		if err != nil {
			t.Fatalf("NewRendererWithOptions failed: %v", err)
		}
		sr.Write([]byte("Done.\n\nSee [the docs](https://exa"))
		if err := sr.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		return buf.String()
	}

	if got := render(); !strings.Contains(got, "https://exa") {
		t.Errorf("without repair the final render should show the input verbatim, got %q", got)
	}
	got := render(WithRepairOnFlush())
	if strings.Contains(got, "https://exa") || strings.Contains(got, "incomplete-link") {
		t.Errorf("repaired final render leaks the pending URL: %q", got)
	}
	if !strings.Contains(got, "the docs") {
		t.Errorf("repaired final render %q is missing the link label", got)
	}
}
