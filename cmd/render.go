package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/samsaffron/streamdown/internal/blocks"
	"github.com/samsaffron/streamdown/internal/cache"
	"github.com/samsaffron/streamdown/internal/render"
	"github.com/samsaffron/streamdown/internal/signal"
	"github.com/samsaffron/streamdown/internal/ui"
	"github.com/samsaffron/streamdown/internal/ui/streaming"
)

var (
	renderSimulate bool
	renderChunk    int
	renderDelay    time.Duration
	renderWidth    int
	renderPlain    bool
	renderNoColor  bool
	renderPartial  bool
	renderStyle    string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render markdown in the terminal",
	Long: `Render a markdown document, or the prefix of one, in the terminal. The
trailing block is repaired first, and a link whose URL is still being
written is shown as plain label text.

With --simulate the document is replayed as a stream, word by word or in
--chunk sized pieces, through the streaming renderer. On a terminal the
block being written is shown repaired and redrawn as it grows.

Examples:
  streamdown render answer.md
  streamdown render --plain --width 60 answer.md
  streamdown render --simulate --delay 20ms answer.md
  streamdown render --simulate --chunk 7 --delay 0 answer.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&renderSimulate, "simulate", false, "Replay the document as a stream")
	renderCmd.Flags().IntVar(&renderChunk, "chunk", -1, "Bytes per simulated chunk, 0 for word paced (default from config)")
	renderCmd.Flags().DurationVar(&renderDelay, "delay", -1, "Pause between simulated chunks (default from config)")
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "Wrap width (default from config, then the terminal)")
	renderCmd.Flags().BoolVar(&renderPlain, "plain", false, "Print repaired markdown source, wrapped, without styling")
	renderCmd.Flags().BoolVar(&renderNoColor, "no-color", false, "Disable colors")
	renderCmd.Flags().BoolVar(&renderPartial, "partial", true, "Show the block being written while simulating on a terminal")
	renderCmd.Flags().StringVar(&renderStyle, "style", "", "theme, auto, dark, light, notty or another glamour style (default from config)")
	renderCmd.RegisterFlagCompletionFunc("style", styleFlagCompletion)
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := resolveWidth(renderWidth, cfg.Render.Width, terminalWidth(out))
	stripTags := cfg.Render.StripIncompleteTags

	if renderPlain {
		_, err := io.WriteString(out, renderPlainText(doc.Text, width, stripTags))
		return err
	}

	md, err := newMarkdownRenderer(cmd, out)
	if err != nil {
		return err
	}

	if !renderSimulate {
		rendered, err := md.RenderWithError(doc.Text, width)
		if err != nil {
			return fmt.Errorf("render %s: %w", doc.Name, err)
		}
		_, err = io.WriteString(out, ensureNewline(rendered))
		return err
	}

	streamOpts := []streaming.StreamRendererOption{
		streaming.WithStripIncompleteTags(stripTags),
		streaming.WithRepairOnFlush(),
		streaming.WithLogger(slog.Default()),
	}
	partial := cfg.Render.Partial
	if cmd.Flags().Changed("partial") {
		partial = renderPartial
	}
	if partial && isTerminal(out) && width > 0 {
		streamOpts = append(streamOpts, streaming.WithPartialRendering(), streaming.WithTerminalWidth(width))
	}

	sr, err := streaming.NewRendererWithOptions(out, streamOpts, md.Options(width)...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context())
	defer stop()

	chunk := cfg.Stream.ChunkSize
	if renderChunk >= 0 {
		chunk = renderChunk
	}
	delay := cfg.Stream.Delay
	if renderDelay >= 0 {
		delay = renderDelay
	}

	err = simulateStream(ctx, sr, doc.Text, chunk, delay, cfg.Stream.MaxNewlines)
	if closeErr := sr.Close(); err == nil {
		err = closeErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// simulateStream replays text into w, word paced when chunk is 0.
// maxNewlines > 0 caps runs of blank lines outside code fences.
func simulateStream(ctx context.Context, w io.Writer, text string, chunk int, delay time.Duration, maxNewlines int) error {
	var compactor *ui.StreamingNewlineCompactor
	if maxNewlines > 0 {
		compactor = ui.NewStreamingNewlineCompactor(maxNewlines)
	}

	emit := func(frame string) error {
		_, err := io.WriteString(w, compactor.CompactChunk(frame))
		return err
	}

	if chunk > 0 {
		return ui.ReplayChunks(ctx, text, chunk, delay, emit)
	}
	return ui.Replay(ctx, text, delay, emit)
}

func newMarkdownRenderer(cmd *cobra.Command, out io.Writer) (*ui.MarkdownRenderer, error) {
	md := ui.NewMarkdownRenderer(themeFromConfig(cfg), cache.New[int, *glamour.TermRenderer](cfg.Render.CacheSize))
	md.SetStripTags(cfg.Render.StripIncompleteTags)

	style := cfg.Render.Style
	if renderStyle != "" {
		style = renderStyle
	}
	if err := md.SetStyle(style); err != nil {
		return nil, err
	}
	md.SetNoColor(renderNoColor || !isTerminal(out))
	return md, nil
}

// renderPlainText repairs the trailing block, neutralizes a pending link and
// wraps the source to width.
func renderPlainText(text string, width int, stripTags bool) string {
	fixed := render.NeutralizeMarkdown(blocks.RepairTrailing(text, stripTags))
	if width > 0 {
		fixed = wordwrap.String(fixed, width)
	}
	return ensureNewline(fixed)
}

// resolveWidth picks the first positive width: flag, config, terminal.
func resolveWidth(widths ...int) int {
	for _, w := range widths {
		if w > 0 {
			return w
		}
	}
	return 0
}
