package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/samsaffron/streamdown/internal/config"
	"github.com/samsaffron/streamdown/internal/plugins"
	"github.com/samsaffron/streamdown/internal/render"
)

var (
	htmlStripTags bool
	htmlCodeStyle string
)

var htmlCmd = &cobra.Command{
	Use:   "html [file]",
	Short: "Convert a markdown stream prefix to HTML",
	Long: `Repair the trailing block of a markdown document and convert it to HTML.
Fenced code is highlighted, math and mermaid blocks are handed to their
plugins, and a link whose URL is still being written becomes a span with
class "incomplete-link". Links with unsafe schemes are removed.

Examples:
  streamdown html answer.md > answer.html
  streamdown html --code-style dracula answer.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHTML,
}

func init() {
	rootCmd.AddCommand(htmlCmd)
	htmlCmd.Flags().BoolVar(&htmlStripTags, "strip-tags", true, "Remove a raw HTML tag still being written at the end")
	htmlCmd.Flags().StringVar(&htmlCodeStyle, "code-style", "", "Chroma style for code blocks (default from config)")
	htmlCmd.RegisterFlagCompletionFunc("code-style", codeStyleFlagCompletion)
}

func runHTML(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	htmlCfg := cfg.HTML
	if htmlCodeStyle != "" {
		htmlCfg.CodeStyle = htmlCodeStyle
	}

	r := render.NewHTMLRenderer(newRegistry(htmlCfg),
		render.WithStripTags(htmlStripTags),
		render.WithHTMLLogger(slog.Default()),
	)
	out, err := r.Render(doc.Text)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), ensureNewline(out))
	return err
}

// newRegistry builds the code block plugins enabled in c.
func newRegistry(c config.HTMLConfig) *plugins.Registry {
	list := []plugins.Plugin{plugins.NewChroma(c.CodeStyle)}
	if c.Math {
		list = append(list, plugins.MathPlugin{})
	}
	if c.Diagrams {
		list = append(list, plugins.MermaidPlugin{})
	}
	return plugins.NewRegistry(list...)
}
