// Package render turns repaired markdown into output that is safe to show
// while a stream is still arriving: HTML whose pending links cannot be
// followed, or markdown whose pending link has been reduced to its label.
package render

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/samsaffron/streamdown/internal/blocks"
	"github.com/samsaffron/streamdown/internal/plugins"
)

// HTMLRenderer converts a markdown stream prefix to HTML. Fenced code blocks
// are handed to the plugin registry.
type HTMLRenderer struct {
	md        goldmark.Markdown
	stripTags bool
	logger    *slog.Logger
}

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithStripTags removes a raw HTML tag still being written at the end of
// the input before repairing it.
func WithStripTags(strip bool) HTMLOption {
	return func(r *HTMLRenderer) {
		r.stripTags = strip
	}
}

// WithHTMLLogger sets the logger used to report plugin failures.
func WithHTMLLogger(logger *slog.Logger) HTMLOption {
	return func(r *HTMLRenderer) {
		r.logger = logger
	}
}

// NewHTMLRenderer returns a renderer using registry for fenced code blocks.
// A nil registry renders every block as escaped <pre><code>.
func NewHTMLRenderer(registry *plugins.Registry, opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{
		stripTags: true,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	code := &fencedCodeRenderer{registry: registry, logger: r.logger}
	r.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(code, 200)),
		),
	)
	return r
}

// Render repairs the trailing block of markdown, converts the result to
// HTML and neutralises pending and unsafe links.
func (r *HTMLRenderer) Render(markdown string) (string, error) {
	fixed := blocks.RepairTrailing(markdown, r.stripTags)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(fixed), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return SanitizeLinks(buf.String()), nil
}

// fencedCodeRenderer renders fenced code blocks through the plugin registry.
type fencedCodeRenderer struct {
	registry *plugins.Registry
	logger   *slog.Logger
}

func (r *fencedCodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *fencedCodeRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	lang := string(n.Language(source))
	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	if p, ok := r.registry.For(plugins.CapabilityFor(lang)); ok {
		out, err := p.Apply(lang, code.String())
		if err == nil {
			_, _ = w.WriteString(out)
			return ast.WalkSkipChildren, nil
		}
		r.logger.Warn("code plugin failed, rendering plain block", "plugin", p.Name(), "lang", lang, "error", err)
	}

	_, _ = w.WriteString("<pre><code")
	if lang != "" {
		_, _ = w.WriteString(` class="language-` + html.EscapeString(lang) + `"`)
	}
	_, _ = w.WriteString(">")
	_, _ = w.WriteString(html.EscapeString(code.String()))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}
