package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"

	"github.com/samsaffron/streamdown/internal/blocks"
	"github.com/samsaffron/streamdown/internal/cache"
	"github.com/samsaffron/streamdown/internal/render"
)

// MarkdownRenderer renders markdown for the terminal. Glamour renderers are
// expensive to build, so they are kept in a width-keyed cache owned by the
// MarkdownRenderer rather than by the package.
type MarkdownRenderer struct {
	theme     *Theme
	renderers *cache.LRU[int, *glamour.TermRenderer]
	stripTags bool
	style     string // glamour standard style, empty to style from theme
	noColor   bool
}

// NewMarkdownRenderer returns a renderer using theme. renderers may be nil,
// in which case a glamour renderer is built for every call.
func NewMarkdownRenderer(theme *Theme, renderers *cache.LRU[int, *glamour.TermRenderer]) *MarkdownRenderer {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &MarkdownRenderer{theme: theme, renderers: renderers, stripTags: true}
}

// SetStripTags controls whether a raw HTML tag still being typed at the end
// of the input is hidden.
func (m *MarkdownRenderer) SetStripTags(strip bool) {
	m.stripTags = strip
}

// SetStyle selects a glamour standard style: auto, dark, light, notty and
// the other names glamour ships. "theme" or "" styles from the theme.
func (m *MarkdownRenderer) SetStyle(name string) error {
	if name == "theme" {
		name = ""
	}
	if name != "" && name != styles.AutoStyle {
		if _, ok := styles.DefaultStyles[name]; !ok {
			return fmt.Errorf("unknown style %q", name)
		}
	}
	m.style = name
	m.renderers.Purge()
	return nil
}

// SetNoColor renders with the ASCII color profile.
func (m *MarkdownRenderer) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.renderers.Purge()
}

// Options returns the glamour options used for width, for callers that
// build their own glamour renderer such as the streaming renderer.
func (m *MarkdownRenderer) Options(width int) []glamour.TermRendererOption {
	var opts []glamour.TermRendererOption
	switch m.style {
	case "":
		style := GlamourStyleFromTheme(m.theme)
		margin := uint(0)
		style.Document.Margin = &margin
		style.Document.BlockPrefix = ""
		style.Document.BlockSuffix = ""
		style.CodeBlock.Margin = &margin
		opts = append(opts, glamour.WithStyles(style))
	case styles.AutoStyle:
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(m.style))
	}
	if m.noColor {
		opts = append(opts, glamour.WithColorProfile(termenv.Ascii))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	return opts
}

// renderer returns a cached renderer for the given width, creating one if needed.
func (m *MarkdownRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	return m.renderers.GetOrAdd(width, func() (*glamour.TermRenderer, error) {
		return glamour.NewTermRenderer(m.Options(width)...)
	})
}

// Render renders markdown content that may still be streaming: the
// trailing block is repaired and a pending link is shown as its label.
// On error, returns the original content unchanged.
func (m *MarkdownRenderer) Render(content string, width int) string {
	if content == "" {
		return ""
	}

	rendered, err := m.RenderWithError(content, width)
	if err != nil {
		return content
	}
	return rendered
}

// RenderWithError is Render for callers that need the error.
func (m *MarkdownRenderer) RenderWithError(content string, width int) (string, error) {
	tr, err := m.renderer(width)
	if err != nil {
		return "", err
	}

	fixed := render.NeutralizeMarkdown(blocks.RepairTrailing(content, m.stripTags))
	rendered, err := tr.Render(fixed)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(rendered), nil
}
