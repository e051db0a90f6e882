package plugins

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ChromaPlugin highlights source code with chroma, emitting inline styles
// so the output needs no stylesheet.
type ChromaPlugin struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// NewChroma returns a code plugin using the named chroma style, falling
// back to chroma's default style for unknown names.
func NewChroma(styleName string) *ChromaPlugin {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &ChromaPlugin{
		style:     style,
		formatter: html.New(html.WithClasses(false), html.PreventSurroundingPre(false)),
	}
}

func (p *ChromaPlugin) Name() string { return "chroma" }

func (p *ChromaPlugin) Supports(c Capability) bool { return c == Code }

// Apply highlights source. An unknown or empty lang is analysed from the
// source, then falls back to plain text.
func (p *ChromaPlugin) Apply(lang, source string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", lang, err)
	}
	var b strings.Builder
	if err := p.formatter.Format(&b, p.style, iterator); err != nil {
		return "", fmt.Errorf("format %s: %w", lang, err)
	}
	return b.String(), nil
}
