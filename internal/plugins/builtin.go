package plugins

import (
	"html"
	"strings"
)

// MathPlugin emits display math for client-side TeX rendering (KaTeX or
// MathJax auto-render pick up the delimiters).
type MathPlugin struct{}

func (MathPlugin) Name() string { return "math" }

func (MathPlugin) Supports(c Capability) bool { return c == Math }

func (MathPlugin) Apply(_, source string) (string, error) {
	tex := strings.TrimSpace(source)
	return `<div class="math math-display">\[` + html.EscapeString(tex) + `\]</div>` + "\n", nil
}

// MermaidPlugin emits a mermaid container for client-side diagram rendering.
type MermaidPlugin struct{}

func (MermaidPlugin) Name() string { return "mermaid" }

func (MermaidPlugin) Supports(c Capability) bool { return c == Diagram }

func (MermaidPlugin) Apply(_, source string) (string, error) {
	return `<pre class="mermaid">` + html.EscapeString(strings.TrimRight(source, "\n")) + "</pre>\n", nil
}

// Defaults returns the built-in plugins: chroma with styleName for code,
// then math and mermaid.
func Defaults(styleName string) []Plugin {
	return []Plugin{NewChroma(styleName), MathPlugin{}, MermaidPlugin{}}
}
