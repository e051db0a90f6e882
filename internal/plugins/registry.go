// Package plugins routes fenced code blocks to the renderer that understands
// them: source code to a syntax highlighter, TeX to a math renderer, mermaid
// to a diagram renderer.
package plugins

import "strings"

// Capability is a kind of block content a plugin can render.
type Capability string

const (
	Code    Capability = "code"
	Math    Capability = "math"
	Diagram Capability = "diagram"
)

// Plugin renders the body of a fenced block to HTML.
type Plugin interface {
	Name() string
	Supports(c Capability) bool
	// Apply returns HTML for source written in lang. lang may be empty.
	Apply(lang, source string) (string, error)
}

// Registry maps each capability to the plugin that serves it. Lookups are
// resolved when the registry is built, so For never scans.
type Registry struct {
	plugins []Plugin
	byCap   map[Capability]Plugin
}

var capabilities = []Capability{Code, Math, Diagram}

// NewRegistry builds a registry from plugins. When several plugins support
// the same capability the first one registered wins.
func NewRegistry(plugins ...Plugin) *Registry {
	r := &Registry{
		plugins: plugins,
		byCap:   make(map[Capability]Plugin, len(capabilities)),
	}
	for _, c := range capabilities {
		for _, p := range plugins {
			if p != nil && p.Supports(c) {
				r.byCap[c] = p
				break
			}
		}
	}
	return r
}

// For returns the plugin serving c.
func (r *Registry) For(c Capability) (Plugin, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byCap[c]
	return p, ok
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	if r == nil {
		return nil
	}
	return r.plugins
}

// CapabilityFor maps a fence info-string language to the capability needed
// to render it.
func CapabilityFor(lang string) Capability {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "mermaid":
		return Diagram
	case "math", "latex", "tex", "katex":
		return Math
	}
	return Code
}
