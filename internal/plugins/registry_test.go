package plugins

import (
	"strings"
	"testing"
)

type fakePlugin struct {
	name string
	caps []Capability
}

func (f fakePlugin) Name() string { return f.name }

func (f fakePlugin) Supports(c Capability) bool {
	for _, have := range f.caps {
		if have == c {
			return true
		}
	}
	return false
}

func (f fakePlugin) Apply(lang, source string) (string, error) {
	return f.name + ":" + source, nil
}

func TestRegistryFirstSupporterWins(t *testing.T) {
	first := fakePlugin{name: "first", caps: []Capability{Code}}
	second := fakePlugin{name: "second", caps: []Capability{Code, Math}}
	r := NewRegistry(first, second)

	tests := []struct {
		c    Capability
		want string
		ok   bool
	}{
		{Code, "first", true},
		{Math, "second", true},
		{Diagram, "", false},
	}
	for _, tt := range tests {
		p, ok := r.For(tt.c)
		if ok != tt.ok {
			t.Errorf("For(%s) ok = %v, want %v", tt.c, ok, tt.ok)
			continue
		}
		if ok && p.Name() != tt.want {
			t.Errorf("For(%s) = %s, want %s", tt.c, p.Name(), tt.want)
		}
	}
	if n := len(r.Plugins()); n != 2 {
		t.Errorf("Plugins() has %d entries, want 2", n)
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	if _, ok := r.For(Code); ok {
		t.Error("nil registry returned a plugin")
	}
}

func TestCapabilityFor(t *testing.T) {
	tests := []struct {
		lang string
		want Capability
	}{
		{"mermaid", Diagram},
		{"Mermaid", Diagram},
		{"math", Math},
		{"latex", Math},
		{"tex", Math},
		{"katex", Math},
		{"go", Code},
		{"", Code},
	}
	for _, tt := range tests {
		if got := CapabilityFor(tt.lang); got != tt.want {
			t.Errorf("CapabilityFor(%q) = %s, want %s", tt.lang, got, tt.want)
		}
	}
}

func TestChromaPlugin(t *testing.T) {
	p := NewChroma("no-such-style")
	if !p.Supports(Code) || p.Supports(Math) {
		t.Fatal("chroma should support code only")
	}
	out, err := p.Apply("go", "package main\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<pre") || !strings.Contains(out, "package") {
		t.Errorf("Apply() = %q, want highlighted <pre> block", out)
	}
	if strings.Contains(out, "<script") {
		t.Error("output contains a script tag")
	}

	out, err = p.Apply("", "<script>alert(1)</script>")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("source not escaped: %q", out)
	}
}

func TestBuiltins(t *testing.T) {
	out, _ := MathPlugin{}.Apply("math", "  a < b  \n")
	if out != `<div class="math math-display">\[a &lt; b\]</div>`+"\n" {
		t.Errorf("MathPlugin.Apply() = %q", out)
	}
	out, _ = MermaidPlugin{}.Apply("mermaid", "graph TD\nA-->B\n")
	if out != "<pre class=\"mermaid\">graph TD\nA--&gt;B</pre>\n" {
		t.Errorf("MermaidPlugin.Apply() = %q", out)
	}

	r := NewRegistry(Defaults("monokai")...)
	for _, c := range capabilities {
		if _, ok := r.For(c); !ok {
			t.Errorf("defaults do not cover %s", c)
		}
	}
}
