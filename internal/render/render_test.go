package render

import (
	"strings"
	"testing"

	"github.com/samsaffron/streamdown/internal/plugins"
)

func TestSanitizeLinks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "pending link becomes span",
			in:   `<p>See <a href="streamdown:incomplete-link">the docs</a></p>`,
			want: `<p>See <span class="streamdown-incomplete-link" aria-busy="true">the docs</span></p>`,
		},
		{
			name: "complete link untouched",
			in:   `<p><a href="https://x.com" title="X">x</a> &amp; more</p>`,
			want: `<p><a href="https://x.com" title="X">x</a> &amp; more</p>`,
		},
		{
			name: "javascript href dropped",
			in:   `<a href="javascript:alert(1)">x</a>`,
			want: `<a>x</a>`,
		},
		{
			name: "obfuscated scheme dropped",
			in:   `<a href=" JaVa&#x09;Script:alert(1)">x</a>`,
			want: `<a>x</a>`,
		},
		{
			name: "data image dropped",
			in:   `<img src="data:image/png;base64,AAA" alt="i">`,
			want: `<img alt="i">`,
		},
		{
			name: "nested markup inside pending link",
			in:   `<a href="streamdown:incomplete-link"><strong>b</strong></a> <a href="/ok">ok</a>`,
			want: `<span class="streamdown-incomplete-link" aria-busy="true"><strong>b</strong></span> <a href="/ok">ok</a>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeLinks(tt.in); got != tt.want {
				t.Errorf("SanitizeLinks(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNeutralizeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"See [the docs](streamdown:incomplete-link)", "See the docs"},
		{"See [the **docs](streamdown:incomplete-link)", "See the **docs**"},
		{"[a [b] c](streamdown:incomplete-link)", "a [b] c"},
		{"[done](https://x.com)", "[done](https://x.com)"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := NeutralizeMarkdown(tt.in); got != tt.want {
			t.Errorf("NeutralizeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHTMLRenderer(t *testing.T) {
	r := NewHTMLRenderer(plugins.NewRegistry(plugins.MathPlugin{}, plugins.MermaidPlugin{}))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "open bold is closed",
			in:   "**bold",
			want: "<p><strong>bold</strong></p>\n",
		},
		{
			name: "pending link is inert",
			in:   "See [the docs",
			want: `<p>See <span class="streamdown-incomplete-link" aria-busy="true">the docs</span></p>` + "\n",
		},
		{
			name: "mermaid goes to diagram plugin",
			in:   "```mermaid\ngraph TD\n```\n",
			want: "<pre class=\"mermaid\">graph TD</pre>\n",
		},
		{
			name: "code without plugin is escaped",
			in:   "```go\nif a < b {}\n```\n",
			want: "<pre><code class=\"language-go\">if a &lt; b {}\n</code></pre>\n",
		},
		{
			name: "partial tag stripped",
			in:   "Hello <div cla",
			want: "<p>Hello</p>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHTMLRendererChroma(t *testing.T) {
	r := NewHTMLRenderer(plugins.NewRegistry(plugins.Defaults("monokai")...))
	got, err := r.Render("```go\nfunc main() {}\n```\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<pre") || !strings.Contains(got, "style=") {
		t.Errorf("expected inline-styled chroma output, got %q", got)
	}
}

func TestHTMLRendererNilRegistry(t *testing.T) {
	r := NewHTMLRenderer(nil, WithStripTags(false))
	got, err := r.Render("```\nx\n```\n")
	if err != nil {
		t.Fatal(err)
	}
	if got != "<pre><code>x\n</code></pre>\n" {
		t.Errorf("Render() = %q", got)
	}
}
