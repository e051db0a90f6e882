package repair

import (
	"strings"
	"testing"
	"time"
)

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text", in: "plain text", want: "plain text"},

		// emphasis
		{name: "open bold", in: "**bold", want: "**bold**"},
		{name: "closed bold", in: "**bold**", want: "**bold**"},
		{name: "open italic asterisk", in: "*italic", want: "*italic*"},
		{name: "open italic underscore", in: "_italic", want: "_italic_"},
		{name: "open double underscore", in: "__bold", want: "__bold__"},
		{name: "open bold italic", in: "***both", want: "***both***"},
		{name: "open strikethrough", in: "~~strike", want: "~~strike~~"},
		{name: "bare bold opener", in: "**", want: "**"},
		{name: "opener followed by spaces", in: "Text **  ", want: "Text **  "},
		{name: "four asterisks", in: "****", want: "****"},
		{name: "three asterisks", in: "***", want: "***"},
		{name: "partial bold closer", in: "**a*", want: "**a**"},
		{name: "partial strike closer", in: "~~a~", want: "~~a~~"},
		{name: "stray tilde after space", in: "~~a ~", want: "~~a ~"},
		{name: "closer before trailing newline", in: "_italic\n", want: "_italic_\n"},
		{name: "closer before blank lines", in: "\n\n**bold\n\n", want: "\n\n**bold**\n\n"},

		// word boundaries
		{name: "asterisk between words", in: "hello*world", want: "hello*world"},
		{name: "multiplication", in: "2*3*4", want: "2*3*4"},
		{name: "snake case", in: "snake_case_name", want: "snake_case_name"},
		{name: "trailing underscore in word", in: "file_", want: "file_"},
		{name: "escaped asterisk", in: `\*not italic`, want: `\*not italic`},

		// lists
		{name: "list bullet alone", in: "* list item", want: "* list item"},
		{name: "italic after bullet", in: "* item with *emph", want: "* item with *emph*"},
		{name: "bold in list item", in: "- **bold", want: "- **bold**"},
		{name: "bold in list item spanning lines", in: "- **bold\ncontinued", want: "- **bold\ncontinued"},

		// inline code
		{name: "open inline code", in: "`code", want: "`code`"},
		{name: "lone backtick", in: "`", want: "`"},
		{name: "inline triple backticks missing one", in: "```code``", want: "```code```"},
		{name: "inline triple backticks closed", in: "```code```", want: "```code```"},
		{name: "bold around open code", in: "**bold with `code", want: "**bold with `code**`"},

		// fences
		{name: "open fence", in: "```\ncode **not bold", want: "```\ncode **not bold"},
		{name: "open fence with language", in: "```go\nfunc main() {\n\t_ = x", want: "```go\nfunc main() {\n\t_ = x"},
		{name: "closed fence", in: "```python\nprint('*')\n```\n", want: "```python\nprint('*')\n```\n"},
		{name: "bold after closed fence", in: "```\na*b\n```\n**tail", want: "```\na*b\n```\n**tail**"},

		// math
		{name: "open block math", in: "$$x^2", want: "$$x^2$$"},
		{name: "open block math word", in: "$$incomplete", want: "$$incomplete$$"},
		{name: "single dollar left alone", in: "$incomplete", want: "$incomplete"},
		{name: "multi-line block math", in: "$$\nx = 1", want: "$$\nx = 1\n$$"},
		{name: "multi-line block math ending in newline", in: "$$\nx = 1\n", want: "$$\nx = 1\n$$"},
		{name: "bare block math opener", in: "$$", want: "$$"},
		{name: "partial block math closer", in: "$$x$", want: "$$x$$"},
		{name: "underscore inside inline math", in: "Start _italic with $x_1$", want: "Start _italic with $x_1$_"},
		{name: "currency and bold", in: "price is $5 and **bold", want: "price is $5 and **bold**"},

		// links and images
		{name: "open link label", in: "Text with [link and **bold", want: "Text with [link and **bold](streamdown:incomplete-link)"},
		{name: "partial link url", in: "Check [docs](https://exa", want: "Check [docs](streamdown:incomplete-link)"},
		{name: "nested brackets", in: "[outer [nested] text](incomplete", want: "[outer [nested] text](streamdown:incomplete-link)"},
		{name: "complete link", in: "[done](https://x.com) and more", want: "[done](https://x.com) and more"},
		{name: "bare bracket", in: "[", want: "["},
		{name: "bracket inside code", in: "Use `[` carefully", want: "Use `[` carefully"},
		{name: "open image alt", in: "![alt text", want: ""},
		{name: "partial image url", in: "See ![img](http://exa", want: "See"},
		{name: "image inside open link", in: "[see ![img", want: "[see](streamdown:incomplete-link)"},
		{name: "already pending link", in: "Text with [link](streamdown:incomplete-link)", want: "Text with [link](streamdown:incomplete-link)"},

		// composition
		{name: "bold then italic", in: "**a _b", want: "**a _b**_"},
		{name: "italic then bold", in: "*a **b", want: "*a **b***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repair(tt.in)
			if got != tt.want {
				t.Errorf("Repair(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairIdempotent(t *testing.T) {
	inputs := []string{
		"**bold",
		"*a **b",
		"**a _b",
		"**a *",
		"__a _b",
		"~~a ~",
		"***a *b",
		"`a ``",
		"```code``",
		"$$x$",
		"$$\nx = 1",
		"Start _italic with $x_1$",
		"Text with [link and **bold",
		"See ![img](http://exa",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := Repair(in)
			twice := Repair(once)
			if once != twice {
				t.Errorf("Repair not idempotent for %q: %q then %q", in, once, twice)
			}
		})
	}
}

// streamedDoc is a short answer of the kind a model streams, exercising most
// constructs. Every prefix of it is fed through Repair.
const streamedDoc = "# Setup\n\n" +
	"Install the **cli** with `go install` and check the *version*.\n\n" +
	"- first ~~old~~ item\n" +
	"- second item with __emphasis__\n\n" +
	"See [the docs](https://example.com/docs) for details.\n\n" +
	"```go\nfunc main() { fmt.Println(\"*\") }\n```\n\n" +
	"The cost is $5 per seat.\n"

func TestRepairStreamingPrefixes(t *testing.T) {
	for i := 0; i <= len(streamedDoc); i++ {
		prefix := streamedDoc[:i]
		got := Repair(prefix)

		if !strings.HasSuffix(got, sentinelSuffix) && !strings.HasPrefix(got, strings.TrimRight(prefix, " \t\r\n[!")) {
			t.Errorf("prefix %d: Repair(%q) = %q does not extend its input", i, prefix, got)
		}
		if again := Repair(got); again != got {
			t.Errorf("prefix %d: Repair not idempotent: %q then %q", i, got, again)
		}
	}

	if got := Repair(streamedDoc); got != streamedDoc {
		t.Errorf("complete document changed:\n%q", got)
	}
}

func TestRepairFenceSanctity(t *testing.T) {
	body := "```js\nconst a = \"**\";\nlet b = [1, 2\nconst c = `x"
	for i := len("```js\n"); i <= len(body); i++ {
		prefix := body[:i]
		if got := Repair(prefix); got != prefix {
			t.Errorf("Repair(%q) = %q, want unchanged", prefix, got)
		}
	}

	open := []string{
		"Run `npm install\n```bash\nnpm i **x",
		"`a\n```\nb",
		"~~~python\nx = a**b\ny = _c",
		"````md\n```\n**x",
		"~~~\nx\n```\n**y",
		"Intro\n\n~~~\n`a *b [c",
	}
	for _, in := range open {
		if got := Repair(in); got != in {
			t.Errorf("Repair(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestRepairAfterClosedFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"~~~\na**b\n~~~\n*c", "~~~\na**b\n~~~\n*c*"},
		{"````\n```\n````\n**d", "````\n```\n````\n**d**"},
		{"```\nx\n```\n`y", "```\nx\n```\n`y`"},
	}
	for _, tt := range tests {
		if got := Repair(tt.in); got != tt.want {
			t.Errorf("Repair(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRepairDelimitersEven(t *testing.T) {
	constructs := []struct {
		name string
		e    emphasis
	}{
		{"bold italic", boldItalic},
		{"bold", bold},
		{"double underscore", doubleUnderscore},
		{"italic asterisk", italicAsterisk},
		{"italic underscore", italicUnderscore},
		{"strikethrough", strikethrough},
	}
	inputs := []string{
		"**bold",
		"*italic",
		"***both",
		"__under",
		"_under",
		"~~strike",
		"**a _b",
		"done **x** and ~~y",
		"snake_case and _open",
		"$x_1$ and _y",
		"`a **b` **c",
		"```\nx **y\n```\n**b",
		"~~~\n_z\n~~~\n__w",
		"* item **x",
		"- item *x",
		"# Title *a",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			out := Repair(in)
			s := analyze(out)
			for _, c := range constructs {
				if n, _ := c.e.count(s); n%2 != 0 {
					t.Errorf("%s: %d delimiters in %q", c.name, n, out)
				}
			}
			if s.openCode >= 0 || s.fenceOpen {
				t.Errorf("code left open in %q", out)
			}
		})
	}
}

func TestRepairLargeInputs(t *testing.T) {
	code := strings.Repeat("[a] `b` ", 20000) + "[tail"
	openers := strings.Repeat("[", 50000) + "x"
	runs := strings.Repeat("**a** ", 30000) + "*b"
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"brackets between code spans", code, code + sentinelSuffix},
		{"unclosed openers", openers, openers + sentinelSuffix},
		{"image chain", strings.Repeat("![a](", 20000), ""},
		{"emphasis runs", runs, runs + "*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			got := Repair(tt.in)
			if d := time.Since(start); d > 2*time.Second {
				t.Errorf("Repair took %v on %d bytes", d, len(tt.in))
			}
			if got != tt.want {
				t.Errorf("Repair() = %.40q... (%d bytes), want %d bytes", got, len(got), len(tt.want))
			}
		})
	}
}

func TestPendingLink(t *testing.T) {
	tests := []struct {
		in     string
		before string
		label  string
		ok     bool
	}{
		{"See [the docs](streamdown:incomplete-link)", "See ", "the docs", true},
		{"[outer [nested] text](streamdown:incomplete-link)", "", "outer [nested] text", true},
		{"[a [b](streamdown:incomplete-link)", "[a ", "b", true},
		{"[done](https://x.com)", "[done](https://x.com)", "", false},
	}
	for _, tt := range tests {
		before, label, ok := PendingLink(tt.in)
		if before != tt.before || label != tt.label || ok != tt.ok {
			t.Errorf("PendingLink(%q) = %q, %q, %v, want %q, %q, %v", tt.in, before, label, ok, tt.before, tt.label, tt.ok)
		}
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"**done**", true},
		{"**open", false},
		{"[label", false},
		{"```\nopen fence", true},
		{"$5", true},
	}
	for _, tt := range tests {
		if got := IsComplete(tt.in); got != tt.want {
			t.Errorf("IsComplete(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
