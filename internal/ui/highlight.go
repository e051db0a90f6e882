package ui

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

// Highlighter colors single lines of source for the repair diff.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewHighlighter creates a highlighter for a language name or file name,
// using the named chroma style. Returns nil if the language is not recognized.
func NewHighlighter(lang, styleName string) *Highlighter {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match(lang)
	}
	if lexer == nil {
		return nil
	}

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer), style: style}
}

// HighlightLine applies syntax highlighting to a line. A nil Highlighter
// returns the line unchanged.
func (h *Highlighter) HighlightLine(line string) string {
	return h.highlight(line, nil)
}

// HighlightLineWithBg highlights a line on a fixed true-color background
// given as {r, g, b}.
func (h *Highlighter) HighlightLineWithBg(line string, bg [3]int) string {
	return h.highlight(line, &bg)
}

func (h *Highlighter) highlight(line string, bg *[3]int) string {
	if h == nil {
		return line
	}
	tokens, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var sb strings.Builder
	f := lineFormatter{style: h.style, bg: bg}
	if err := f.Format(&sb, tokens); err != nil {
		return line
	}
	return sb.String()
}

// lineFormatter is a chroma.Formatter that writes one line as true-color
// SGR sequences, each token reset after itself.
type lineFormatter struct {
	style *chroma.Style
	bg    *[3]int
}

func (f lineFormatter) Format(w io.Writer, tokens chroma.Iterator) error {
	for tok := tokens(); tok != chroma.EOF; tok = tokens() {
		// The caller adds the newline; lexers often emit their own.
		text := strings.TrimRight(tok.Value, "\n")
		if text == "" {
			continue
		}
		params := f.params(f.style.Get(tok.Type))
		if params == "" {
			if _, err := io.WriteString(w, text); err != nil {
				return err
			}
			continue
		}
		if _, err := io.WriteString(w, "\x1b["+params+"m"+text+"\x1b[0m"); err != nil {
			return err
		}
	}
	return nil
}

func (f lineFormatter) params(e chroma.StyleEntry) string {
	var p []string
	if f.bg != nil {
		p = append(p, rgb(48, f.bg[0], f.bg[1], f.bg[2]))
	}
	if e.Colour.IsSet() {
		p = append(p, rgb(38, int(e.Colour.Red()), int(e.Colour.Green()), int(e.Colour.Blue())))
	}
	for _, attr := range []struct {
		on   chroma.Trilean
		code string
	}{{e.Bold, "1"}, {e.Italic, "3"}, {e.Underline, "4"}} {
		if attr.on == chroma.Yes {
			p = append(p, attr.code)
		}
	}
	return strings.Join(p, ";")
}

func rgb(selector, r, g, b int) string {
	return strconv.Itoa(selector) + ";2;" + strconv.Itoa(r) + ";" + strconv.Itoa(g) + ";" + strconv.Itoa(b)
}

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
