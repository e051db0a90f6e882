package repair

import (
	"sort"
	"strings"
)

// region classifies where a delimiter run sits.
type region uint8

const (
	regionText  region = iota // ordinary inline text
	regionFence               // inside a fenced code block
	regionCode                // inside an inline code span
)

// run is a maximal sequence of one delimiter byte. Escaped delimiters never
// start or extend a run.
type run struct {
	ch         byte
	start, end int // byte offsets, end exclusive

	leftWord   bool // word character immediately before the run
	rightWord  bool // word character immediately after the run
	listMarker bool // "*" bullet: indentation-only prefix, whitespace after

	region region
	inMath bool // starts inside an open $…$ or $$…$$ span
	fence  bool // backtick run acting as a fence marker
}

func (r run) length() int { return r.end - r.start }

// wordInternal reports whether the run is sandwiched between word characters,
// as in snake_case or 2*3.
func (r run) wordInternal() bool { return r.leftWord && r.rightWord }

type span struct{ start, end int }

// scan is the per-call analysis of a fragment: every delimiter run plus the
// code-fence, inline-code and math state derived from them in one forward
// pass. It is recomputed from scratch by each handler.
type scan struct {
	text      string
	runs      []run
	multiline bool

	fences    int  // fence markers seen
	fenceOpen bool // odd fence parity in multi-line text

	code     []span // fenced blocks and inline code spans; open ones run to len(text)
	openCode int    // index in runs of the unmatched inline code opener, -1 if none
}

func isDelimiter(c byte) bool {
	switch c {
	case '*', '_', '~', '`', '$':
		return true
	}
	return false
}

func analyze(text string) *scan {
	s := &scan{
		text:      text,
		multiline: strings.IndexByte(text, '\n') >= 0,
		openCode:  -1,
	}

	n := len(text)
	for i := 0; i < n; {
		c := text[i]
		if c == '\\' && i+1 < n && isASCIIPunct(text[i+1]) {
			i += 2
			continue
		}
		if !isDelimiter(c) {
			i++
			continue
		}
		j := i + 1
		for j < n && text[j] == c {
			j++
		}
		s.runs = append(s.runs, run{
			ch:         c,
			start:      i,
			end:        j,
			leftWord:   wordBefore(text, i),
			rightWord:  wordAfter(text, j),
			listMarker: c == '*' && j-i == 1 && isBullet(text, i, j),
		})
		i = j
	}

	s.resolve()
	return s
}

// isBullet reports whether the byte range [i,j) is a list bullet: only
// indentation before it on its line and whitespace after it.
func isBullet(text string, i, j int) bool {
	if j >= len(text) || (text[j] != ' ' && text[j] != '\t') {
		return false
	}
	for k := i - 1; k >= 0 && text[k] != '\n'; k-- {
		if text[k] != ' ' && text[k] != '\t' {
			return false
		}
	}
	return true
}

// resolve assigns regions and math state to runs. In multi-line text a
// backtick run of three or more opens a fence, as does a run of three or
// more tildes at the start of a line; the fence closes on a run of the same
// character at least as long (tilde closers must stand alone on their
// line). A fence line also ends an inline code span left open before it,
// since code spans never cross blocks. Other backtick runs open inline code
// that closes on the next run of the same length.
func (s *scan) resolve() {
	fenceStart := -1
	var fence run
	codeOpen := -1
	mathBlock, mathInline := false, false

	for k := range s.runs {
		r := &s.runs[k]

		if fenceStart >= 0 {
			r.region = regionFence
			if s.closesFence(fence, *r) {
				r.fence = true
				s.fences++
				s.code = append(s.code, span{fenceStart, r.end})
				fenceStart = -1
			}
			continue
		}

		if codeOpen >= 0 {
			if s.fenceLine(*r) {
				for t := codeOpen + 1; t < k; t++ {
					s.runs[t].region = regionText
					s.runs[t].inMath = mathBlock || mathInline
				}
				codeOpen = -1
			} else {
				r.region = regionCode
				if r.ch == '`' && r.length() == s.runs[codeOpen].length() {
					s.code = append(s.code, span{s.runs[codeOpen].start, r.end})
					codeOpen = -1
				}
				continue
			}
		}

		r.inMath = mathBlock || mathInline
		if s.opensFence(*r) {
			r.region = regionFence
			r.fence = true
			s.fences++
			fence = *r
			fenceStart = r.start
			continue
		}
		switch r.ch {
		case '`':
			codeOpen = k
		case '$':
			for t := 0; t < r.length()/2; t++ {
				mathBlock = !mathBlock
			}
			if r.length()%2 == 1 && !mathBlock {
				mathInline = !mathInline
			}
		}
	}

	if fenceStart >= 0 {
		s.fenceOpen = true
		s.code = append(s.code, span{fenceStart, len(s.text)})
	}
	if codeOpen >= 0 {
		s.openCode = codeOpen
		s.code = append(s.code, span{s.runs[codeOpen].start, len(s.text)})
	}
}

// fenceLine reports whether r is a fence marker opening its line.
func (s *scan) fenceLine(r run) bool {
	return s.multiline && r.length() >= 3 && (r.ch == '`' || r.ch == '~') && lineStart(s.text, r.start)
}

func (s *scan) opensFence(r run) bool {
	if r.ch == '`' {
		return s.multiline && r.length() >= 3
	}
	return s.fenceLine(r)
}

func (s *scan) closesFence(open, r run) bool {
	if r.ch != open.ch || r.length() < open.length() {
		return false
	}
	if r.ch == '~' {
		return lineStart(s.text, r.start) && lineRestBlank(s.text, r.end)
	}
	return true
}

// lineStart reports whether only indentation precedes i on its line.
func lineStart(text string, i int) bool {
	for k := i - 1; k >= 0 && text[k] != '\n'; k-- {
		if text[k] != ' ' && text[k] != '\t' {
			return false
		}
	}
	return true
}

// lineRestBlank reports whether only whitespace follows j on its line.
func lineRestBlank(text string, j int) bool {
	for ; j < len(text) && text[j] != '\n'; j++ {
		if text[j] != ' ' && text[j] != '\t' && text[j] != '\r' {
			return false
		}
	}
	return true
}

// inCode reports whether byte offset pos lies inside a fenced block or an
// inline code span, including ones still open at the end of the text. The
// spans are disjoint and ordered by start.
func (s *scan) inCode(pos int) bool {
	i := sort.Search(len(s.code), func(i int) bool { return s.code[i].start > pos }) - 1
	return i >= 0 && pos < s.code[i].end
}

// runEndingAt returns the index of the run of ch that ends exactly at pos,
// or -1.
func (s *scan) runEndingAt(pos int, ch byte) int {
	for k := len(s.runs) - 1; k >= 0; k-- {
		r := s.runs[k]
		if r.end < pos {
			break
		}
		if r.end == pos && r.ch == ch {
			return k
		}
	}
	return -1
}

// isEscaped reports whether the byte at i is preceded by an odd number of
// backslashes.
func isEscaped(text string, i int) bool {
	n := 0
	for k := i - 1; k >= 0 && text[k] == '\\'; k-- {
		n++
	}
	return n%2 == 1
}

// brackets pairs square brackets in one forward pass. A backslash hides the
// byte after it. Brackets inside code are paired too; callers decide whether
// code positions count.
type brackets struct {
	opens  []int       // every '[' in order
	closer []int       // closer[k] is the ']' paired with opens[k], or -1
	opener map[int]int // ']' position to its '['
}

func pairBrackets(text string) brackets {
	b := brackets{opener: make(map[int]int)}
	var stack []int // indexes into opens
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '[':
			stack = append(stack, len(b.opens))
			b.opens = append(b.opens, i)
			b.closer = append(b.closer, -1)
		case ']':
			if n := len(stack); n > 0 {
				k := stack[n-1]
				stack = stack[:n-1]
				b.closer[k] = i
				b.opener[i] = b.opens[k]
			}
		}
	}
	return b
}

// matchOpen returns the index of the '[' that the ']' at closeAt closes, or
// -1.
func matchOpen(text string, closeAt int) int {
	depth := 0
	for i := closeAt; i >= 0; i-- {
		if isEscaped(text, i) {
			continue
		}
		switch text[i] {
		case ']':
			depth++
		case '[':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// pairParens maps each '(' to the ')' that closes it. Unclosed ones are
// absent. A backslash hides the byte after it.
func pairParens(text string) map[int]int {
	closes := make(map[int]int)
	var stack []int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '(':
			stack = append(stack, i)
		case ')':
			if n := len(stack); n > 0 {
				closes[stack[n-1]] = i
				stack = stack[:n-1]
			}
		}
	}
	return closes
}

// splitTrailingNewlines separates text into its body and the run of line
// breaks that ends it.
func splitTrailingNewlines(text string) (body, tail string) {
	body = strings.TrimRight(text, "\r\n")
	return body, text[len(body):]
}

// afterListBullet reports whether the only thing before pos on its line is a
// list bullet ("-", "*" or "+" followed by whitespace).
func afterListBullet(text string, pos int) bool {
	lineStart := strings.LastIndexByte(text[:pos], '\n') + 1
	line := strings.TrimLeft(text[lineStart:pos], " \t")
	if len(line) < 2 {
		return false
	}
	switch line[0] {
	case '-', '*', '+':
	default:
		return false
	}
	if line[1] != ' ' && line[1] != '\t' {
		return false
	}
	return strings.TrimLeft(line[1:], " \t") == ""
}
