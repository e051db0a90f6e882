package repair

import "strings"

// emphasis closes one delimiter construct whose marker is width copies of
// ch. The same shape serves bold-italic, bold, both italics and
// strikethrough; they differ in which run lengths carry the delimiter and in
// which exclusions apply.
type emphasis struct {
	ch    byte
	width int

	// carries reports whether a run of length n contributes one delimiter.
	carries func(n int) bool

	wordAware bool // ignore runs flanked by word characters on both sides
	skipMath  bool // ignore runs inside $…$ and $$…$$
}

var (
	boldItalic = emphasis{
		ch: '*', width: 3, wordAware: true,
		carries: func(n int) bool { return n == 3 },
	}
	bold = emphasis{
		ch: '*', width: 2, wordAware: true,
		carries: func(n int) bool { return n == 2 || n == 3 },
	}
	doubleUnderscore = emphasis{
		ch: '_', width: 2, wordAware: true, skipMath: true,
		carries: func(n int) bool { return n == 2 || n == 3 },
	}
	italicAsterisk = emphasis{
		ch: '*', width: 1, wordAware: true,
		carries: func(n int) bool { return n == 1 || n == 3 },
	}
	italicUnderscore = emphasis{
		ch: '_', width: 1, wordAware: true, skipMath: true,
		carries: func(n int) bool { return n == 1 || n == 3 },
	}
	strikethrough = emphasis{
		ch: '~', width: 2,
		carries: func(n int) bool { return n == 2 },
	}
)

func (e emphasis) eligible(r run) bool {
	switch {
	case r.ch != e.ch, r.region != regionText, !e.carries(r.length()):
		return false
	case r.listMarker:
		return false
	case e.wordAware && r.wordInternal():
		return false
	case e.skipMath && r.inMath:
		return false
	}
	return true
}

// count returns how many eligible delimiters the scan holds and the index of
// the last one, which is the unmatched opener when the count is odd.
func (e emphasis) count(s *scan) (n, last int) {
	last = -1
	for k, r := range s.runs {
		if e.eligible(r) {
			n++
			last = k
		}
	}
	return n, last
}

// close appends the missing closing delimiter when the construct is open and
// has something worth emphasising after its opener. The closer goes before
// any trailing line breaks. If the text already ends in a shorter run of the
// same character after content ("**bold*"), only the missing characters are
// added; if appending would grow that run into one that no longer carries
// the delimiter ("~~a ~" would end in "~~~"), the text is left alone.
func (e emphasis) close(text string) string {
	s := analyze(text)
	if s.fenceOpen {
		return text
	}

	n, opener := e.count(s)
	if n%2 == 0 {
		return text
	}
	open := s.runs[opener]

	body, tail := splitTrailingNewlines(text)
	if open.end > len(body) {
		return text
	}
	content := body[open.end:]
	if isTrivial(content) {
		return text
	}
	if afterListBullet(text, open.start) && strings.Contains(content, "\n") {
		return text
	}

	closer := strings.Repeat(string(e.ch), e.width)
	if k := s.runEndingAt(len(body), e.ch); k > opener && s.runs[k].region == regionText {
		// The closer will merge with the run already at the end.
		r := s.runs[k]
		switch {
		case r.length() < e.width && !spaceBefore(body, r.start):
			closer = closer[r.length():]
		case !e.carries(r.length() + e.width):
			return text
		}
	}
	return body + closer + tail
}
