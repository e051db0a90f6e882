package repair

import "strings"

// closeInlineCode completes an inline code span left open at the end of the
// fragment. Fenced blocks are never touched: an open fence makes the whole
// fragment raw, and a closed one is already complete.
//
// A single-backtick span with real content gets one closing backtick. An
// inline triple-backtick span (no newline in the fragment) that already ends
// in "``" gets the one backtick it is missing.
func closeInlineCode(text string) string {
	s := analyze(text)
	if s.fenceOpen || s.openCode < 0 {
		return text
	}
	open := s.runs[s.openCode]
	body, tail := splitTrailingNewlines(text)
	if open.end > len(body) {
		return text
	}

	if k := s.runEndingAt(len(body), '`'); k > s.openCode {
		missing := open.length() - s.runs[k].length()
		if missing <= 0 {
			return text
		}
		return body + strings.Repeat("`", missing) + tail
	}

	if open.length() != 1 || isBlank(body[open.end:]) {
		return text
	}
	return body + "`" + tail
}
