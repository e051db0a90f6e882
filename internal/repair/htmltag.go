package repair

import "strings"

// StripIncompleteTag removes a raw HTML tag that is still being written at
// the end of the fragment ("text <div cla"), together with the whitespace
// before it. Tags inside code are left alone, as is a "<" glued to a word
// ("a<b"), which is far more likely a comparison than markup.
//
// It runs at block boundaries rather than inside Repair.
func StripIncompleteTag(text string) string {
	at := strings.LastIndexByte(text, '<')
	if at < 0 || at+1 >= len(text) {
		return text
	}
	if strings.IndexByte(text[at:], '>') >= 0 {
		return text
	}
	if at > 0 {
		if prev := text[at-1]; prev != '>' && !isSpaceRune(rune(prev)) {
			return text
		}
	}

	name := strings.TrimPrefix(text[at+1:], "/")
	if name != "" && !isTagStart(name[0]) {
		return text
	}

	s := analyze(text)
	if s.fenceOpen || s.inCode(at) || isEscaped(text, at) {
		return text
	}
	return trimTrailingSpace(text[:at])
}

func isTagStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
