package repair

import "strings"

// closeBlockMath closes an open $$ block. Single dollars are left alone on
// purpose: they are far more often currency than inline math.
//
// When the open block already spans lines the closer goes on its own line.
func closeBlockMath(text string) string {
	s := analyze(text)
	if s.fenceOpen {
		return text
	}

	count, opener := 0, -1
	for k, r := range s.runs {
		if r.ch == '$' && r.region == regionText && r.length() >= 2 {
			count += r.length() / 2
			opener = k
		}
	}
	if count%2 == 0 {
		return text
	}

	rest := text[s.runs[opener].end:]
	if isBlank(rest) {
		return text
	}
	if k := s.runEndingAt(len(text), '$'); k > opener && s.runs[k].length() == 1 && !spaceBefore(text, s.runs[k].start) {
		// "$$x$": the closer is half there.
		return text + "$"
	}
	if strings.IndexByte(rest, '\n') >= 0 && !strings.HasSuffix(text, "\n") {
		return text + "\n$$"
	}
	return text + "$$"
}
