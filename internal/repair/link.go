package repair

import (
	"strings"
	"unicode"
)

// Sentinel is the href given to a link whose target has not arrived yet.
// Renderers must style such links as pending and never navigate to them.
const Sentinel = "streamdown:incomplete-link"

const sentinelSuffix = "](" + Sentinel + ")"

// IsIncompleteLinkHref reports whether href is the pending-link sentinel.
func IsIncompleteLinkHref(href string) bool {
	return strings.TrimSpace(href) == Sentinel
}

// closeLink handles a fragment that stops inside a link or image. Links keep
// their label and get the sentinel href; images are dropped along with any
// whitespace left in front of them. Dropping an image can expose an open
// link before it, so the text is cut back until no image is left open. The
// second result is true when the sentinel was produced, in which case
// nothing else may touch the fragment.
//
// Brackets and parentheses are paired once over the whole text. Cutting
// never lands inside code, so the pairs and code spans of every prefix
// examined agree with the whole-text ones.
func closeLink(text string) (string, bool) {
	s := analyze(text)
	if s.fenceOpen {
		return text, false
	}
	b := pairBrackets(text)
	parens := pairParens(text)
	middles := indexAll(text, "](")

	end := len(text)
	m, k := len(middles)-1, len(b.opens)-1
	for {
		// "[label](partial-url" or "![alt](partial-url"
		for m >= 0 && middles[m]+2 > end {
			m--
		}
		if m >= 0 {
			at := middles[m]
			if q, ok := parens[at+1]; !s.inCode(at) && !isEscaped(text, at) && (!ok || q >= end) {
				if open, ok := b.opener[at]; ok && !s.inCode(open) {
					if isImageOpener(text, open) {
						end = len(trimTrailingSpace(text[:open-1]))
						continue
					}
					return text[:open] + "[" + text[open+1:at] + sentinelSuffix, true
				}
			}
		}

		// "[label" with no closing bracket, searched from the end so that a
		// complete inner pair does not hide an open outer one.
		for k >= 0 && b.opens[k] >= end {
			k--
		}
		for ; k >= 0; k-- {
			if c := b.closer[k]; (c >= 0 && c < end) || s.inCode(b.opens[k]) {
				continue
			}
			break
		}
		if k < 0 {
			return text[:end], false
		}
		i := b.opens[k]
		if isImageOpener(text, i) {
			end = len(trimTrailingSpace(text[:i-1]))
			continue
		}
		if i == end-1 {
			// A bare "[" has no label to show yet.
			return text[:end], false
		}
		return text[:end] + sentinelSuffix, true
	}
}

func indexAll(text, sub string) []int {
	var at []int
	for i := 0; ; {
		j := strings.Index(text[i:], sub)
		if j < 0 {
			return at
		}
		at = append(at, i+j)
		i += j + 1
	}
}

// PendingLink splits text ending in a pending link into the text before the
// link and the link's label. ok is false when text does not end in one.
func PendingLink(text string) (before, label string, ok bool) {
	if !strings.HasSuffix(text, sentinelSuffix) {
		return text, "", false
	}
	closeAt := len(text) - len(sentinelSuffix)
	open := matchOpen(text, closeAt)
	if open < 0 {
		return text, "", false
	}
	return text[:open], text[open+1 : closeAt], true
}

func isImageOpener(text string, open int) bool {
	return open > 0 && text[open-1] == '!' && !isEscaped(text, open-1)
}

func trimTrailingSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
