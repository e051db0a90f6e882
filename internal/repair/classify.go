package repair

import (
	"unicode"
	"unicode/utf8"
)

// isWordRune reports whether r counts as a word character for the purpose
// of delimiter flanking. ASCII is checked directly; everything else goes
// through the unicode tables.
func isWordRune(r rune) bool {
	if r < utf8.RuneSelf {
		return r == '_' ||
			('0' <= r && r <= '9') ||
			('a' <= r && r <= 'z') ||
			('A' <= r && r <= 'Z')
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// isSpaceRune reports whether r is whitespace.
func isSpaceRune(r rune) bool {
	if r < utf8.RuneSelf {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return true
		}
		return false
	}
	return unicode.IsSpace(r)
}

// isASCIIPunct reports whether c can be backslash-escaped.
func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') ||
		(c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') ||
		(c >= '{' && c <= '~')
}

// wordBefore reports whether the rune ending at byte offset i is a word
// character. Invalid UTF-8 decodes to RuneError, which is not.
func wordBefore(text string, i int) bool {
	if i <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}

// wordAfter reports whether the rune starting at byte offset i is a word
// character.
func wordAfter(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isWordRune(r)
}

// spaceBefore reports whether the rune ending at byte offset i is
// whitespace. The start of text counts as whitespace.
func spaceBefore(text string, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isSpaceRune(r)
}

// isTrivial reports whether s holds nothing but whitespace and emphasis or
// code markers, i.e. nothing worth closing a construct around.
func isTrivial(s string) bool {
	for _, r := range s {
		switch r {
		case '_', '~', '*', '`':
			continue
		}
		if !isSpaceRune(r) {
			return false
		}
	}
	return true
}

// isBlank reports whether s is empty or whitespace only.
func isBlank(s string) bool {
	for _, r := range s {
		if !isSpaceRune(r) {
			return false
		}
	}
	return true
}
