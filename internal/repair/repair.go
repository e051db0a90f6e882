// Package repair turns an in-progress markdown fragment, as produced token by
// token by a language model, into a fragment that is safe to parse and
// render: open constructs are closed, and constructs that cannot be shown
// half-formed are removed.
//
// Repair is pure and synchronous. Each call scans its own input from
// scratch, so it is safe to call from any number of goroutines and on every
// growing prefix of the same stream.
package repair

import "strings"

// handler is one construct's repair step. Each handler sees the output of
// the one before it and never revisits earlier decisions.
type handler func(string) string

// pipeline is the fixed closing order used when several constructs are open
// at once. The resulting nesting of closers is deterministic, not optimal:
// "**a _b" becomes "**a _b**_" rather than "**a _b_**". Changing the order
// changes output.
var pipeline = []handler{
	boldItalic.close,
	bold.close,
	doubleUnderscore.close,
	italicAsterisk.close,
	italicUnderscore.close,
	closeInlineCode,
	strikethrough.close,
	closeBlockMath,
}

// Repair returns text with every incomplete construct at its end either
// closed or removed. Complete constructs are returned byte for byte.
//
// An unterminated link short-circuits the pipeline: its label is kept
// verbatim and given the Sentinel href, and markers inside the label are
// not interpreted. Text inside an open fenced code block is returned
// unchanged.
func Repair(text string) string {
	if text == "" {
		return text
	}
	if strings.HasSuffix(text, sentinelSuffix) {
		return text
	}
	if analyze(text).fenceOpen {
		return text
	}

	out, pending := closeLink(text)
	if pending {
		return out
	}
	for _, h := range pipeline {
		out = h(out)
	}
	return out
}

// IsComplete reports whether text needs no repair.
func IsComplete(text string) bool {
	return Repair(text) == text
}
