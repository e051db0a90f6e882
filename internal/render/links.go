package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/samsaffron/streamdown/internal/repair"
)

// PendingLinkClass is the class given to the element that replaces a link
// whose target has not streamed in yet.
const PendingLinkClass = "streamdown-incomplete-link"

const pendingLinkOpen = `<span class="` + PendingLinkClass + `" aria-busy="true">`

// SanitizeLinks rewrites rendered HTML so that no element navigates
// anywhere unsafe. Anchors pointing at the pending-link sentinel become
// inert spans, and javascript:, vbscript: and data: URLs are removed from
// href and src attributes. Everything else is passed through byte for byte.
func SanitizeLinks(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))

	var sb strings.Builder
	// One entry per open <a>; true when it was rewritten to a span.
	var anchors []bool

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data == "a" {
				pending := repair.IsIncompleteLinkHref(attrVal(tok.Attr, "href"))
				if tt == html.StartTagToken {
					anchors = append(anchors, pending)
				}
				if pending {
					sb.WriteString(pendingLinkOpen)
					if tt == html.SelfClosingTagToken {
						sb.WriteString("</span>")
					}
					continue
				}
			}
			if attrs, changed := dropUnsafeURLs(tok.Attr); changed {
				tok.Attr = attrs
				sb.WriteString(tok.String())
				continue
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "a" && len(anchors) > 0 {
				span := anchors[len(anchors)-1]
				anchors = anchors[:len(anchors)-1]
				if span {
					sb.WriteString("</span>")
					continue
				}
			}
		}

		sb.WriteString(raw)
	}
	return sb.String()
}

// dropUnsafeURLs removes href and src attributes carrying a script or data
// URL.
func dropUnsafeURLs(attrs []html.Attribute) ([]html.Attribute, bool) {
	changed := false
	out := attrs[:0:0]
	for _, a := range attrs {
		if (a.Key == "href" || a.Key == "src") && isUnsafeURL(a.Val) {
			changed = true
			continue
		}
		out = append(out, a)
	}
	return out, changed
}

var unsafeSchemes = []string{"javascript:", "vbscript:", "data:"}

func isUnsafeURL(u string) bool {
	// Browsers ignore whitespace and control characters inside the scheme
	cleaned := strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, u)
	cleaned = strings.ToLower(cleaned)
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(cleaned, scheme) {
			return true
		}
	}
	return false
}

// attrVal returns the value of a named HTML attribute, or "".
func attrVal(attrs []html.Attribute, name string) string {
	for _, a := range attrs {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
