package render

import "github.com/samsaffron/streamdown/internal/repair"

// NeutralizeMarkdown replaces a pending link at the end of repaired markdown
// with its label, itself repaired, for renderers that have no way to style a
// link as pending. Markdown without a pending link is returned unchanged.
func NeutralizeMarkdown(md string) string {
	before, label, ok := repair.PendingLink(md)
	if !ok {
		return md
	}
	return before + repair.Repair(label)
}
