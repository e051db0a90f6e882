package blocks

import "strings"

// Kind is the type of a top-level markdown block.
type Kind int

const (
	KindBlank Kind = iota
	KindParagraph
	KindFencedCode
	KindTable
	KindList
	KindBlockquote
	KindHeading
	KindThematicBreak
	KindMath
	KindFootnotes
)

var kindNames = [...]string{
	KindBlank:         "blank",
	KindParagraph:     "paragraph",
	KindFencedCode:    "code",
	KindTable:         "table",
	KindList:          "list",
	KindBlockquote:    "blockquote",
	KindHeading:       "heading",
	KindThematicBreak: "thematic_break",
	KindMath:          "math",
	KindFootnotes:     "footnotes",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText lets kinds appear by name in YAML and JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Detect determines the type of block a line starts.
func Detect(line string) Kind {
	trimmed := strings.TrimLeft(line, " \t")

	if IsBlank(trimmed) {
		return KindBlank
	}

	// Fenced code: ``` or ~~~
	if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
		return KindFencedCode
	}

	if strings.HasPrefix(trimmed, "$$") {
		return KindMath
	}

	// Heading: # (ATX style)
	if trimmed[0] == '#' {
		// Verify it's a valid heading (# followed by space or end of line)
		for i, c := range trimmed {
			if c != '#' {
				if c == ' ' || c == '\t' {
					return KindHeading
				}
				break
			}
			if i >= 6 { // Max 6 # characters
				break
			}
		}
		// Empty heading like "##"
		if strings.Trim(trimmed, "#") == "" && len(trimmed) <= 6 {
			return KindHeading
		}
	}

	// Thematic break: ---, ***, ___ (with optional spaces)
	if IsThematicBreak(trimmed) {
		return KindThematicBreak
	}

	if trimmed[0] == '>' {
		return KindBlockquote
	}

	// List: -, *, +, or digit followed by . or )
	if IsListMarker(trimmed) {
		return KindList
	}

	if IsTableLine(line) {
		return KindTable
	}

	return KindParagraph
}

// IsBlank returns true if the line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsListMarker returns true if the line starts with a list marker.
func IsListMarker(trimmed string) bool {
	if len(trimmed) == 0 {
		return false
	}

	// Unordered list markers: -, *, +
	if (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') &&
		len(trimmed) > 1 && (trimmed[1] == ' ' || trimmed[1] == '\t') {
		return true
	}

	// Ordered list markers: digit(s) followed by . or )
	i := 0
	for i < len(trimmed) && i < 9 && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i < len(trimmed) && (trimmed[i] == '.' || trimmed[i] == ')') {
		if i+1 < len(trimmed) && (trimmed[i+1] == ' ' || trimmed[i+1] == '\t') {
			return true
		}
		// "1." with nothing after the marker yet
		if i+1 == len(trimmed) {
			return true
		}
	}

	return false
}

// IsThematicBreak returns true if the line is a thematic break (---, ***, ___).
func IsThematicBreak(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}

	char := rune(trimmed[0])
	if char != '-' && char != '*' && char != '_' {
		return false
	}

	count := 0
	for _, c := range trimmed {
		if c == char {
			count++
		} else if c != ' ' && c != '\t' {
			return false
		}
	}

	return count >= 3
}

// IsTableLine returns true if the line appears to be part of a table.
func IsTableLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	return strings.Contains(trimmed, "|")
}

// IsSetextUnderline returns true if the line is a setext heading underline.
func IsSetextUnderline(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}

	char := trimmed[0]
	if char != '=' && char != '-' {
		return false
	}

	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != char {
			return false
		}
	}

	return true
}

// Fence describes the opening line of a fenced code block.
type Fence struct {
	Char   rune // '`' or '~'
	Len    int  // number of fence characters
	Indent int  // leading spaces before the fence
}

// ParseFence extracts fence info from a fence opening line.
func ParseFence(line string) Fence {
	indent := CountLeadingSpaces(line)
	trimmed := strings.TrimLeft(line, " \t")

	if len(trimmed) == 0 {
		return Fence{}
	}

	f := Fence{Char: rune(trimmed[0]), Indent: indent}
	for _, c := range trimmed {
		if c != f.Char {
			break
		}
		f.Len++
	}
	return f
}

// Closes returns true if line is a valid closing fence for f.
func (f Fence) Closes(line string) bool {
	indent := CountLeadingSpaces(line)
	// Closing fence can have up to 3 spaces of indentation
	if indent > 3 && indent > f.Indent+3 {
		return false
	}

	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) == 0 {
		return false
	}

	if rune(trimmed[0]) != f.Char {
		return false
	}

	n := 0
	for _, c := range trimmed {
		if c == f.Char {
			n++
		} else if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		} else {
			// Info string after the fence: not a closer
			return false
		}
	}

	return n >= f.Len
}

// closesMath reports whether a line inside an open $$ block ends it.
func closesMath(line string) bool {
	return strings.Contains(line, "$$")
}

// isSingleLineMath reports whether a $$ opening line also closes the block,
// as in "$$x^2$$".
func isSingleLineMath(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= 4 && strings.HasPrefix(trimmed, "$$") && strings.Contains(trimmed[2:], "$$")
}

// isFootnoteDefinition reports whether the line defines a footnote ("[^id]: ...").
func isFootnoteDefinition(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(trimmed, "[^") {
		return false
	}
	end := strings.Index(trimmed, "]:")
	return end > 2 && !strings.ContainsAny(trimmed[2:end], " \t]")
}

// CountLeadingSpaces returns the number of leading space characters.
// Tabs are counted as 1 for simplicity.
func CountLeadingSpaces(line string) int {
	count := 0
	for _, c := range line {
		if c == ' ' || c == '\t' {
			count++
		} else {
			break
		}
	}
	return count
}
