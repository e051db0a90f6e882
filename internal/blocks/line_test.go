package blocks

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		line     string
		expected Kind
	}{
		{"# Heading", KindHeading},
		{"## Heading 2", KindHeading},
		{"###### Heading 6", KindHeading},
		{"##", KindHeading},
		{"```", KindFencedCode},
		{"```go", KindFencedCode},
		{"~~~", KindFencedCode},
		{"$$", KindMath},
		{"$$x^2$$", KindMath},
		{"---", KindThematicBreak},
		{"***", KindThematicBreak},
		{"___", KindThematicBreak},
		{"- - -", KindThematicBreak},
		{"> quote", KindBlockquote},
		{"- list item", KindList},
		{"* list item", KindList},
		{"+ list item", KindList},
		{"1. ordered", KindList},
		{"10. ordered", KindList},
		{"| table |", KindTable},
		{"regular text", KindParagraph},
		{"#hashtag", KindParagraph}, // Not a heading (no space after #)
		{"   ", KindBlank},
	}

	for _, tt := range tests {
		got := Detect(tt.line)
		if got != tt.expected {
			t.Errorf("Detect(%q) = %v, want %v", tt.line, got, tt.expected)
		}
	}
}

func TestIsListMarker(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"- item", true},
		{"* item", true},
		{"+ item", true},
		{"1. item", true},
		{"10. item", true},
		{"1) item", true},
		{"1.", true},
		{"-item", false},
		{"1.item", false},
		{"text", false},
		{"", false},
	}

	for _, tt := range tests {
		got := IsListMarker(tt.input)
		if got != tt.expected {
			t.Errorf("IsListMarker(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestIsThematicBreak(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"---", true},
		{"***", true},
		{"___", true},
		{"- - -", true},
		{"* * *", true},
		{"----", true},
		{"--", false},
		{"-", false},
		{"- -", false},
		{"abc", false},
	}

	for _, tt := range tests {
		got := IsThematicBreak(tt.input)
		if got != tt.expected {
			t.Errorf("IsThematicBreak(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseFence(t *testing.T) {
	tests := []struct {
		input string
		want  Fence
	}{
		{"```", Fence{'`', 3, 0}},
		{"````", Fence{'`', 4, 0}},
		{"~~~", Fence{'~', 3, 0}},
		{"  ```", Fence{'`', 3, 2}},
		{"```go", Fence{'`', 3, 0}},
		{"", Fence{}},
	}

	for _, tt := range tests {
		if got := ParseFence(tt.input); got != tt.want {
			t.Errorf("ParseFence(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestFenceCloses(t *testing.T) {
	tests := []struct {
		line     string
		fence    Fence
		expected bool
	}{
		{"```", Fence{'`', 3, 0}, true},
		{"````", Fence{'`', 3, 0}, true},
		{"``", Fence{'`', 3, 0}, false},
		{"~~~", Fence{'~', 3, 0}, true},
		{"```", Fence{'~', 3, 0}, false},
		{"~~~", Fence{'`', 3, 0}, false},
		{"  ```", Fence{'`', 3, 0}, true},
		{"```x", Fence{'`', 3, 0}, false},
		{"```", Fence{'`', 4, 0}, false},
	}

	for _, tt := range tests {
		got := tt.fence.Closes(tt.line)
		if got != tt.expected {
			t.Errorf("%+v.Closes(%q) = %v, want %v", tt.fence, tt.line, got, tt.expected)
		}
	}
}

func TestIsSetextUnderline(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"===", true},
		{"---", true},
		{"  ==  ", true},
		{"=-=", false},
		{"", false},
		{"text", false},
	}
	for _, tt := range tests {
		if got := IsSetextUnderline(tt.input); got != tt.expected {
			t.Errorf("IsSetextUnderline(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestIsFootnoteDefinition(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"[^1]: note", true},
		{"[^long-name]: note", true},
		{"  [^a]: indented", true},
		{"[^]: empty id", false},
		{"[^a b]: space in id", false},
		{"See [^1] inline", false},
		{"[link]: http://x", false},
	}
	for _, tt := range tests {
		if got := isFootnoteDefinition(tt.input); got != tt.expected {
			t.Errorf("isFootnoteDefinition(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := KindThematicBreak.String(); got != "thematic_break" {
		t.Errorf("KindThematicBreak.String() = %q", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("Kind(99).String() = %q", got)
	}
}
