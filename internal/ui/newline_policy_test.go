package ui

import "testing"

func TestCountTrailingNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "empty", in: "", want: 0},
		{name: "none", in: "abc", want: 0},
		{name: "one", in: "abc\n", want: 1},
		{name: "three", in: "abc\n\n\n", want: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountTrailingNewlines(tc.in); got != tc.want {
				t.Fatalf("CountTrailingNewlines(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestStreamingNewlineCompactor_CompactsAcrossChunks(t *testing.T) {
	c := NewStreamingNewlineCompactor(2)

	part1 := c.CompactChunk("hello\n\n\n")
	part2 := c.CompactChunk("\n\nworld")

	if part1 != "hello\n\n" {
		t.Fatalf("part1 = %q, want %q", part1, "hello\n\n")
	}
	if part2 != "world" {
		t.Fatalf("part2 = %q, want %q", part2, "world")
	}
}

func TestStreamingNewlineCompactor_KeepsFencedBlankLines(t *testing.T) {
	in := "```\na\n\n\n\nb\n```\n\n\n\nx"
	want := "```\na\n\n\n\nb\n```\n\nx"

	whole := NewStreamingNewlineCompactor(2).CompactChunk(in)
	if whole != want {
		t.Fatalf("CompactChunk(%q) = %q, want %q", in, whole, want)
	}

	c := NewStreamingNewlineCompactor(2)
	var got string
	for i := 0; i < len(in); i++ {
		got += c.CompactChunk(in[i : i+1])
	}
	if got != want {
		t.Fatalf("byte-by-byte CompactChunk = %q, want %q", got, want)
	}
}

func TestStreamingNewlineCompactor_NilAndDefault(t *testing.T) {
	var c *StreamingNewlineCompactor
	if got := c.CompactChunk("a\n\n\n\nb"); got != "a\n\n\n\nb" {
		t.Fatalf("nil compactor changed input: %q", got)
	}
	if got := NewStreamingNewlineCompactor(0).CompactChunk("a\n\n\n\nb"); got != "a\n\nb" {
		t.Fatalf("default compactor = %q, want %q", got, "a\n\nb")
	}
}
