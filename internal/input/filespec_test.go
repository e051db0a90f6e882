package input

import "testing"

func TestParseFileSpec(t *testing.T) {
	tests := []struct {
		spec string
		want FileSpec
	}{
		{"answer.md", FileSpec{Path: "answer.md"}},
		{"answer.md:11-22", FileSpec{Path: "answer.md", StartLine: 11, EndLine: 22, HasRegion: true}},
		{"answer.md:11-", FileSpec{Path: "answer.md", StartLine: 11, HasRegion: true}},
		{"answer.md:-22", FileSpec{Path: "answer.md", EndLine: 22, HasRegion: true}},
		{"notes:draft.md", FileSpec{Path: "notes:draft.md"}},
		{"answer.md:-", FileSpec{Path: "answer.md:-"}},
	}

	for _, tt := range tests {
		got, err := ParseFileSpec(tt.spec)
		if err != nil {
			t.Errorf("ParseFileSpec(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFileSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestParseFileSpecErrors(t *testing.T) {
	for _, spec := range []string{"", "answer.md:9-3"} {
		if _, err := ParseFileSpec(spec); err == nil {
			t.Errorf("ParseFileSpec(%q) should fail", spec)
		}
	}
}

func TestFileSpecString(t *testing.T) {
	for _, spec := range []string{"answer.md", "answer.md:11-22", "answer.md:11-", "answer.md:-22"} {
		fs, err := ParseFileSpec(spec)
		if err != nil {
			t.Fatalf("ParseFileSpec(%q) error = %v", spec, err)
		}
		if got := fs.String(); got != spec {
			t.Errorf("ParseFileSpec(%q).String() = %q", spec, got)
		}
	}
}

func TestExtractLines(t *testing.T) {
	content := "one\ntwo\nthree\nfour\n"
	tests := []struct {
		start, end int
		want       string
	}{
		{0, 0, content},
		{2, 3, "two\nthree\n"},
		{3, 0, "three\nfour\n"},
		{0, 1, "one\n"},
		{4, 99, "four\n"},
		{5, 0, ""},
		{3, 2, ""},
	}

	for _, tt := range tests {
		if got := ExtractLines(content, tt.start, tt.end); got != tt.want {
			t.Errorf("ExtractLines(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}

	if got := ExtractLines("a\nb", 2, 0); got != "b" {
		t.Errorf("ExtractLines without trailing newline = %q, want %q", got, "b")
	}
}
