package repair

import "testing"

func TestStripIncompleteTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "open tag with attribute", in: "text <div cla", want: "text"},
		{name: "tag at start", in: "<span", want: ""},
		{name: "closing tag slash only", in: "x </", want: "x"},
		{name: "closing tag name", in: "done </di", want: "done"},
		{name: "after another tag", in: "<b>x</b><i", want: "<b>x</b>"},
		{name: "complete tag", in: "text <div>", want: "text <div>"},
		{name: "glued to word", in: "a<b", want: "a<b"},
		{name: "comparison", in: "x < 3", want: "x < 3"},
		{name: "lone angle", in: "x <", want: "x <"},
		{name: "inside inline code", in: "`a <b`", want: "`a <b`"},
		{name: "inside open fence", in: "```html\n<div cla", want: "```html\n<div cla"},
		{name: "no tag", in: "plain", want: "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripIncompleteTag(tt.in); got != tt.want {
				t.Errorf("StripIncompleteTag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
