package table

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const twoTables = "Intro\n\n" +
	"| Name | Qty |\n" +
	"|:-----|----:|\n" +
	"| **apple** | 1 |\n" +
	"| `kiwi` | 12 |\n" +
	"\nText between.\n\n" +
	"| a | b |\n" +
	"|---|:-:|\n" +
	"| x |\n"

func TestExtract(t *testing.T) {
	got := Extract(twoTables)
	want := []Table{
		{
			Header: []string{"Name", "Qty"},
			Rows:   [][]string{{"apple", "1"}, {"kiwi", "12"}},
			Align:  []Alignment{AlignLeft, AlignRight},
		},
		{
			Header: []string{"a", "b"},
			Rows:   [][]string{{"x", ""}},
			Align:  []Alignment{AlignNone, AlignCenter},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNone(t *testing.T) {
	if got := Extract("no | table here\n\njust text"); len(got) != 0 {
		t.Errorf("Extract found %d tables, want 0", len(got))
	}
}

func TestSelect(t *testing.T) {
	tbl, err := Select(twoTables, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, tbl.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	if _, err := Select("plain", 0); !errors.Is(err, ErrNoTables) {
		t.Errorf("Select on plain text error = %v, want ErrNoTables", err)
	}
	if _, err := Select(twoTables, 5); err == nil {
		t.Error("Select out of range returned nil error")
	}
}

func TestNormalized(t *testing.T) {
	in := Table{
		Header: []string{"a", "b", "c"},
		Rows:   [][]string{{"1"}, {"1", "2", "3", "4"}},
	}
	got := in.normalized()
	want := Table{
		Header: []string{"a", "b", "c"},
		Rows:   [][]string{{"1", "", ""}, {"1", "2", "3"}},
		Align:  []Alignment{AlignNone, AlignNone, AlignNone},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("normalized mismatch (-want +got):\n%s", diff)
	}
	if len(in.Rows[0]) != 1 {
		t.Error("normalized modified its receiver's rows")
	}
}
