package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/samsaffron/streamdown/internal/blocks"
	"github.com/samsaffron/streamdown/internal/repair"
	"github.com/samsaffron/streamdown/internal/ui"
)

var (
	repairShowDiff  bool
	repairPrefixes  bool
	repairStripTags bool
	repairTrailing  bool
)

var repairCmd = &cobra.Command{
	Use:   "repair [file]",
	Short: "Close unterminated markup in a markdown fragment",
	Long: `Print the fragment with unterminated emphasis, inline code, math, links
and code fences closed, so it renders as the finished text would.

The file may carry a line range (answer.md:10-40), be "-" for stdin or
"clipboard". With no argument stdin is read.

Examples:
  streamdown repair answer.md
  echo 'Some **bold and [a link](https://exa' | streamdown repair
  streamdown repair --diff answer.md
  streamdown repair --prefixes --trailing answer.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepair,
}

func init() {
	rootCmd.AddCommand(repairCmd)
	repairCmd.Flags().BoolVar(&repairShowDiff, "diff", false, "Show what the repair changed as a unified diff")
	repairCmd.Flags().BoolVar(&repairPrefixes, "prefixes", false, "Repair every growing prefix, as a stream would deliver it")
	repairCmd.Flags().BoolVar(&repairStripTags, "strip-tags", false, "Remove a raw HTML tag still being written at the end")
	repairCmd.Flags().BoolVar(&repairTrailing, "trailing", false, "Only repair the trailing block")
}

func runRepair(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	fix := repairFunc(repairStripTags, repairTrailing)
	out := cmd.OutOrStdout()

	if repairPrefixes {
		return writePrefixes(out, doc.Text, fix)
	}

	repaired := fix(doc.Text)
	slog.Debug("repaired", "name", doc.Name, "added", len(repaired)-len(doc.Text), "complete", repaired == doc.Text)

	if repairShowDiff {
		styles := ui.NewStyles(out, themeFromConfig(cfg), !isTerminal(out))
		changed, err := ui.RepairDiff(out, styles, doc.Text, repaired)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintln(cmd.ErrOrStderr(), "nothing to repair")
		}
		return nil
	}

	_, err = io.WriteString(out, repaired)
	return err
}

// repairFunc returns the repair to apply: the whole text, or only its
// trailing block.
func repairFunc(stripTags, trailing bool) func(string) string {
	if trailing {
		return func(text string) string {
			return blocks.RepairTrailing(text, stripTags)
		}
	}
	return func(text string) string {
		if stripTags {
			text = repair.StripIncompleteTag(text)
		}
		return repair.Repair(text)
	}
}

// writePrefixes writes the repair of every prefix of text ending on a rune
// boundary, one quoted pair per line.
func writePrefixes(w io.Writer, text string, fix func(string) string) error {
	for i := range text {
		if i == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%q => %q\n", text[:i], fix(text[:i])); err != nil {
			return err
		}
	}
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "%q => %q\n", text, fix(text))
	return err
}
