package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samsaffron/streamdown/internal/blocks"
)

var blocksRepaired bool

var blocksCmd = &cobra.Command{
	Use:   "blocks [file]",
	Short: "Show how a document splits into blocks",
	Long: `Print, as YAML, the top-level blocks of a markdown document and the
offset where its trailing block starts. Everything before that offset is
final; only the trailing block is repaired while streaming.

Examples:
  streamdown blocks answer.md
  streamdown blocks --repaired answer.md:1-20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlocks,
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	blocksCmd.Flags().BoolVar(&blocksRepaired, "repaired", false, "Include the repaired trailing block")
}

// blockReport is the YAML document printed by the blocks command.
type blockReport struct {
	SafeBoundary int            `yaml:"safe_boundary"`
	Blocks       []blocks.Block `yaml:"blocks"`
	Repaired     string         `yaml:"repaired,omitempty"`
}

func newBlockReport(markdown string, withRepair, stripTags bool) blockReport {
	report := blockReport{
		SafeBoundary: blocks.SafeBoundary(markdown),
		Blocks:       blocks.Parse(markdown),
	}
	if withRepair && len(report.Blocks) > 0 {
		tail := report.Blocks[len(report.Blocks)-1]
		report.Repaired = blocks.RepairTrailing(markdown, stripTags)[tail.Start:]
	}
	return report
}

func runBlocks(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(newBlockReport(doc.Text, blocksRepaired, cfg.Render.StripIncompleteTags)); err != nil {
		return err
	}
	return enc.Close()
}
