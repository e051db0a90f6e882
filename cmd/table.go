package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samsaffron/streamdown/internal/clipboard"
	"github.com/samsaffron/streamdown/internal/table"
)

var (
	tableFormat string
	tableIndex  int
	tableAll    bool
	tableCopy   bool
)

var tableCmd = &cobra.Command{
	Use:   "table [file]",
	Short: "Export markdown tables as CSV, TSV or markdown",
	Long: `Extract a table from a markdown document and print it as CSV, TSV or
normalized markdown. Inline markup is removed from the cells.

Examples:
  streamdown table answer.md
  streamdown table --format tsv --index 1 answer.md
  streamdown table --all --format markdown answer.md
  streamdown table --copy answer.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().StringVarP(&tableFormat, "format", "f", "", "csv, tsv or markdown (default from config)")
	tableCmd.Flags().IntVarP(&tableIndex, "index", "n", 0, "Which table to export, counting from 0")
	tableCmd.Flags().BoolVar(&tableAll, "all", false, "Export every table, separated by a blank line")
	tableCmd.Flags().BoolVar(&tableCopy, "copy", false, "Copy the export to the clipboard instead of printing it")
	tableCmd.RegisterFlagCompletionFunc("format", tableFormatFlagCompletion)
}

func runTable(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	name := cfg.Table.Format
	if tableFormat != "" {
		name = tableFormat
	}
	format, err := table.ParseFormat(name)
	if err != nil {
		return err
	}

	out, err := exportTables(doc.Text, format, tableIndex, tableAll)
	if err != nil {
		return err
	}

	if tableCopy {
		if err := clipboard.CopyText(out); err != nil {
			return fmt.Errorf("failed to copy table: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "table copied to clipboard")
		return nil
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

// exportTables exports the table at index, or every table when all is set.
func exportTables(markdown string, format table.Format, index int, all bool) (string, error) {
	if !all {
		t, err := table.Select(markdown, index)
		if err != nil {
			return "", err
		}
		out, err := table.Export(t, format)
		return ensureNewline(out), err
	}

	tables := table.Extract(markdown)
	if len(tables) == 0 {
		return "", table.ErrNoTables
	}
	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		out, err := table.Export(t, format)
		if err != nil {
			return "", err
		}
		parts = append(parts, ensureNewline(out))
	}
	return strings.Join(parts, "\n"), nil
}
