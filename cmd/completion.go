package cmd

import (
	"slices"
	"strings"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"

	"github.com/samsaffron/streamdown/internal/config"
	"github.com/samsaffron/streamdown/internal/ui"
)

// completePrefix returns the candidates starting with toComplete.
func completePrefix(candidates []string, toComplete string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, toComplete) {
			out = append(out, c)
		}
	}
	return out
}

// styleFlagCompletion completes --style with "theme" and glamour's styles.
func styleFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := []string{"theme", glamourstyles.AutoStyle}
	for name := range glamourstyles.DefaultStyles {
		names = append(names, name)
	}
	slices.Sort(names[2:])
	return completePrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// codeStyleFlagCompletion completes --code-style with chroma's styles.
func codeStyleFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completePrefix(chromastyles.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func tableFormatFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completePrefix([]string{"csv", "tsv", "markdown"}, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// configKeyCompletion completes the first argument of config get and set.
func configKeyCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completePrefix(config.Keys(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func themeArgCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completePrefix(ui.PresetThemeNames, toComplete), cobra.ShellCompDirectiveNoFileComp
}
