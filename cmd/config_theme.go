package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/samsaffron/streamdown/internal/cache"
	"github.com/samsaffron/streamdown/internal/ui"
)

var configThemeList bool

var configThemeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Select a color theme",
	Long: `Interactively select from predefined color themes.

Use arrow keys to navigate and see a live preview of each theme, including
how a link still being streamed is shown. Press enter to select and save,
or esc to cancel. Pass a name to set it directly.

Available themes: gruvbox (default), dracula, nord, solarized, monokai, classic`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgs:         ui.PresetThemeNames,
	ValidArgsFunction: themeArgCompletion,
	RunE:              configTheme,
}

func init() {
	configCmd.AddCommand(configThemeCmd)
	configThemeCmd.Flags().BoolVar(&configThemeList, "list", false, "List themes with a color swatch")
}

func configTheme(cmd *cobra.Command, args []string) error {
	if configThemeList {
		fmt.Fprint(cmd.OutOrStdout(), themeList(ui.NewStyles(cmd.OutOrStdout(), nil, !isTerminal(cmd.OutOrStdout()))))
		return nil
	}

	currentTheme := cfg.Theme.Preset
	if currentTheme == "" {
		currentTheme = ui.MatchPresetTheme(uiThemeConfig(cfg.Theme))
	}

	var selected string
	if len(args) == 1 {
		selected = args[0]
	} else {
		var err error
		if selected, err = runThemeSelector(currentTheme); err != nil {
			return err
		}
		if selected == "" {
			return nil // cancelled
		}
	}

	if ui.GetPresetTheme(selected) == nil {
		return fmt.Errorf("unknown theme: %s", selected)
	}

	path, err := configFilePath()
	if err != nil {
		return err
	}
	if err := setConfigValue(path, "theme.preset", selected); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Theme set to: %s\n", selected)
	if overrides := themeOverrides(uiThemeConfig(cfg.Theme)); len(overrides) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Note: %s in your config still override the preset\n", strings.Join(overrides, ", "))
	}
	return nil
}

// themeOverrides names the color keys set on top of the preset.
func themeOverrides(t ui.ThemeConfig) []string {
	fields := []struct{ key, value string }{
		{"theme.primary", t.Primary},
		{"theme.secondary", t.Secondary},
		{"theme.success", t.Success},
		{"theme.error", t.Error},
		{"theme.warning", t.Warning},
		{"theme.muted", t.Muted},
		{"theme.text", t.Text},
		{"theme.link", t.Link},
		{"theme.pending", t.Pending},
	}
	var set []string
	for _, f := range fields {
		if f.value != "" {
			set = append(set, f.key)
		}
	}
	return set
}

// themeList renders one line per preset: a swatch of its colors, the name
// and the description.
func themeList(styles *ui.Styles) string {
	var b strings.Builder
	for _, name := range ui.PresetThemeNames {
		preset := ui.GetPresetTheme(name)
		if preset == nil {
			continue
		}
		theme := ui.ThemeFromConfig(preset.Config)
		swatch := ""
		if styles.Colored() {
			for _, c := range []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Error, theme.Warning, theme.Pending} {
				swatch += lipgloss.NewStyle().Foreground(c).Render("●")
			}
			swatch += " "
		}
		fmt.Fprintf(&b, "%s%-10s %s\n", swatch, preset.Name, styles.Muted.Render(preset.Description))
	}
	return b.String()
}

const themePreviewMarkdown = "## Preview\n\nSome **bold** text, `inline code` and [a link](https://example.com).\n\nStill streaming *emphasis and [the do"

const themePreviewWidth = 44

type themeKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var themeKeys = themeKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c")),
}

// themeSelectorModel is the bubbletea model for theme selection
type themeSelectorModel struct {
	presets      []ui.ThemePreset
	renderers    map[string]*ui.MarkdownRenderer
	cursor       int
	currentTheme string
	selected     string
	cancelled    bool
	width        int
	height       int
}

func newThemeSelectorModel(currentTheme string) themeSelectorModel {
	m := themeSelectorModel{
		renderers:    make(map[string]*ui.MarkdownRenderer),
		currentTheme: currentTheme,
	}
	for _, name := range ui.PresetThemeNames {
		preset := ui.GetPresetTheme(name)
		if preset == nil {
			continue
		}
		m.presets = append(m.presets, *preset)
		m.renderers[name] = ui.NewMarkdownRenderer(ui.ThemeFromConfig(preset.Config), cache.New[int, *glamour.TermRenderer](1))
	}

	// Find cursor position for current theme
	for i, p := range m.presets {
		if p.Name == currentTheme {
			m.cursor = i
			break
		}
	}
	return m
}

func (m themeSelectorModel) Init() tea.Cmd {
	return nil
}

func (m themeSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, themeKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, themeKeys.Down):
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case key.Matches(msg, themeKeys.Select):
			if len(m.presets) > 0 {
				m.selected = m.presets[m.cursor].Name
			}
			return m, tea.Quit
		case key.Matches(msg, themeKeys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m themeSelectorModel) View() string {
	if len(m.presets) == 0 {
		return "No themes available"
	}

	hovered := m.presets[m.cursor]
	previewTheme := ui.ThemeFromConfig(hovered.Config)

	var list strings.Builder
	list.WriteString(lipgloss.NewStyle().Bold(true).Render("Select Theme"))
	list.WriteString("\n\n")

	for i, preset := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "❯ "
		}

		label := preset.Name
		if preset.Name == m.currentTheme {
			label += " (current)"
		}

		if i == m.cursor {
			list.WriteString(lipgloss.NewStyle().Bold(true).Foreground(previewTheme.Primary).Render(cursor + label))
		} else {
			list.WriteString(cursor + label)
		}
		list.WriteString("\n")
	}

	list.WriteString("\n")
	list.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("↑/↓ navigate · enter select · esc cancel"))

	listCol := lipgloss.NewStyle().Width(30).Render(list.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, listCol, "  ", m.preview(previewTheme, hovered))
}

// preview renders the sample document, pending link included, in the
// hovered theme.
func (m themeSelectorModel) preview(theme *ui.Theme, preset ui.ThemePreset) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render("Preview: "+preset.Name) + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).Render(preset.Description) + "\n\n")
	b.WriteString(m.renderers[preset.Name].Render(themePreviewMarkdown, themePreviewWidth) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("+ added line") + "  ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("- removed line"))

	return border.Render(b.String())
}

// runThemeSelector runs the interactive theme selector and returns the selected theme name
func runThemeSelector(currentTheme string) (string, error) {
	// Try to use /dev/tty for proper terminal handling
	var opts []tea.ProgramOption
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		opts = append(opts, tea.WithInput(tty), tea.WithOutput(tty))
	}

	finalModel, err := tea.NewProgram(newThemeSelectorModel(currentTheme), opts...).Run()
	if err != nil {
		return "", err
	}

	m := finalModel.(themeSelectorModel)
	if m.cancelled {
		return "", nil
	}
	return m.selected, nil
}
