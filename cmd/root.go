package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/samsaffron/streamdown/internal/config"
	"github.com/samsaffron/streamdown/internal/input"
	"github.com/samsaffron/streamdown/internal/ui"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "dev"

var (
	configFile string
	debug      bool

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default is $XDG_CONFIG_HOME/streamdown/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log block commits and repairs to stderr")
}

var rootCmd = &cobra.Command{
	Use:   "streamdown",
	Short: "Repair and render markdown while it is still streaming",
	Long: `streamdown closes the markup an LLM has not finished writing yet, so a
partial answer renders as well-formed markdown instead of flickering.

Examples:
  streamdown repair answer.md              # close open emphasis, code, links
  streamdown repair --prefixes answer.md   # repair every growing prefix
  streamdown render answer.md              # render in the terminal
  cat answer.md | streamdown render --simulate --delay 20ms
  streamdown html answer.md > answer.html
  streamdown table answer.md --format tsv

  streamdown config                        # view configuration
  streamdown config theme                  # pick a color theme`,
	Version:           Version,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readDocument reads the optional file argument, or stdin.
func readDocument(cmd *cobra.Command, args []string) (input.Document, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	doc, err := input.Read(arg, cmd.InOrStdin())
	if err != nil {
		return input.Document{}, err
	}
	slog.Debug("document read", "name", doc.Name, "bytes", len(doc.Text))
	return doc, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

// themeFromConfig builds the UI theme from the loaded config
func themeFromConfig(c *config.Config) *ui.Theme {
	return ui.ThemeFromConfig(uiThemeConfig(c.Theme))
}

func uiThemeConfig(t config.ThemeConfig) ui.ThemeConfig {
	return ui.ThemeConfig{
		Preset:    t.Preset,
		Primary:   t.Primary,
		Secondary: t.Secondary,
		Success:   t.Success,
		Error:     t.Error,
		Warning:   t.Warning,
		Muted:     t.Muted,
		Text:      t.Text,
		Link:      t.Link,
		Pending:   t.Pending,
	}
}

// ensureNewline terminates s with a newline unless it is empty.
func ensureNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
