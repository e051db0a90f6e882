package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samsaffron/streamdown/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage streamdown configuration",
	Long: `View or edit your streamdown configuration.

Examples:
  streamdown config                       # show current config
  streamdown config init                  # write the defaults
  streamdown config set render.width 100
  streamdown config get stream.delay
  streamdown config edit                  # edit in $EDITOR
  streamdown config theme                 # pick a color theme
  streamdown config completion zsh        # shell completions`,
	// A broken config file must not stop the commands that fix it
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)
		loaded, err := config.Load(configFile)
		if err != nil {
			slog.Warn("using default configuration", "error", err)
			loaded = config.Defaults()
		}
		cfg = loaded
		return nil
	},
	RunE: configShow, // Default to show
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  configShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	Args:  cobra.NoArgs,
	RunE:  configPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long:  `Write the default configuration file. An existing file is kept unless --force is given.`,
	Args:  cobra.NoArgs,
	RunE:  configInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file in $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  configEdit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value while preserving comments.

Examples:
  streamdown config set render.width 100
  streamdown config set stream.delay 15ms
  streamdown config set theme.pending "#d3869b"`,
	Args:              cobra.ExactArgs(2),
	RunE:              configSet,
	ValidArgsFunction: configKeyCompletion,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value.

Examples:
  streamdown config get render.style
  streamdown config get html.code_style`,
	Args:              cobra.ExactArgs(1),
	RunE:              configGet,
	ValidArgsFunction: configKeyCompletion,
}

var configCompletionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a shell completion script.

Examples:
  streamdown config completion bash > ~/.bash_completion.d/streamdown
  streamdown config completion zsh > ~/.local/share/zsh/site-functions/_streamdown
  streamdown config completion fish > ~/.config/fish/completions/streamdown.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      configCompletion,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configCompletionCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
}

// configFilePath is the file the config commands read and write.
func configFilePath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return config.GetConfigPath()
}

func configShow(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		fmt.Fprintf(out, "# No config file (using defaults)\n")
		fmt.Fprintf(out, "# Create one with: streamdown config init\n\n")
	} else {
		fmt.Fprintf(out, "# %s\n\n", path)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func configPath(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func configInit(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(config.Defaults(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func configEdit(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(config.Defaults(), path); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	editorCmd := exec.Command(editor, path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	if err := editorCmd.Run(); err != nil {
		return err
	}

	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("config saved but does not load: %w", err)
	}
	return nil
}

func configSet(cmd *cobra.Command, args []string) error {
	key, value := strings.ToLower(args[0]), args[1]
	if !config.IsKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	path, err := configFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if err := setConfigValue(path, key, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

// setConfigValue writes key into the YAML file at path, keeping comments
// and the order of existing keys. The old file is restored when the result
// no longer loads.
func setConfigValue(path, key, value string) error {
	original, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	root, err := parseYAMLDocument(original)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := setYAMLValue(root, strings.Split(key, "."), value); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return err
	}
	encoder.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return err
	}

	if _, loadErr := config.Load(path); loadErr != nil {
		if original == nil {
			os.Remove(path)
		} else if err := os.WriteFile(path, original, 0600); err != nil {
			return errors.Join(loadErr, err)
		}
		return fmt.Errorf("invalid value %q for %s: %w", value, key, loadErr)
	}
	return nil
}

// parseYAMLDocument parses data, or returns an empty mapping document when
// data holds nothing.
func parseYAMLDocument(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		root.Kind = yaml.DocumentNode
		root.Content = []*yaml.Node{{Kind: yaml.MappingNode}}
	}
	return &root, nil
}

// setYAMLValue sets a nested key in a YAML document, creating mappings
// along the way.
func setYAMLValue(root *yaml.Node, path []string, value string) error {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid document structure")
	}

	current := root.Content[0]
	if current.Kind != yaml.MappingNode {
		return fmt.Errorf("root is not a mapping")
	}

	for i, part := range path {
		isLast := i == len(path)-1

		var next *yaml.Node
		for j := 0; j+1 < len(current.Content); j += 2 {
			if current.Content[j].Value == part {
				next = current.Content[j+1]
				break
			}
		}

		if next == nil {
			next = &yaml.Node{Kind: yaml.MappingNode}
			if isLast {
				next = &yaml.Node{Kind: yaml.ScalarNode}
			}
			current.Content = append(current.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: part}, next)
		}

		if isLast {
			next.Kind = yaml.ScalarNode
			next.Content = nil
			next.Tag = ""
			next.Style = 0
			next.Value = value
			return nil
		}

		if next.Kind != yaml.MappingNode {
			// Convert to mapping if needed
			next.Kind = yaml.MappingNode
			next.Content = nil
			next.Value = ""
			next.Tag = ""
		}
		current = next
	}
	return nil
}

func configGet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	if !config.IsKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	value, err := lookupConfigValue(cfg, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

// lookupConfigValue returns the YAML form of the value at a dotted key.
func lookupConfigValue(c *config.Config, key string) (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return "", err
	}

	var node any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", nil
		}
		node = m[part]
	}
	if node == nil {
		return "", nil
	}
	return fmt.Sprint(node), nil
}

func configCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case "bash":
		return rootCmd.GenBashCompletionV2(out, true)
	case "zsh":
		return rootCmd.GenZshCompletion(out)
	case "fish":
		return rootCmd.GenFishCompletion(out, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(out)
	}
	return nil
}
