package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. STREAMDOWN_RENDER_WIDTH for render.width.
const EnvPrefix = "STREAMDOWN"

type Config struct {
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Stream StreamConfig `mapstructure:"stream" yaml:"stream"`
	Theme  ThemeConfig  `mapstructure:"theme" yaml:"theme"`
	Table  TableConfig  `mapstructure:"table" yaml:"table"`
	HTML   HTMLConfig   `mapstructure:"html" yaml:"html"`
}

// RenderConfig configures terminal rendering
type RenderConfig struct {
	Width               int    `mapstructure:"width" yaml:"width"`                                 // 0 = detect from terminal
	Style               string `mapstructure:"style" yaml:"style"`                                 // auto, dark, light, notty or theme
	Partial             bool   `mapstructure:"partial" yaml:"partial"`                             // show the block being written
	CacheSize           int    `mapstructure:"cache_size" yaml:"cache_size"`                       // glamour renderers kept per width
	StripIncompleteTags bool   `mapstructure:"strip_incomplete_tags" yaml:"strip_incomplete_tags"` // hide a raw HTML tag being typed
}

// StreamConfig configures simulated streaming
type StreamConfig struct {
	ChunkSize   int           `mapstructure:"chunk_size" yaml:"chunk_size"`     // bytes per chunk, 0 = word paced
	Delay       time.Duration `mapstructure:"delay" yaml:"delay"`               // pause between chunks
	MaxNewlines int           `mapstructure:"max_newlines" yaml:"max_newlines"` // 0 = keep every blank line
}

// MarshalYAML writes Delay as a duration string rather than nanoseconds.
func (s StreamConfig) MarshalYAML() (any, error) {
	return struct {
		ChunkSize   int    `yaml:"chunk_size"`
		Delay       string `yaml:"delay"`
		MaxNewlines int    `yaml:"max_newlines"`
	}{s.ChunkSize, s.Delay.String(), s.MaxNewlines}, nil
}

// ThemeConfig allows customization of terminal colors.
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Preset    string `mapstructure:"preset" yaml:"preset,omitempty"`       // base palette name
	Primary   string `mapstructure:"primary" yaml:"primary,omitempty"`     // strong text, keywords
	Secondary string `mapstructure:"secondary" yaml:"secondary,omitempty"` // headings, borders
	Success   string `mapstructure:"success" yaml:"success,omitempty"`     // diff additions
	Error     string `mapstructure:"error" yaml:"error,omitempty"`         // diff removals
	Warning   string `mapstructure:"warning" yaml:"warning,omitempty"`     // emphasis
	Muted     string `mapstructure:"muted" yaml:"muted,omitempty"`         // dimmed text
	Text      string `mapstructure:"text" yaml:"text,omitempty"`           // primary text
	Link      string `mapstructure:"link" yaml:"link,omitempty"`           // complete links
	Pending   string `mapstructure:"pending" yaml:"pending,omitempty"`     // pending links
}

// TableConfig configures table export
type TableConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // csv, tsv or markdown
}

// HTMLConfig configures HTML rendering
type HTMLConfig struct {
	CodeStyle string `mapstructure:"code_style" yaml:"code_style"` // chroma style for code blocks
	Diagrams  bool   `mapstructure:"diagrams" yaml:"diagrams"`     // hand mermaid blocks to the diagram plugin
	Math      bool   `mapstructure:"math" yaml:"math"`             // hand math blocks to the math plugin
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("render.width", 0)
	v.SetDefault("render.style", "theme")
	v.SetDefault("render.partial", true)
	v.SetDefault("render.cache_size", 4)
	v.SetDefault("render.strip_incomplete_tags", true)
	v.SetDefault("stream.chunk_size", 0)
	v.SetDefault("stream.delay", 30*time.Millisecond)
	v.SetDefault("stream.max_newlines", 2)
	v.SetDefault("table.format", "csv")
	v.SetDefault("html.code_style", "monokai")
	v.SetDefault("html.diagrams", true)
	v.SetDefault("html.math", true)
	for _, key := range []string{"preset", "primary", "secondary", "success", "error", "warning", "muted", "text", "link", "pending"} {
		v.SetDefault("theme."+key, "")
	}
}

// Defaults returns the configuration used when no file or environment
// overrides are present.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; a failure here is a programming error
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}

// Keys returns every configuration key in dotted form, sorted.
func Keys() []string {
	v := viper.New()
	setDefaults(v)
	keys := v.AllKeys()
	slices.Sort(keys)
	return keys
}

// IsKey reports whether key names a configuration value.
func IsKey(key string) bool {
	_, found := slices.BinarySearch(Keys(), strings.ToLower(key))
	return found
}

// Load reads the configuration. An explicit path must exist; otherwise the
// XDG config directory and the working directory are searched and a missing
// file just means defaults. Environment variables prefixed with EnvPrefix
// override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config dir: %w", err)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// Read config file (optional when searching - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// GetConfigDir returns the XDG config directory for streamdown.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "streamdown"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "streamdown"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

const fileHeader = `# streamdown configuration
# Every key can be overridden from the environment, e.g. STREAMDOWN_RENDER_WIDTH=100
`

// Save writes the config as YAML to path, or to GetConfigPath when path is
// empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, append([]byte(fileHeader), data...), 0600)
}
