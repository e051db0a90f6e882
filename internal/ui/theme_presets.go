package ui

// ThemePreset is a named palette selectable with theme.preset.
type ThemePreset struct {
	Name        string
	Description string
	Config      ThemeConfig
}

// presets lists every palette in display order. Link reuses the secondary
// color.
var presets = []ThemePreset{
	{"gruvbox", "Retro groove color scheme (default)", presetColors(
		"#b8bb26", "#83a598", "#b8bb26", "#fb4934", "#fabd2f", "#928374", "#ebdbb2", "#d3869b")},
	{"dracula", "Popular dark theme with purple accents", presetColors(
		"#bd93f9", "#8be9fd", "#50fa7b", "#ff5555", "#f1fa8c", "#6272a4", "#f8f8f2", "#ff79c6")},
	{"nord", "Arctic, north-bluish color palette", presetColors(
		"#88c0d0", "#81a1c1", "#a3be8c", "#bf616a", "#ebcb8b", "#4c566a", "#eceff4", "#b48ead")},
	{"solarized", "Precision colors for machines and people", presetColors(
		"#268bd2", "#2aa198", "#859900", "#dc322f", "#b58900", "#586e75", "#839496", "#d33682")},
	{"monokai", "Vibrant colors inspired by Sublime Text", presetColors(
		"#a6e22e", "#66d9ef", "#a6e22e", "#f92672", "#e6db74", "#75715e", "#f8f8f2", "#ae81ff")},
	{"classic", "Classic green terminal style", presetColors(
		"10", "4", "10", "9", "11", "245", "15", "205")},
}

func presetColors(primary, secondary, success, errColor, warning, muted, text, pending string) ThemeConfig {
	return ThemeConfig{
		Primary:   primary,
		Secondary: secondary,
		Success:   success,
		Error:     errColor,
		Warning:   warning,
		Muted:     muted,
		Text:      text,
		Link:      secondary,
		Pending:   pending,
	}
}

// PresetThemeNames holds the preset names in display order.
var PresetThemeNames = presetNames()

// PresetThemes indexes the presets by name.
var PresetThemes = presetIndex()

func presetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

func presetIndex() map[string]ThemePreset {
	index := make(map[string]ThemePreset, len(presets))
	for _, p := range presets {
		index[p.Name] = p
	}
	return index
}

// GetPresetTheme returns a preset by name, or nil if not found
func GetPresetTheme(name string) *ThemePreset {
	if preset, ok := PresetThemes[name]; ok {
		return &preset
	}
	return nil
}

// MatchPresetTheme returns the name of the preset whose colors equal cfg,
// or "" when none does. cfg.Preset is ignored.
func MatchPresetTheme(cfg ThemeConfig) string {
	cfg.Preset = ""
	for _, p := range presets {
		if p.Config == cfg {
			return p.Name
		}
	}
	return ""
}
