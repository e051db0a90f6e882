package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the color palette for terminal output
type Theme struct {
	// Primary colors
	Primary   lipgloss.Color // main accent color (strong text, keywords)
	Secondary lipgloss.Color // secondary accent (headings, borders)

	// Semantic colors
	Success lipgloss.Color // additions
	Error   lipgloss.Color // removals, failures
	Warning lipgloss.Color // emphasis, strings
	Muted   lipgloss.Color // dimmed/secondary text
	Text    lipgloss.Color // primary text

	// Links
	Link    lipgloss.Color // complete links
	Pending lipgloss.Color // text whose closing markup has not arrived

	Border lipgloss.Color // borders and dividers

	// Diff backgrounds
	DiffAddBg     lipgloss.Color // background for added lines
	DiffRemoveBg  lipgloss.Color // background for removed lines
	DiffContextBg lipgloss.Color // background for context lines
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Primary:       lipgloss.Color("#b8bb26"), // gruvbox green
		Secondary:     lipgloss.Color("#83a598"), // gruvbox aqua
		Success:       lipgloss.Color("#b8bb26"), // gruvbox green
		Error:         lipgloss.Color("#fb4934"), // gruvbox red
		Warning:       lipgloss.Color("#fabd2f"), // gruvbox yellow
		Muted:         lipgloss.Color("#928374"), // gruvbox gray
		Text:          lipgloss.Color("#ebdbb2"), // gruvbox foreground
		Link:          lipgloss.Color("#83a598"), // gruvbox aqua
		Pending:       lipgloss.Color("#d3869b"), // gruvbox purple
		Border:        lipgloss.Color("#83a598"), // gruvbox aqua (matches secondary)
		DiffAddBg:     lipgloss.Color("#1d2021"), // gruvbox dark bg with green tint
		DiffRemoveBg:  lipgloss.Color("#1d2021"), // gruvbox dark bg with red tint
		DiffContextBg: lipgloss.Color("#1d2021"), // gruvbox dark bg
	}
}

// ThemeConfig mirrors config.ThemeConfig for applying overrides. Preset
// names a base palette from PresetThemes; the other fields override it.
type ThemeConfig struct {
	Preset    string
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Muted     string
	Text      string
	Link      string
	Pending   string
}

// ThemeFromConfig creates a theme with config overrides applied
func ThemeFromConfig(cfg ThemeConfig) *Theme {
	theme := DefaultTheme()

	if preset := GetPresetTheme(cfg.Preset); preset != nil {
		applyOverrides(theme, preset.Config)
	}
	applyOverrides(theme, cfg)

	return theme
}

func applyOverrides(theme *Theme, cfg ThemeConfig) {
	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Secondary != "" {
		theme.Secondary = lipgloss.Color(cfg.Secondary)
		theme.Border = lipgloss.Color(cfg.Secondary) // border follows secondary
	}
	if cfg.Success != "" {
		theme.Success = lipgloss.Color(cfg.Success)
	}
	if cfg.Error != "" {
		theme.Error = lipgloss.Color(cfg.Error)
	}
	if cfg.Warning != "" {
		theme.Warning = lipgloss.Color(cfg.Warning)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Text != "" {
		theme.Text = lipgloss.Color(cfg.Text)
	}
	if cfg.Link != "" {
		theme.Link = lipgloss.Color(cfg.Link)
	}
	if cfg.Pending != "" {
		theme.Pending = lipgloss.Color(cfg.Pending)
	}
}

// Styles returns styled text helpers bound to a renderer
type Styles struct {
	renderer *lipgloss.Renderer
	theme    *Theme

	// Text styles
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Pending lipgloss.Style

	// Diff styles
	DiffAdd     lipgloss.Style // Added lines (+)
	DiffRemove  lipgloss.Style // Removed lines (-)
	DiffContext lipgloss.Style // Context lines (unchanged)
	DiffHeader  lipgloss.Style // Diff header (@@ ... @@)
	LineNumber  lipgloss.Style // Gutter
}

// NewStyles creates styles for the given output. With noColor set, every
// style renders as plain text regardless of what the output supports.
func NewStyles(output io.Writer, theme *Theme, noColor bool) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	r := lipgloss.NewRenderer(output)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		renderer: r,
		theme:    theme,

		Title: r.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Bold: r.NewStyle().
			Bold(true),

		Success: r.NewStyle().
			Foreground(theme.Success),

		Error: r.NewStyle().
			Foreground(theme.Error),

		Pending: r.NewStyle().
			Foreground(theme.Pending).
			Italic(true),

		DiffAdd: r.NewStyle().
			Foreground(theme.Success).
			Background(theme.DiffAddBg),

		DiffRemove: r.NewStyle().
			Foreground(theme.Error).
			Background(theme.DiffRemoveBg),

		DiffContext: r.NewStyle().
			Foreground(theme.Muted).
			Background(theme.DiffContextBg),

		DiffHeader: r.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		LineNumber: r.NewStyle().
			Foreground(theme.Muted),
	}
}

// Theme returns the theme used by these styles
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Colored reports whether these styles emit any color.
func (s *Styles) Colored() bool {
	return s.renderer.ColorProfile() != termenv.Ascii
}

// GlamourStyleFromTheme creates a glamour StyleConfig from the given theme.
// Markdown rendered with it has already been repaired, so every construct
// it styles is complete.
func GlamourStyleFromTheme(theme *Theme) ansi.StyleConfig {
	p := newPalette(theme)

	heading := func(level int) ansi.StyleBlock {
		prefix := strings.Repeat("#", level) + " "
		return ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: prefix}}
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", BlockSuffix: "\n", Color: p.text},
			Margin:         ptr[uint](2),
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: p.warning, Italic: ptr(true)},
			Indent:         ptr[uint](2),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
			StyleBlock:  ansi.StyleBlock{StylePrimitive: fg(p.text)},
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", Color: p.secondary, Bold: ptr(true)},
		},
		H1: heading(1),
		H2: heading(2),
		H3: heading(3),
		H4: heading(4),
		H5: heading(5),
		H6: heading(6),

		Strikethrough:  ansi.StylePrimitive{CrossedOut: ptr(true)},
		Emph:           ansi.StylePrimitive{Color: p.warning, Italic: ptr(true)},
		Strong:         ansi.StylePrimitive{Color: p.primary, Bold: ptr(true)},
		HorizontalRule: ansi.StylePrimitive{Color: p.muted, Format: "\n--------\n"},
		Item:           ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration:    ansi.StylePrimitive{BlockPrefix: ". ", Color: p.secondary},
		Task:           ansi.StyleTask{Ticked: "[✓] ", Unticked: "[ ] "},

		Link:      ansi.StylePrimitive{Color: p.link, Underline: ptr(true)},
		LinkText:  ansi.StylePrimitive{Color: p.link, Bold: ptr(true)},
		Image:     ansi.StylePrimitive{Color: p.secondary, Underline: ptr(true)},
		ImageText: ansi.StylePrimitive{Color: p.muted, Format: "Image: {{.text}} →"},

		Code: ansi.StyleBlock{StylePrimitive: fg(p.primary)},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{StylePrimitive: fg(p.text), Margin: ptr[uint](2)},
			Chroma:     p.chroma(),
		},
		Table: ansi.StyleTable{
			CenterSeparator: ptr("┼"),
			ColumnSeparator: ptr("│"),
			RowSeparator:    ptr("─"),
		},
		DefinitionDescription: ansi.StylePrimitive{BlockPrefix: "\n🠶 "},
	}
}

// palette holds the theme colors as the string pointers glamour expects.
type palette struct {
	primary, secondary, success, warning, muted, text, link *string
}

func newPalette(theme *Theme) palette {
	color := func(c lipgloss.Color) *string { return ptr(string(c)) }
	return palette{
		primary:   color(theme.Primary),
		secondary: color(theme.Secondary),
		success:   color(theme.Success),
		warning:   color(theme.Warning),
		muted:     color(theme.Muted),
		text:      color(theme.Text),
		link:      color(theme.Link),
	}
}

// chroma maps token classes onto the palette: keywords and tags take the
// primary color, types and numbers the secondary, functions and attributes
// the success color, strings the warning color.
func (p palette) chroma() *ansi.Chroma {
	return &ansi.Chroma{
		Text:                fg(p.text),
		Operator:            fg(p.text),
		Punctuation:         fg(p.text),
		Name:                fg(p.text),
		Comment:             fg(p.muted),
		CommentPreproc:      fg(p.muted),
		GenericDeleted:      fg(p.muted),
		Keyword:             fg(p.primary),
		KeywordReserved:     fg(p.primary),
		KeywordNamespace:    fg(p.primary),
		NameTag:             fg(p.primary),
		LiteralStringEscape: fg(p.primary),
		KeywordType:         fg(p.secondary),
		NameBuiltin:         fg(p.secondary),
		NameConstant:        fg(p.secondary),
		LiteralNumber:       fg(p.secondary),
		GenericSubheading:   fg(p.secondary),
		NameClass:           ansi.StylePrimitive{Color: p.secondary, Bold: ptr(true), Underline: ptr(true)},
		NameAttribute:       fg(p.success),
		NameDecorator:       fg(p.success),
		NameFunction:        fg(p.success),
		GenericInserted:     fg(p.success),
		LiteralString:       fg(p.warning),
		GenericEmph:         ansi.StylePrimitive{Italic: ptr(true)},
		GenericStrong:       ansi.StylePrimitive{Bold: ptr(true)},
	}
}

func fg(color *string) ansi.StylePrimitive {
	return ansi.StylePrimitive{Color: color}
}

func ptr[T any](v T) *T {
	return &v
}
