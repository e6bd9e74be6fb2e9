// Package styles provides shared lipgloss styles for the notification
// surfaces.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/beacon/internal/core/notify"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
		Info:       lipgloss.Color("#7dcfff"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
		Info:       lipgloss.Color("#8ec07c"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports rebuilt by SetTheme.
var (
	TitleStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	MutedStyle  lipgloss.Style
	KindStyles  map[notify.Kind]lipgloss.Style
	ToastStyles map[notify.Kind]lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	KindStyles = map[notify.Kind]lipgloss.Style{
		notify.KindError:   lipgloss.NewStyle().Foreground(p.Error),
		notify.KindWarning: lipgloss.NewStyle().Foreground(p.Warning),
		notify.KindSuccess: lipgloss.NewStyle().Foreground(p.Success),
		notify.KindInfo:    lipgloss.NewStyle().Foreground(p.Info),
	}

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastStyles = map[notify.Kind]lipgloss.Style{
		notify.KindError:   toast.BorderForeground(p.Error).Foreground(p.Error),
		notify.KindWarning: toast.BorderForeground(p.Warning).Foreground(p.Warning),
		notify.KindSuccess: toast.BorderForeground(p.Success).Foreground(p.Success),
		notify.KindInfo:    toast.BorderForeground(p.Info).Foreground(p.Info),
	}
}

// KindStyle returns the inline style for a kind, falling back to info.
func KindStyle(k notify.Kind) lipgloss.Style {
	return KindStyles[notify.NormalizeKind(k)]
}

// ToastStyle returns the bordered toast style for a kind, falling back to
// info.
func ToastStyle(k notify.Kind) lipgloss.Style {
	return ToastStyles[notify.NormalizeKind(k)]
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
