package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme defines the color scheme for the TUI and charts.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Series colors, in series order: total, hysteresis, impact for the
	// primary chart and narrow to wide for the comparison.
	Series []asciigraph.AnsiColor
	Axis   asciigraph.AnsiColor
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ff8800"),
		Error:     lipgloss.Color("#ff0000"),
		Series:    []asciigraph.AnsiColor{asciigraph.Magenta, asciigraph.Cyan, asciigraph.Yellow},
		Axis:      asciigraph.Default,
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
		Series:    []asciigraph.AnsiColor{asciigraph.White, asciigraph.Blue, asciigraph.Green},
		Axis:      asciigraph.Default,
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
		Series:    []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Cyan, asciigraph.Yellow},
		Axis:      asciigraph.Default,
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Success:   lipgloss.Color("#5fd068"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
		Series:    []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Yellow, asciigraph.Magenta},
		Axis:      asciigraph.Default,
	}

	// DefaultTheme is used for unknown names.
	DefaultTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return DefaultTheme
}

// Next returns the theme after t, wrapping around.
func Next(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return DefaultTheme
}

// ThemeNames lists the theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// CheckTheme reports an error naming the known themes when name is not one
// of them.
func CheckTheme(name string) error {
	if slices.Contains(ThemeNames(), name) {
		return nil
	}
	return fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(ThemeNames(), ", "))
}

// SeriesColor returns the i-th series color, cycling.
func (t Theme) SeriesColor(i int) asciigraph.AnsiColor {
	if len(t.Series) == 0 {
		return asciigraph.Default
	}
	return t.Series[i%len(t.Series)]
}
