package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Panel      lipgloss.Style
	Title      lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Focused    lipgloss.Style
	Subtle     lipgloss.Style
	KeyHint    lipgloss.Style
	Dirty      lipgloss.Style
	Handle     lipgloss.Style
	HandleDrag lipgloss.Style
	Error      lipgloss.Style
	StatusOK   lipgloss.Style
	StatusPend lipgloss.Style
	theme      Theme
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Value: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),
		Focused: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Subtle: lipgloss.NewStyle().
			Foreground(t.Muted),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Dirty: lipgloss.NewStyle().
			Foreground(t.Warning),
		Handle: lipgloss.NewStyle().
			Foreground(t.Muted),
		HandleDrag: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		Error: lipgloss.NewStyle().
			Foreground(t.Error),
		StatusOK: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Success),
		StatusPend: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Warning),
		theme: t,
	}
}

func (s Styles) Theme() Theme { return s.theme }

// GradientTitle colors text from the theme's primary to secondary color.
func (s Styles) GradientTitle(text string) string {
	return GradientText(text, s.theme.Primary, s.theme.Secondary)
}

// GradientText blends each rune's color from startColor to endColor. Colors
// that do not parse as hex fall back to white.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	from := parseColor(startColor)
	to := parseColor(endColor)

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		hex := from.BlendRgb(to, t).Clamped().Hex()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(c)))
	}

	return result.String()
}

// Sparkline draws values as one row of block characters, width cells wide.
// Values are resampled evenly across the whole series, so the first and
// last cells always show the series ends. Non-finite values draw as blanks.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if finite(v) {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo
	if !finite(span) || span == 0 {
		span = 1
	}

	cells := min(width, len(values))
	var b strings.Builder
	for i := 0; i < cells; i++ {
		j := 0
		if cells > 1 {
			j = i * (len(values) - 1) / (cells - 1)
		}
		v := values[j]
		if !finite(v) {
			b.WriteRune(' ')
			continue
		}
		level := int(math.Round((v - lo) / span * float64(len(sparkLevels)-1)))
		b.WriteRune(sparkLevels[max(0, min(level, len(sparkLevels)-1))])
	}
	return b.String()
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Separator is a horizontal rule with a center mark.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}

func parseColor(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
