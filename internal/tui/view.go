package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/viz"
)

func (m model) View() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(" " + s.GradientTitle("c r r s i m") + "  " +
		s.Subtle.Render("rolling loss vs. tire pressure") + "\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewForm(), m.viewChart(), m.viewHandle())
	b.WriteString(body + "\n")

	if m.status != "" {
		b.WriteString(" " + s.StatusOK.Render(m.status) + "\n")
	}
	b.WriteString(" " + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m model) viewForm() string {
	s := m.styles
	applied := m.machine.Applied()
	draft := m.machine.Draft()
	preview := m.machine.Preview()

	var b strings.Builder
	b.WriteString(s.Title.Render("PARAMETERS") + "\n\n")

	for i, f := range params.Fields {
		label := fmt.Sprintf("%-8s", f.Label)
		if i == m.focus {
			label = s.Focused.Render("▸ " + label)
		} else {
			label = s.Label.Render("  " + label)
		}

		mark := " "
		if v, _ := applied.Get(f.Key); params.FormatValue(v) != draft.Value(f.Key) {
			mark = s.Dirty.Render("•")
		}
		if f.Key == params.ManualA && draft.UseAutoA() {
			mark = s.Subtle.Render("-")
		}

		b.WriteString(fmt.Sprintf("%s %s %s %s\n", label, m.inputs[i].View(), s.Subtle.Render(f.Unit), mark))
	}

	mode := "auto"
	if !draft.UseAutoA() {
		mode = "manual"
	}
	b.WriteString("\n")
	b.WriteString(s.Label.Render("A mode    ") + s.Value.Render(mode) + "\n")
	b.WriteString(s.Label.Render("auto A    ") + s.Value.Render(fmt.Sprintf("%.6f", preview.AutoA)) + "\n")
	b.WriteString(s.Label.Render("next A    ") + s.Value.Render(fmt.Sprintf("%.6f", preview.ResolvedA)) + "\n")

	if m.pending() {
		b.WriteString("\n" + s.StatusPend.Render("unapplied changes, enter to apply") + "\n")
	}

	return s.Panel.Width(formWidth - 2).Render(b.String())
}

// pending reports whether the draft would commit to something other than
// the applied set.
func (m model) pending() bool {
	applied := m.machine.Applied()
	next := m.machine.Preview()
	nextSet := next.Values
	nextSet.A = next.ResolvedA
	nextSet.DerivedA = next.AutoA
	return nextSet != applied
}

func (m model) viewChart() string {
	s := m.styles
	r := m.machine.Result()
	cols := chartColumns(m.machine.ChartWidth())
	opts := viz.ChartOptions{
		ViewportWidth: m.machine.ChartWidth(),
		Height:        max(m.height-22, 8),
		Theme:         s.Theme(),
	}

	var b strings.Builder
	if m.compare {
		b.WriteString(s.Title.Render("WIDTH SENSITIVITY") + "\n\n")
		b.WriteString(viz.RenderComparison(r, opts) + "\n")
	} else {
		b.WriteString(s.Title.Render("ROLLING LOSS") + "\n\n")
		b.WriteString(viz.RenderCurve(r, opts) + "\n")
	}
	b.WriteString("\n" + s.Separator(cols-4) + "\n")
	b.WriteString(viz.Summary(r))

	return s.Panel.Width(cols - 2).Render(b.String())
}

func (m model) viewHandle() string {
	style := m.styles.Handle
	if m.resize.Active() {
		style = m.styles.HandleDrag
	}
	rows := max(m.height-6, 3)
	return style.Render(strings.TrimSuffix(strings.Repeat("┃\n", rows), "\n"))
}
