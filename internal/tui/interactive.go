package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/crrsim/internal/gesture"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/sim"
	"github.com/san-kum/crrsim/internal/storage"
	"github.com/san-kum/crrsim/internal/viz"
)

// formWidth is the width in columns of the parameter panel, borders
// included. The chart panel starts right after it.
const formWidth = 44

// Options configures the interactive app.
type Options struct {
	Theme  string
	Store  *storage.Store
	Logger *slog.Logger
	Bus    *gesture.Bus
}

type model struct {
	machine *sim.Machine
	store   *storage.Store
	logger  *slog.Logger

	inputs []textinput.Model
	focus  int

	bus    *gesture.Bus
	resize *gesture.Resize

	styles  viz.Styles
	keys    keyMap
	help    help.Model
	compare bool
	status  string

	width  int
	height int
}

// NewModel builds the app around a machine. The machine's draft seeds the
// form.
func NewModel(machine *sim.Machine, opts Options) model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bus := opts.Bus
	if bus == nil {
		bus = gesture.NewBus()
	}

	m := model{
		machine: machine,
		store:   opts.Store,
		logger:  logger,
		bus:     bus,
		styles:  viz.NewStyles(viz.GetTheme(opts.Theme)),
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   120,
		height:  40,
	}
	m.resize = gesture.NewResize(bus, machine.SetChartWidth)

	m.inputs = make([]textinput.Model, len(params.Fields))
	for i := range params.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 16
		ti.Width = 12
		m.inputs[i] = ti
	}
	m.syncInputs()
	m.inputs[0].Focus()
	return m
}

// syncInputs copies the machine's draft into the text inputs.
func (m *model) syncInputs() {
	d := m.machine.Draft()
	for i, f := range params.Fields {
		m.inputs[i].SetValue(d.Value(f.Key))
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case keyMatches(msg, k.Quit):
		m.resize.Close()
		return m, tea.Quit
	case keyMatches(msg, k.Next):
		return m, m.moveFocus(1)
	case keyMatches(msg, k.Prev):
		return m, m.moveFocus(-1)
	case keyMatches(msg, k.Commit):
		ps := m.machine.Commit()
		m.status = fmt.Sprintf("applied, A=%.6f (%s)", ps.A, sim.ASource(ps))
		return m, nil
	case keyMatches(msg, k.Reset):
		m.resize.End()
		m.machine.ResetToDefaults()
		m.syncInputs()
		m.compare = false
		m.status = "reset to defaults"
		return m, nil
	case keyMatches(msg, k.AutoA):
		m.machine.ToggleAutoMode(!m.machine.Draft().UseAutoA())
		return m, nil
	case keyMatches(msg, k.Hysteresis):
		c := m.machine.Components()
		c.Hysteresis = !c.Hysteresis
		m.machine.SetComponents(c)
		return m, nil
	case keyMatches(msg, k.Impact):
		c := m.machine.Components()
		c.Impact = !c.Impact
		m.machine.SetComponents(c)
		return m, nil
	case keyMatches(msg, k.Compare):
		m.compare = !m.compare
		return m, nil
	case keyMatches(msg, k.Wider):
		m.machine.SetChartWidth(int(gesture.Clamp(float64(m.machine.ChartWidth() + viz.UnitsPerColumn*4))))
		return m, nil
	case keyMatches(msg, k.Narrower):
		m.machine.SetChartWidth(int(gesture.Clamp(float64(m.machine.ChartWidth() - viz.UnitsPerColumn*4))))
		return m, nil
	case keyMatches(msg, k.Theme):
		m.styles = viz.NewStyles(viz.Next(m.styles.Theme()))
		m.status = "theme " + m.styles.Theme().Name
		return m, nil
	case keyMatches(msg, k.Save):
		m.save()
		return m, nil
	case keyMatches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, m.updateFocused(msg)
}

// updateFocused forwards a key to the focused input and pushes its text
// into the draft when it changed.
func (m *model) updateFocused(msg tea.Msg) tea.Cmd {
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.machine.EditField(params.Fields[m.focus].Key, after)
	}
	return cmd
}

func (m *model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	n := len(m.inputs)
	m.focus = ((m.focus+delta)%n + n) % n
	return m.inputs[m.focus].Focus()
}

func (m *model) save() {
	if m.store == nil {
		m.status = "no run store configured"
		return
	}
	id, err := m.store.Save("", m.machine.Result())
	if err != nil {
		m.logger.Error("save run", "err", err)
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved run " + id
}

// handleX is the terminal column of the chart resize handle.
func (m model) handleX() int {
	return formWidth + chartColumns(m.machine.ChartWidth())
}

func chartColumns(viewportWidth int) int {
	return viewportWidth / viz.UnitsPerColumn
}

// handleMouse feeds the resize gesture. A left press on the handle starts a
// drag; motion and release go out on the bus, where the active gesture
// picks them up.
func (m model) handleMouse(msg tea.MouseMsg) model {
	x := float64(msg.X * viz.UnitsPerColumn)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && abs(msg.X-m.handleX()) <= 1 {
			m.resize.Begin(x, m.machine.ChartWidth())
		}
	case tea.MouseActionMotion:
		m.bus.Publish(gesture.Event{Kind: gesture.Move, X: x})
	case tea.MouseActionRelease:
		m.bus.Publish(gesture.Event{Kind: gesture.Up, X: x})
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Run starts the full-screen app and blocks until it exits.
func Run(machine *sim.Machine, opts Options) error {
	m := NewModel(machine, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if fm, ok := final.(model); ok {
		fm.resize.Close()
	}
	return err
}
