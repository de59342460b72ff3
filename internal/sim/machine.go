package sim

import (
	"log/slog"

	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/physics"
)

// Apply resolves a draft into an applied parameter set. A is frozen here:
// the geometric estimate in auto mode, the manual value otherwise.
func Apply(d params.Draft) params.ParameterSet {
	ps := d.Resolve()
	ps.DerivedA = physics.EstimateA(ps.TireWidthMm, ps.MassKg, ps.Kappa)
	if ps.UseAutoA {
		ps.A = ps.DerivedA
	} else {
		ps.A = ps.ManualA
	}
	return ps
}

// Evaluate samples every curve of an applied parameter set.
func Evaluate(ps params.ParameterSet, c curve.Components) Result {
	crr, watts := curve.ReferencePoint(ps)
	return Result{
		Params:     ps,
		Components: c,
		Curve:      curve.Sample(ps, c),
		Comparison: curve.SampleComparison(ps),
		RefCrr:     crr,
		RefWatts:   watts,
	}
}

// Machine owns the draft and the applied parameter set. Draft edits only
// move the preview; charts follow the applied set, which changes on Commit
// and ResetToDefaults.
type Machine struct {
	logger *slog.Logger

	baseline   params.Draft
	draft      params.Draft
	preview    Preview
	components curve.Components
	chartWidth int
	result     Result
}

// New starts a machine from the built-in defaults.
func New(logger *slog.Logger) *Machine {
	return NewFrom(params.DefaultDraft(), logger)
}

// NewFrom starts a machine whose baseline, and therefore reset target, is
// the given draft.
func NewFrom(baseline params.Draft, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Machine{logger: logger, baseline: baseline}
	m.reset()
	return m
}

func (m *Machine) reset() {
	m.draft = m.baseline
	m.components = curve.AllComponents
	m.chartWidth = DefaultChartWidth
	m.refreshPreview()
	m.result = Evaluate(Apply(m.draft), m.components)
}

func (m *Machine) refreshPreview() {
	ps := m.draft.Resolve()
	auto := physics.EstimateA(ps.TireWidthMm, ps.MassKg, ps.Kappa)
	resolved := ps.ManualA
	if ps.UseAutoA {
		resolved = auto
	}
	m.preview = Preview{Values: ps, AutoA: auto, ResolvedA: resolved}
}

// EditField replaces the raw text of one draft field. Unknown keys are
// ignored.
func (m *Machine) EditField(key params.Field, raw string) {
	if _, ok := params.Lookup(key); !ok {
		m.logger.Debug("ignoring unknown field", "key", key)
		return
	}
	m.draft = m.draft.With(key, raw)
	m.refreshPreview()
}

// EditFields applies several raw overrides, keyed by field name.
func (m *Machine) EditFields(values map[string]string) {
	m.draft = m.draft.WithValues(values)
	m.refreshPreview()
}

// ToggleAutoMode sets the draft's auto/manual selector.
func (m *Machine) ToggleAutoMode(on bool) {
	m.draft = m.draft.WithAutoA(on)
	m.refreshPreview()
}

// Commit resolves the draft and replaces the applied set and its curves.
func (m *Machine) Commit() params.ParameterSet {
	ps := Apply(m.draft)
	m.result = Evaluate(ps, m.components)
	m.logger.Info("committed parameters",
		"A", ps.A, "source", ASource(ps),
		"width", ps.TireWidthMm, "pressure", [2]float64{ps.PMin, ps.PMax})
	return ps
}

// ResetToDefaults restores the baseline draft, applied set and display
// state.
func (m *Machine) ResetToDefaults() {
	m.reset()
	m.logger.Info("reset to defaults", "A", m.result.Params.A)
}

func (m *Machine) Draft() params.Draft          { return m.draft }
func (m *Machine) Preview() Preview             { return m.preview }
func (m *Machine) Applied() params.ParameterSet { return m.result.Params }
func (m *Machine) Result() Result               { return m.result }
func (m *Machine) Curve() []curve.Row           { return m.result.Curve }
func (m *Machine) Comparison() curve.Comparison { return m.result.Comparison }
func (m *Machine) Components() curve.Components { return m.components }
func (m *Machine) ChartWidth() int              { return m.chartWidth }

// SetComponents toggles the sub-series of the primary curve and re-samples
// the applied set. The applied parameters do not change.
func (m *Machine) SetComponents(c curve.Components) {
	if c == m.components {
		return
	}
	m.components = c
	m.result.Components = c
	m.result.Curve = curve.Sample(m.result.Params, c)
}

// SetChartWidth records the chart viewport width.
func (m *Machine) SetChartWidth(w int) {
	m.chartWidth = w
}
