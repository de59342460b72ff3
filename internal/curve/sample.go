package curve

import (
	"math"

	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/physics"
)

// SamplePoints is the fixed resolution of every sampled curve.
const SamplePoints = 240

// Ceiling bounds the magnitude of every sampled value and of the reference
// coefficient, so extreme inputs still give a finite, drawable curve.
const Ceiling = 1e12

// Components selects the optional sub-series of Sample.
type Components struct {
	Hysteresis bool `json:"hysteresis"`
	Impact     bool `json:"impact"`
}

// AllComponents shows both sub-series.
var AllComponents = Components{Hysteresis: true, Impact: true}

// Domain returns the pressure axis bounds used for sampling. Non-finite or
// non-positive bounds fall back to defaults, and an empty or inverted
// interval falls back to the default interval.
func Domain(ps params.ParameterSet) (pMin, pMax float64) {
	pMin = params.ClampPositive(ps.PMin, params.DefaultPMin)
	pMax = params.ClampPositive(ps.PMax, params.DefaultPMax)
	if pMin >= pMax {
		return params.DefaultPMin, params.DefaultPMax
	}
	return pMin, pMax
}

// Pressures returns the SamplePoints evenly spaced pressures of the domain,
// first and last exactly at the bounds.
func Pressures(ps params.ParameterSet) []float64 {
	pMin, pMax := Domain(ps)
	out := make([]float64, SamplePoints)
	step := (pMax - pMin) / float64(SamplePoints-1)
	for i := range out {
		out[i] = pMin + float64(i)*step
	}
	out[SamplePoints-1] = pMax
	return out
}

// model holds the sanitized terms shared by both samplers.
type model struct {
	b, d, p0, gamma float64
	scale           float64
}

func newModel(ps params.ParameterSet) model {
	return model{
		b:     finiteOr(ps.B, params.DefaultB),
		d:     finiteOr(ps.D, params.DefaultD),
		p0:    params.ClampPositive(ps.P0, params.DefaultP0),
		gamma: finiteOr(ps.Gamma, params.DefaultGamma),
		scale: physics.PowerScale(ps.MassKg, ps.SpeedKph),
	}
}

func (m model) terms(a, p float64) (ch, ci float64) {
	ch = physics.HysteresisCoefficient(a, m.b, p)
	ci = physics.ImpactCoefficient(m.d, p, m.p0, m.gamma)
	return ch, ci
}

// Sample evaluates the rolling loss model of an applied parameter set over
// its pressure domain. Every row carries total power in watts; hysteresis
// and impact power are added when requested.
func Sample(ps params.ParameterSet, c Components) []Row {
	m := newModel(ps)
	a := finiteOr(ps.A, 0)
	rows := make([]Row, 0, SamplePoints)
	for _, p := range Pressures(ps) {
		ch, ci := m.terms(a, p)
		values := map[string]float64{KeyTotal: bounded((ch + ci) * m.scale)}
		if c.Hysteresis {
			values[KeyHysteresis] = bounded(ch * m.scale)
		}
		if c.Impact {
			values[KeyImpact] = bounded(ci * m.scale)
		}
		rows = append(rows, Row{P: p, Values: values})
	}
	return rows
}

// ReferencePoint returns Crr and power at the reference pressure p0.
func ReferencePoint(ps params.ParameterSet) (crr, watts float64) {
	m := newModel(ps)
	ch, ci := m.terms(finiteOr(ps.A, 0), m.p0)
	crr = bounded(ch + ci)
	return crr, bounded(crr * m.scale)
}

// bounded clamps v to ±Ceiling. NaN, which only an indeterminate term can
// produce, reads as zero.
func bounded(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-Ceiling, math.Min(Ceiling, v))
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
