package sim

import (
	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/params"
)

// DefaultChartWidth is the chart viewport width, in viewport units, at start
// and after a reset.
const DefaultChartWidth = 420

// Preview is derived from the draft on every edit. It never reaches the
// charts until a commit.
type Preview struct {
	Values    params.ParameterSet
	AutoA     float64
	ResolvedA float64
}

// Result is the applied parameter set together with every curve sampled
// from it.
type Result struct {
	Params     params.ParameterSet `json:"params"`
	Components curve.Components    `json:"components"`
	Curve      []curve.Row         `json:"curve"`
	Comparison curve.Comparison    `json:"comparison"`
	RefCrr     float64             `json:"refCrr"`
	RefWatts   float64             `json:"refWatts"`
}

// ASource names where the applied A came from.
func (r Result) ASource() string {
	return ASource(r.Params)
}

// ASource names where A of a committed set came from.
func ASource(ps params.ParameterSet) string {
	if ps.UseAutoA {
		return "auto"
	}
	return "manual"
}
