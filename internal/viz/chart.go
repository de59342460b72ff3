package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/optim"
	"github.com/san-kum/crrsim/internal/sim"
)

// UnitsPerColumn is the number of viewport units one terminal column
// represents.
const UnitsPerColumn = 7

// yAxisColumns is the space asciigraph spends on labels left of the plot.
const yAxisColumns = 12

// ChartOptions sizes a chart.
type ChartOptions struct {
	// ViewportWidth is the chart width in viewport units.
	ViewportWidth int
	Height        int
	Theme         Theme
	Caption       string
}

// Columns converts a viewport width to terminal columns available for the
// plot body.
func Columns(viewportWidth int) int {
	return max(viewportWidth/UnitsPerColumn-yAxisColumns, 8)
}

// Series is one named line.
type Series struct {
	Key   string
	Label string
}

// CurveSeries lists the lines present on a primary curve, total first.
func CurveSeries(rows []curve.Row) []Series {
	out := []Series{{curve.KeyTotal, "total"}}
	if curve.Has(rows, curve.KeyHysteresis) {
		out = append(out, Series{curve.KeyHysteresis, "hysteresis"})
	}
	if curve.Has(rows, curve.KeyImpact) {
		out = append(out, Series{curve.KeyImpact, "impact"})
	}
	return out
}

// ComparisonSeries lists the width variants in order.
func ComparisonSeries(cmp curve.Comparison) []Series {
	out := make([]Series, len(cmp.Variants))
	for i, v := range cmp.Variants {
		out[i] = Series{v.Key, v.Label}
	}
	return out
}

// Render plots the given series of rows with asciigraph. Rows with a
// missing or non-finite value in any series are left out.
func Render(rows []curve.Row, series []Series, opts ChartOptions) string {
	rows = drawable(rows, series)
	if len(rows) < 2 || len(series) == 0 {
		return ""
	}

	data := make([][]float64, len(series))
	legends := make([]string, len(series))
	colors := make([]asciigraph.AnsiColor, len(series))
	lo := math.Inf(1)
	for i, s := range series {
		data[i] = curve.Column(rows, s.Key)
		legends[i] = s.Label
		colors[i] = opts.Theme.SeriesColor(i)
		for _, v := range data[i] {
			lo = math.Min(lo, v)
		}
	}

	height := opts.Height
	if height <= 0 {
		height = 12
	}

	graphOpts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(Columns(opts.ViewportWidth)),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.AxisColor(opts.Theme.Axis),
	}
	if lo > 0 {
		graphOpts = append(graphOpts, asciigraph.LowerBound(0))
	}
	if opts.Caption != "" {
		graphOpts = append(graphOpts, asciigraph.Caption(opts.Caption))
	}

	return asciigraph.PlotMany(data, graphOpts...)
}

func drawable(rows []curve.Row, series []Series) []curve.Row {
	out := make([]curve.Row, 0, len(rows))
	for _, r := range rows {
		ok := finite(r.P)
		for _, s := range series {
			v, has := r.Values[s.Key]
			ok = ok && has && finite(v)
		}
		if ok {
			out = append(out, r)
		}
	}
	return out
}

// RenderCurve draws the primary chart of a committed result.
func RenderCurve(r sim.Result, opts ChartOptions) string {
	if opts.Caption == "" {
		pMin, pMax := curve.Domain(r.Params)
		opts.Caption = fmt.Sprintf("W vs bar  %.1f-%.1f bar", pMin, pMax)
	}
	return Render(r.Curve, CurveSeries(r.Curve), opts)
}

// RenderComparison draws the width-sensitivity chart of a committed result.
func RenderComparison(r sim.Result, opts ChartOptions) string {
	if opts.Caption == "" {
		opts.Caption = "total W by tire width"
	}
	return Render(r.Comparison.Rows, ComparisonSeries(r.Comparison), opts)
}

// Summary is the applied parameter readout.
func Summary(r sim.Result) string {
	ps := r.Params
	var b strings.Builder
	fmt.Fprintf(&b, "A        %.6f (%s)\n", ps.A, r.ASource())
	if !ps.UseAutoA {
		fmt.Fprintf(&b, "auto A   %.6f\n", ps.DerivedA)
	}
	fmt.Fprintf(&b, "Crr@p0   %.5f  at %.2f bar\n", r.RefCrr, ps.P0)
	fmt.Fprintf(&b, "P@p0     %.1f W  at %.1f km/h, %.0f kg\n", r.RefWatts, ps.SpeedKph, ps.MassKg)
	if best, ok := optim.FromCurve(r.Curve); ok {
		note := ""
		if !best.Interior {
			note = "  (at range edge)"
		}
		fmt.Fprintf(&b, "min loss %.1f W  at %.2f bar%s\n", best.Watts, best.Pressure, note)
	}
	return b.String()
}
