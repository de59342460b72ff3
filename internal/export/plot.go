package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/sim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Formats lists the file extensions Save understands.
var Formats = []string{".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff"}

// Kind selects which chart to draw.
type Kind string

const (
	KindCurve      Kind = "curve"
	KindComparison Kind = "compare"
)

// Options sizes the image in inches.
type Options struct {
	Kind   Kind
	Width  float64
	Height float64
}

func DefaultOptions() Options {
	return Options{Kind: KindCurve, Width: 8, Height: 5}
}

// CheckFormat reports whether path has a supported image extension.
func CheckFormat(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range Formats {
		if ext == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported image format %q (want one of %s)", ext, strings.Join(Formats, " "))
}

type series struct {
	key   string
	label string
}

func curveSeries(rows []curve.Row) []series {
	out := []series{{curve.KeyTotal, "total"}}
	if curve.Has(rows, curve.KeyHysteresis) {
		out = append(out, series{curve.KeyHysteresis, "hysteresis"})
	}
	if curve.Has(rows, curve.KeyImpact) {
		out = append(out, series{curve.KeyImpact, "impact"})
	}
	return out
}

func comparisonSeries(cmp curve.Comparison) []series {
	out := make([]series, len(cmp.Variants))
	for i, v := range cmp.Variants {
		out[i] = series{v.Key, v.Label}
	}
	return out
}

// Plot builds the chart for a committed result.
func Plot(result sim.Result, kind Kind) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "pressure (bar)"
	p.Y.Label.Text = "rolling loss (W)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	var rows []curve.Row
	var lines []series
	switch kind {
	case KindCurve, "":
		p.Title.Text = fmt.Sprintf("Rolling loss at %.1f km/h, A=%.6f (%s)",
			result.Params.SpeedKph, result.Params.A, result.ASource())
		rows = result.Curve
		lines = curveSeries(rows)
	case KindComparison:
		p.Title.Text = "Width sensitivity"
		rows = result.Comparison.Rows
		lines = comparisonSeries(result.Comparison)
	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}

	for i, s := range lines {
		pts := make(plotter.XYs, len(rows))
		for j, r := range rows {
			pts[j].X = r.P
			pts[j].Y = r.Values[s.key]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.key, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		if i > 0 && kind != KindComparison {
			line.LineStyle.Dashes = plotutil.Dashes(i)
		}
		p.Add(line)
		p.Legend.Add(s.label, line)
	}

	return p, nil
}

// Save renders the chart to path. The format follows the extension.
func Save(path string, result sim.Result, opts Options) error {
	if err := CheckFormat(path); err != nil {
		return err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}

	p, err := Plot(result, opts.Kind)
	if err != nil {
		return err
	}
	if err := p.Save(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
