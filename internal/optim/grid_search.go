package optim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/sim"
)

// Metric scores an evaluated parameter set. Lower is better.
type Metric func(sim.Result) float64

// MinWatts scores a set by the lowest total power on its curve.
func MinWatts(r sim.Result) float64 {
	best, ok := FromCurve(r.Curve)
	if !ok {
		return math.Inf(1)
	}
	return best.Watts
}

// RefWatts scores a set by its power at the reference pressure.
func RefWatts(r sim.Result) float64 {
	return r.RefWatts
}

// MetricByName resolves "min" or "ref".
func MetricByName(name string) (Metric, error) {
	switch name {
	case "min":
		return MinWatts, nil
	case "ref":
		return RefWatts, nil
	}
	return nil, fmt.Errorf("unknown metric %q (want min or ref)", name)
}

type GridSearch struct {
	fields []params.Field
	ranges [][]float64
}

func NewGridSearch(fields []params.Field, ranges [][]float64) *GridSearch {
	return &GridSearch{fields: fields, ranges: ranges}
}

// Search commits every combination of the grid on top of base and returns
// the combination with the lowest metric.
func (g *GridSearch) Search(
	ctx context.Context,
	base params.Draft,
	metric Metric,
) (map[params.Field]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[params.Field]float64

	err := g.searchRecursive(ctx, 0, base, make(map[params.Field]float64), metric, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	draft params.Draft,
	current map[params.Field]float64,
	metric Metric,
	best *float64,
	bestParams *map[params.Field]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.fields) {
		result := sim.Evaluate(sim.Apply(draft), curve.Components{})

		val := metric(result)
		if val < *best {
			*best = val
			*bestParams = make(map[params.Field]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	field := g.fields[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[params.Field]float64)
		for k, v := range current {
			next[k] = v
		}
		next[field] = val

		err := g.searchRecursive(ctx, depth+1, draft.With(field, params.FormatValue(val)), next, metric, best, bestParams)
		if err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// ParseRange reads "lo:hi:n" into n evenly spaced values.
func ParseRange(spec string) ([]float64, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("range %q: want lo:hi:n", spec)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", spec, err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", spec, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", spec, err)
	}
	if n < 1 || n > 1000 {
		return nil, fmt.Errorf("range %q: step count must be 1-1000", spec)
	}
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) || hi < lo {
		return nil, fmt.Errorf("range %q: need finite lo <= hi", spec)
	}
	return Linspace(lo, hi, n), nil
}
