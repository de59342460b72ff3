package optim

import (
	"math"

	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/params"
)

// Optimum is the lowest-loss pressure found on a sampled curve.
type Optimum struct {
	Pressure float64 `json:"pressure"`
	Watts    float64 `json:"watts"`
	// Interior is false when the minimum sits on a domain bound, so the
	// true optimum may lie outside the sampled range.
	Interior bool `json:"interior"`
}

// FromCurve scans the total power series of rows.
func FromCurve(rows []curve.Row) (Optimum, bool) {
	idx := -1
	best := math.Inf(1)
	for i, r := range rows {
		v, ok := r.Values[curve.KeyTotal]
		if ok && v < best {
			best = v
			idx = i
		}
	}
	if idx < 0 {
		return Optimum{}, false
	}
	return Optimum{
		Pressure: rows[idx].P,
		Watts:    best,
		Interior: idx > 0 && idx < len(rows)-1,
	}, true
}

// Stationary returns the pressure where dCrr/dp = 0:
//
//	p* = (A·p0^γ / (D·γ))^(1/(γ+1))
//
// It exists only for A, D and γ all positive.
func Stationary(ps params.ParameterSet) (float64, bool) {
	a, d, g := ps.A, ps.D, ps.Gamma
	p0 := params.ClampPositive(ps.P0, params.DefaultP0)
	if !(a > 0 && d > 0 && g > 0) || math.IsInf(a, 0) || math.IsInf(d, 0) || math.IsInf(g, 0) {
		return 0, false
	}
	p := math.Pow(a*math.Pow(p0, g)/(d*g), 1/(g+1))
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return p, true
}
