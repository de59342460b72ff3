package curve

import (
	"fmt"
	"math"

	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/physics"
)

// MinVariantWidthMm is the narrowest width a comparison variant may take.
const MinVariantWidthMm = 10.0

// WidthOffsetsMm are the offsets applied to the base width, in series order.
var WidthOffsetsMm = []float64{-2, 0, 2}

// Variant is one width of the sensitivity comparison.
type Variant struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	WidthMm float64 `json:"widthMm"`
	A       float64 `json:"A"`
}

// Comparison holds the width-sensitivity sweep: one total-power series per
// variant over the same pressure axis.
type Comparison struct {
	Rows     []Row     `json:"rows"`
	Variants []Variant `json:"variants"`
}

// VariantKey is the series key of the i-th variant.
func VariantKey(i int) string {
	return fmt.Sprintf("widthVariant%d", i)
}

// Variants builds the width variants of ps. Each variant derives its own A
// from geometry, whatever the base set's auto/manual selector says.
func Variants(ps params.ParameterSet) []Variant {
	base := finiteOr(ps.TireWidthMm, params.DefaultTireWidthMm)
	out := make([]Variant, len(WidthOffsetsMm))
	for i, off := range WidthOffsetsMm {
		w := math.Max(MinVariantWidthMm, base+off)
		out[i] = Variant{
			Key:     VariantKey(i),
			Label:   fmt.Sprintf("%.1f mm", w),
			WidthMm: w,
			A:       physics.EstimateA(w, ps.MassKg, ps.Kappa),
		}
	}
	return out
}

// SampleComparison samples total power for every width variant. Only A
// differs between variants; B, D, p0, γ, mass and speed come from ps.
func SampleComparison(ps params.ParameterSet) Comparison {
	m := newModel(ps)
	variants := Variants(ps)
	rows := make([]Row, 0, SamplePoints)
	for _, p := range Pressures(ps) {
		values := make(map[string]float64, len(variants))
		for _, v := range variants {
			ch, ci := m.terms(v.A, p)
			values[v.Key] = bounded((ch + ci) * m.scale)
		}
		rows = append(rows, Row{P: p, Values: values})
	}
	return Comparison{Rows: rows, Variants: variants}
}
