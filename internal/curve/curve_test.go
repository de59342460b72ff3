package curve

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func committedDefaults() params.ParameterSet {
	ps := params.Defaults()
	ps.DerivedA = physics.EstimateA(ps.TireWidthMm, ps.MassKg, ps.Kappa)
	ps.A = ps.DerivedA
	return ps
}

func TestSampleAxis(t *testing.T) {
	ps := committedDefaults()
	rows := Sample(ps, Components{})

	require.Len(t, rows, SamplePoints)
	assert.Equal(t, ps.PMin, rows[0].P)
	assert.Equal(t, ps.PMax, rows[len(rows)-1].P)
	for i := 0; i < len(rows)-1; i++ {
		assert.Less(t, rows[i].P, rows[i+1].P, "row %d", i)
	}
}

func TestSampleComponents(t *testing.T) {
	ps := committedDefaults()

	tests := []struct {
		name string
		c    Components
		keys []string
	}{
		{"total only", Components{}, []string{KeyTotal}},
		{"hysteresis", Components{Hysteresis: true}, []string{KeyHysteresis, KeyTotal}},
		{"impact", Components{Impact: true}, []string{KeyImpact, KeyTotal}},
		{"all", AllComponents, []string{KeyHysteresis, KeyImpact, KeyTotal}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Sample(ps, tt.c)
			for _, r := range rows {
				assert.Equal(t, tt.keys, r.Keys())
			}
		})
	}
}

func TestSampleComponentsSumToTotal(t *testing.T) {
	rows := Sample(committedDefaults(), AllComponents)
	for _, r := range rows {
		assert.InDelta(t, r.Values[KeyTotal], r.Values[KeyHysteresis]+r.Values[KeyImpact], 1e-9)
	}
}

func TestSampleDeterministic(t *testing.T) {
	ps := committedDefaults()
	assert.Equal(t, Sample(ps, AllComponents), Sample(ps, AllComponents))
	assert.Equal(t, SampleComparison(ps), SampleComparison(ps))
}

func TestSampleFinite(t *testing.T) {
	sets := []params.ParameterSet{
		committedDefaults(),
		committedDefaults().With(params.PMin, 0.01).With(params.PMax, 20),
		committedDefaults().With(params.PMin, 0).With(params.PMax, -1),
		committedDefaults().With(params.P0, 0).With(params.Gamma, -2),
		committedDefaults().With(params.PMin, 12),
		committedDefaults().With(params.MassKg, -5).With(params.SpeedKph, 0),
		committedDefaults().With(params.PMin, math.NaN()).With(params.PMax, math.Inf(1)),
		committedDefaults().With(params.MassKg, 1e308),
		committedDefaults().With(params.SpeedKph, 1e308),
		committedDefaults().With(params.D, 0).With(params.Gamma, 2000),
		committedDefaults().With(params.Gamma, 2000),
		committedDefaults().With(params.D, -1).With(params.Gamma, 2000).With(params.PMin, 1e-320),
		committedDefaults().With(params.PMin, 1e-320).With(params.PMax, math.MaxFloat64),
		committedDefaults().With(params.P0, 1e-320),
		committedDefaults().With(params.Kappa, math.MaxFloat64).With(params.TireWidthMm, 1e-320),
		withA(committedDefaults(), 1e308),
		withA(committedDefaults(), -1e308),
	}

	for i, ps := range sets {
		for _, r := range Sample(ps, AllComponents) {
			require.False(t, math.IsNaN(r.P) || math.IsInf(r.P, 0), "set %d", i)
			require.Greater(t, r.P, 0.0, "set %d", i)
			for k, v := range r.Values {
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "set %d key %s", i, k)
				require.LessOrEqual(t, math.Abs(v), Ceiling, "set %d key %s", i, k)
			}
		}
		crr, watts := ReferencePoint(ps)
		require.False(t, math.IsNaN(crr) || math.IsInf(crr, 0), "set %d", i)
		require.False(t, math.IsNaN(watts) || math.IsInf(watts, 0), "set %d", i)
		for _, r := range SampleComparison(ps).Rows {
			for k, v := range r.Values {
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "set %d key %s", i, k)
			}
		}
	}
}

func withA(ps params.ParameterSet, a float64) params.ParameterSet {
	ps.UseAutoA = false
	ps.ManualA = a
	ps.A = a
	return ps
}

func TestSampleHugeMassUsesDefaultScale(t *testing.T) {
	huge := committedDefaults().With(params.MassKg, 1e308)
	base := committedDefaults()
	// the scale falls back, the coefficients do not depend on mass
	assert.Equal(t, Sample(base, AllComponents), Sample(huge, AllComponents))
}

func TestDomainFallback(t *testing.T) {
	tests := []struct {
		name       string
		pMin, pMax float64
		wantMin    float64
		wantMax    float64
	}{
		{"valid", 2, 5, 2, 5},
		{"zero min", 0, 5, params.DefaultPMin, 5},
		{"negative max", 2, -1, params.DefaultPMin, params.DefaultPMax},
		{"inverted", 8, 4, params.DefaultPMin, params.DefaultPMax},
		{"equal", 4, 4, params.DefaultPMin, params.DefaultPMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := params.Defaults().With(params.PMin, tt.pMin).With(params.PMax, tt.pMax)
			gotMin, gotMax := Domain(ps)
			assert.Equal(t, tt.wantMin, gotMin)
			assert.Equal(t, tt.wantMax, gotMax)
		})
	}
}

func TestReferencePoint(t *testing.T) {
	ps := committedDefaults()
	aEst := physics.EstimateA(28, 65, 0.015)

	ch := aEst/6.0 + 0.004
	ci := 0.002
	want := (ch + ci) * 65 * physics.G * (30 / 3.6)

	crr, watts := ReferencePoint(ps)
	assert.InDelta(t, ch+ci, crr, 1e-12)
	assert.InDelta(t, want, watts, 1e-9)
	assert.InDelta(t, 41.17, watts, 0.05)
}

func TestComparisonVariants(t *testing.T) {
	ps := committedDefaults()
	cmp := SampleComparison(ps)

	require.Len(t, cmp.Variants, 3)
	assert.Equal(t, "26.0 mm", cmp.Variants[0].Label)
	assert.Equal(t, "28.0 mm", cmp.Variants[1].Label)
	assert.Equal(t, "30.0 mm", cmp.Variants[2].Label)
	for i, v := range cmp.Variants {
		assert.Equal(t, VariantKey(i), v.Key)
		assert.Equal(t, physics.EstimateA(v.WidthMm, ps.MassKg, ps.Kappa), v.A)
	}

	require.Len(t, cmp.Rows, SamplePoints)
	for _, r := range cmp.Rows {
		assert.ElementsMatch(t, []string{"widthVariant0", "widthVariant1", "widthVariant2"}, r.Keys())
		// narrower tire, larger A, larger loss
		assert.Greater(t, r.Values["widthVariant0"], r.Values["widthVariant2"])
	}
}

func TestComparisonIgnoresManualA(t *testing.T) {
	auto := committedDefaults()
	manual := auto
	manual.UseAutoA = false
	manual.ManualA = 0.05
	manual.A = 0.05

	assert.Equal(t, SampleComparison(auto), SampleComparison(manual))

	base := Sample(auto, Components{})
	mid := SampleComparison(auto).Rows
	for i := range base {
		assert.InDelta(t, base[i].Values[KeyTotal], mid[i].Values["widthVariant1"], 1e-9)
	}
}

func TestComparisonWidthFloor(t *testing.T) {
	ps := committedDefaults().With(params.TireWidthMm, 10)
	v := Variants(ps)
	assert.Equal(t, 10.0, v[0].WidthMm)
	assert.Equal(t, "10.0 mm", v[0].Label)
	assert.Equal(t, 10.0, v[1].WidthMm)
	assert.Equal(t, 12.0, v[2].WidthMm)
}

func TestRowJSON(t *testing.T) {
	r := Row{P: 4.5, Values: map[string]float64{KeyTotal: 30, KeyImpact: 5}}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"p":4.5,"total":30,"impact":5}`, string(data))

	var back Row
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}

func TestColumn(t *testing.T) {
	rows := Sample(committedDefaults(), Components{Impact: true})
	ps := Column(rows, KeyPressure)
	totals := Column(rows, KeyTotal)
	require.Len(t, ps, SamplePoints)
	require.Len(t, totals, SamplePoints)
	assert.Equal(t, rows[10].P, ps[10])
	assert.True(t, Has(rows, KeyImpact))
	assert.False(t, Has(rows, KeyHysteresis))
	assert.False(t, Has(nil, KeyTotal))
}
