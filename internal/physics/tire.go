package physics

import (
	"math"

	"github.com/san-kum/crrsim/internal/params"
	"github.com/shopspring/decimal"
)

const (
	// G is standard gravity in m/s².
	G = 9.80665
	// BaseRimRadiusM is half of a 622 mm (700C) bead seat diameter.
	BaseRimRadiusM = 0.622 / 2
	// AutoAPrecision is the number of decimals kept by EstimateA.
	AutoAPrecision = 6
)

// NormalForce is the wheel load in newtons.
func NormalForce(massKg float64) float64 {
	n := params.ClampPositive(massKg, params.DefaultMassKg) * G
	if math.IsInf(n, 0) {
		return params.DefaultMassKg * G
	}
	return n
}

// EffectiveRadius approximates the loaded wheel radius in metres as the rim
// radius plus half the tire width.
func EffectiveRadius(widthMm float64) float64 {
	w := params.ClampPositive(widthMm, params.DefaultTireWidthMm) / 1000
	return BaseRimRadiusM + w/2
}

// EstimateA derives the hysteresis coefficient from geometry, mass and the
// lumped material coefficient:
//
//	A ≈ κ·N / (w·R·10⁵)
//
// Non-finite or non-positive inputs are replaced by their defaults. Inputs
// that overflow the estimate give the estimate of the default tire.
func EstimateA(widthMm, massKg, kappa float64) float64 {
	widthMm = params.ClampPositive(widthMm, params.DefaultTireWidthMm)
	kappa = params.ClampPositive(kappa, params.DefaultKappa)

	n := NormalForce(massKg)
	w := widthMm / 1000
	r := EffectiveRadius(widthMm)

	a := kappa * n / (w * r * 1e5)
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return EstimateA(params.DefaultTireWidthMm, params.DefaultMassKg, params.DefaultKappa)
	}
	return roundDecimals(a, AutoAPrecision)
}

// HysteresisCoefficient is the A/p + B term.
func HysteresisCoefficient(a, b, p float64) float64 {
	return a/p + b
}

// ImpactCoefficient is the D·(p/p0)^γ term. It is zero whenever D is,
// however large the power gets.
func ImpactCoefficient(d, p, p0, gamma float64) float64 {
	if d == 0 {
		return 0
	}
	return d * math.Pow(p/p0, gamma)
}

// PowerScale converts a rolling resistance coefficient to watts: N·v. A
// product that overflows falls back to the default rider and speed.
func PowerScale(massKg, speedKph float64) float64 {
	v := params.ClampPositive(speedKph, params.DefaultSpeedKph) / 3.6
	s := NormalForce(massKg) * v
	if math.IsInf(s, 0) {
		return NormalForce(params.DefaultMassKg) * params.DefaultSpeedKph / 3.6
	}
	return s
}

func roundDecimals(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
