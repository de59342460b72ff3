package params

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultB           = 0.004
	DefaultD           = 0.002
	DefaultP0          = 6.0
	DefaultGamma       = 1.8
	DefaultSpeedKph    = 30.0
	DefaultMassKg      = 65.0
	DefaultPMin        = 3.0
	DefaultPMax        = 9.0
	DefaultTireWidthMm = 28.0
	DefaultKappa       = 0.015
	DefaultManualA     = 0.012
)

// ParameterSet is one resolved set of model inputs. A and DerivedA are only
// meaningful on a committed set.
type ParameterSet struct {
	TireWidthMm float64 `json:"tireWidthMm" yaml:"tire_width_mm"`
	MassKg      float64 `json:"massKg" yaml:"mass_kg"`
	SpeedKph    float64 `json:"speedKph" yaml:"speed_kph"`
	B           float64 `json:"B" yaml:"b"`
	D           float64 `json:"D" yaml:"d"`
	P0          float64 `json:"p0" yaml:"p0"`
	Gamma       float64 `json:"gamma" yaml:"gamma"`
	PMin        float64 `json:"pMin" yaml:"p_min"`
	PMax        float64 `json:"pMax" yaml:"p_max"`
	Kappa       float64 `json:"kappa" yaml:"kappa"`
	ManualA     float64 `json:"manualA" yaml:"manual_a"`
	UseAutoA    bool    `json:"useAutoA" yaml:"use_auto_a"`
	A           float64 `json:"A" yaml:"a"`
	DerivedA    float64 `json:"derivedA" yaml:"derived_a"`
}

// Defaults returns the baseline inputs with auto mode enabled. A and
// DerivedA are left zero; a commit fills them.
func Defaults() ParameterSet {
	return ParameterSet{
		TireWidthMm: DefaultTireWidthMm,
		MassKg:      DefaultMassKg,
		SpeedKph:    DefaultSpeedKph,
		B:           DefaultB,
		D:           DefaultD,
		P0:          DefaultP0,
		Gamma:       DefaultGamma,
		PMin:        DefaultPMin,
		PMax:        DefaultPMax,
		Kappa:       DefaultKappa,
		ManualA:     DefaultManualA,
		UseAutoA:    true,
	}
}

// Get returns the numeric value stored under a field key.
func (p ParameterSet) Get(f Field) (float64, bool) {
	ptr := p.ref(f)
	if ptr == nil {
		return 0, false
	}
	return *ptr, true
}

// With returns a copy with one field replaced.
func (p ParameterSet) With(f Field, v float64) ParameterSet {
	if ptr := p.ref(f); ptr != nil {
		*ptr = v
	}
	return p
}

func (p *ParameterSet) ref(f Field) *float64 {
	switch f {
	case TireWidthMm:
		return &p.TireWidthMm
	case MassKg:
		return &p.MassKg
	case SpeedKph:
		return &p.SpeedKph
	case B:
		return &p.B
	case D:
		return &p.D
	case P0:
		return &p.P0
	case Gamma:
		return &p.Gamma
	case PMin:
		return &p.PMin
	case PMax:
		return &p.PMax
	case Kappa:
		return &p.Kappa
	case ManualA:
		return &p.ManualA
	}
	return nil
}

// ParseOrDefault converts raw form text to a float. Empty, non-numeric and
// non-finite input yields fallback.
func ParseOrDefault(raw string, fallback float64) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// ClampPositive returns v when it is finite and strictly positive.
func ClampPositive(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fallback
	}
	return v
}

// FormatValue renders a number the way it is shown in an input field.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
