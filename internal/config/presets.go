package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/crrsim/internal/params"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named road surface. Rougher surfaces carry a larger impact
// coefficient and a steeper exponent.
type Preset struct {
	Name        string
	Description string
	Params      map[string]string
}

// Apply overlays the preset onto a draft.
func (p *Preset) Apply(d params.Draft) params.Draft {
	return d.WithValues(p.Params)
}

var Presets = map[string]*Preset{
	"smooth": {
		Name:        "smooth",
		Description: "velodrome or fresh tarmac",
		Params:      map[string]string{"B": "0.003", "D": "0.001", "gamma": "1.6"},
	},
	"asphalt": {
		Name:        "asphalt",
		Description: "typical road asphalt",
		Params:      map[string]string{"B": "0.004", "D": "0.002", "gamma": "1.8"},
	},
	"chipseal": {
		Name:        "chipseal",
		Description: "coarse chip seal",
		Params:      map[string]string{"B": "0.004", "D": "0.004", "gamma": "2.2", "p0": "5.5"},
	},
	"gravel": {
		Name:        "gravel",
		Description: "hardpack gravel on wide tires",
		Params: map[string]string{
			"tireWidthMm": "40", "B": "0.005", "D": "0.008", "gamma": "2.6",
			"p0": "3.5", "pMin": "1.5", "pMax": "5",
		},
	},
}

func GetPreset(name string) (*Preset, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
