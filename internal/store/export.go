package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/optim"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/sim"
)

type ExportData struct {
	Params     params.ParameterSet `json:"params"`
	ASource    string              `json:"aSource"`
	RefCrr     float64             `json:"refCrr"`
	RefWatts   float64             `json:"refWatts"`
	Optimum    *optim.Optimum      `json:"optimum,omitempty"`
	Stationary *float64            `json:"stationaryPressure,omitempty"`
	Points     int                 `json:"points"`
	Curve      []curve.Row         `json:"curve"`
	Comparison curve.Comparison    `json:"comparison"`
}

func NewExportData(result sim.Result) ExportData {
	data := ExportData{
		Params:     result.Params,
		ASource:    result.ASource(),
		RefCrr:     result.RefCrr,
		RefWatts:   result.RefWatts,
		Points:     len(result.Curve),
		Curve:      result.Curve,
		Comparison: result.Comparison,
	}
	if best, ok := optim.FromCurve(result.Curve); ok {
		data.Optimum = &best
	}
	if p, ok := optim.Stationary(result.Params); ok {
		data.Stationary = &p
	}
	return data
}

// WriteJSON encodes the export document to w.
func WriteJSON(w io.Writer, result sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(result))
}

func ExportJSON(path string, result sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, result)
}

func ExportJSONStdout(result sim.Result) error {
	return WriteJSON(os.Stdout, result)
}
