package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/optim"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/sim"
	"github.com/san-kum/crrsim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of form edits and commits.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. Within a step the order is
// reset, edits, auto toggle, components, commit, save.
type ScenarioStep struct {
	Reset      bool              `yaml:"reset"`
	Set        map[string]string `yaml:"set"`
	AutoA      *bool             `yaml:"auto_a"`
	Hysteresis *bool             `yaml:"hysteresis"`
	Impact     *bool             `yaml:"impact"`
	Commit     bool              `yaml:"commit"`
	SaveAs     string            `yaml:"save_as"`
}

// StepResult is the machine state after a step.
type StepResult struct {
	Step    int
	Applied params.ParameterSet
	Preview sim.Preview
	RunID   string
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &scenario, nil
}

// Runner drives a machine through scenarios. Store may be nil when no step
// saves.
type Runner struct {
	Machine *sim.Machine
	Store   *storage.Store
	Logger  *slog.Logger
}

// Run executes all steps of a scenario.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := r.Machine
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Debug("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps))

		if step.Reset {
			m.ResetToDefaults()
		}
		if len(step.Set) > 0 {
			m.EditFields(step.Set)
		}
		if step.AutoA != nil {
			m.ToggleAutoMode(*step.AutoA)
		}
		if step.Hysteresis != nil || step.Impact != nil {
			c := m.Components()
			if step.Hysteresis != nil {
				c.Hysteresis = *step.Hysteresis
			}
			if step.Impact != nil {
				c.Impact = *step.Impact
			}
			m.SetComponents(c)
		}
		if step.Commit {
			m.Commit()
		}

		res := StepResult{Step: i + 1, Applied: m.Applied(), Preview: m.Preview()}
		if step.SaveAs != "" {
			if r.Store == nil {
				return results, fmt.Errorf("step %d: save_as %q without a run store", i+1, step.SaveAs)
			}
			id, err := r.Store.Save(step.SaveAs, m.Result())
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.RunID = id
		}

		results = append(results, res)
	}

	return results, nil
}

// WidthSweep re-evaluates a base draft over a range of tire widths.
type WidthSweep struct {
	Base     params.Draft
	MinMm    float64
	MaxMm    float64
	NumSteps int
	Workers  int
}

// SweepResult holds the outcome at one width.
type SweepResult struct {
	WidthMm    float64       `json:"widthMm"`
	A          float64       `json:"A"`
	RefWatts   float64       `json:"refWatts"`
	Optimum    optim.Optimum `json:"optimum"`
	Stationary *float64      `json:"stationaryPressure,omitempty"`
}

// RunSweep executes a width sweep. Widths are committed in auto mode so A
// follows the geometry.
func RunSweep(ctx context.Context, sweep *WidthSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if !(sweep.MinMm > 0) || sweep.MaxMm < sweep.MinMm {
		return nil, fmt.Errorf("invalid width range %.1f-%.1f mm", sweep.MinMm, sweep.MaxMm)
	}

	widths := optim.Linspace(sweep.MinMm, sweep.MaxMm, sweep.NumSteps)
	drafts := make([]params.Draft, len(widths))
	for i, w := range widths {
		drafts[i] = sweep.Base.WithAutoA(true).With(params.TireWidthMm, params.FormatValue(w))
	}

	evaluated, err := sim.NewEnsemble(curve.Components{}, sweep.Workers).Run(ctx, drafts)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(evaluated))
	for i, r := range evaluated {
		best, _ := optim.FromCurve(r.Curve)
		results[i] = SweepResult{
			WidthMm:  r.Params.TireWidthMm,
			A:        r.Params.A,
			RefWatts: r.RefWatts,
			Optimum:  best,
		}
		if pStar, ok := optim.Stationary(r.Params); ok {
			results[i].Stationary = &pStar
		}
	}
	return results, nil
}

// MonteCarloConfig perturbs fields of a base draft by a relative amount to
// see how stable the optimum pressure is.
type MonteCarloConfig struct {
	Base         params.Draft
	Fields       []params.Field
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult is one perturbed trial.
type MonteCarloResult struct {
	TrialID int
	Params  params.ParameterSet
	Optimum optim.Optimum
}

// RunMonteCarlo executes trials with uniform relative perturbations.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", cfg.NumTrials)
	}
	if cfg.Perturbation < 0 || math.IsNaN(cfg.Perturbation) || math.IsInf(cfg.Perturbation, 0) {
		return nil, fmt.Errorf("invalid perturbation %v", cfg.Perturbation)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	base := cfg.Base.Resolve()
	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		d := cfg.Base
		for _, f := range cfg.Fields {
			v, ok := base.Get(f)
			if !ok {
				continue
			}
			v *= 1 + (rng.Float64()-0.5)*2*cfg.Perturbation
			d = d.With(f, params.FormatValue(v))
		}

		ps := sim.Apply(d)
		best, _ := optim.FromCurve(curve.Sample(ps, curve.Components{}))
		results = append(results, MonteCarloResult{TrialID: trial, Params: ps, Optimum: best})
	}

	return results, nil
}

// MonteCarloStats summarizes the optimum pressure across trials.
func MonteCarloStats(results []MonteCarloResult) (mean, stddev float64) {
	if len(results) == 0 {
		return 0, 0
	}
	for _, r := range results {
		mean += r.Optimum.Pressure
	}
	mean /= float64(len(results))
	for _, r := range results {
		d := r.Optimum.Pressure - mean
		stddev += d * d
	}
	stddev = math.Sqrt(stddev / float64(len(results)))
	return mean, stddev
}
