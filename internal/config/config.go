package config

import (
	"fmt"
	"os"

	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme    = "cyberpunk"
	DefaultDataDir  = "runs"
	DefaultLogLevel = "info"
)

// Config is the YAML profile. Params holds raw form text keyed by field
// name, so a profile goes through the same per-field fallback as typed
// input.
type Config struct {
	Theme      string            `yaml:"theme"`
	DataDir    string            `yaml:"data_dir"`
	LogLevel   string            `yaml:"log_level"`
	ChartWidth int               `yaml:"chart_width"`
	Preset     string            `yaml:"preset,omitempty"`
	AutoA      *bool             `yaml:"auto_a,omitempty"`
	Params     map[string]string `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:      DefaultTheme,
		DataDir:    DefaultDataDir,
		LogLevel:   DefaultLogLevel,
		ChartWidth: sim.DefaultChartWidth,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Draft builds the starting form: defaults, then the preset, then the
// profile's own params and auto/manual selector.
func (c *Config) Draft() (params.Draft, error) {
	d := params.DefaultDraft()
	if c.Preset != "" {
		p, err := GetPreset(c.Preset)
		if err != nil {
			return d, err
		}
		d = p.Apply(d)
	}
	d = d.WithValues(c.Params)
	if c.AutoA != nil {
		d = d.WithAutoA(*c.AutoA)
	}
	return d, nil
}

// FromApplied captures an applied parameter set as a profile.
func FromApplied(ps params.ParameterSet) *Config {
	cfg := DefaultConfig()
	auto := ps.UseAutoA
	cfg.AutoA = &auto
	cfg.Params = make(map[string]string, len(params.Fields))
	for _, f := range params.Fields {
		v, _ := ps.Get(f.Key)
		cfg.Params[string(f.Key)] = params.FormatValue(v)
	}
	return cfg
}
