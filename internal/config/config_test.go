package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/crrsim/internal/params"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != DefaultTheme {
		t.Errorf("expected theme %s, got %s", DefaultTheme, cfg.Theme)
	}
	if cfg.ChartWidth != 420 {
		t.Errorf("expected chart width 420, got %d", cfg.ChartWidth)
	}
	d, err := cfg.Draft()
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if d.Resolve() != params.Defaults() {
		t.Error("default profile should resolve to the built-in defaults")
	}
}

func TestGetPreset(t *testing.T) {
	p, err := GetPreset("gravel")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	ps := p.Apply(params.DefaultDraft()).Resolve()
	if ps.TireWidthMm != 40 {
		t.Errorf("expected width 40, got %f", ps.TireWidthMm)
	}
	if ps.D <= params.DefaultD {
		t.Errorf("gravel should be rougher than the default, D=%f", ps.D)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("ice")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	want := []string{"asphalt", "chipseal", "gravel", "smooth"}
	if len(names) != len(want) {
		t.Fatalf("expected %d presets, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("preset %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestPresetsResolveCleanly(t *testing.T) {
	for _, name := range ListPresets() {
		p, _ := GetPreset(name)
		ps := p.Apply(params.DefaultDraft()).Resolve()
		if ps.PMin >= ps.PMax {
			t.Errorf("%s: inverted pressure range", name)
		}
		for key, raw := range p.Params {
			if _, ok := params.Lookup(params.Field(key)); !ok {
				t.Errorf("%s: unknown field %s", name, key)
			}
			if params.ParseOrDefault(raw, -1) == -1 {
				t.Errorf("%s: %s=%q does not parse", name, key, raw)
			}
		}
	}
}

func TestDraftLayering(t *testing.T) {
	off := false
	cfg := DefaultConfig()
	cfg.Preset = "chipseal"
	cfg.AutoA = &off
	cfg.Params = map[string]string{"D": "0.005", "massKg": "bad"}

	d, err := cfg.Draft()
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	ps := d.Resolve()
	if ps.D != 0.005 {
		t.Errorf("profile should override preset, D=%f", ps.D)
	}
	if ps.Gamma != 2.2 {
		t.Errorf("preset should override default, gamma=%f", ps.Gamma)
	}
	if ps.MassKg != params.DefaultMassKg {
		t.Errorf("bad mass should fall back, got %f", ps.MassKg)
	}
	if ps.UseAutoA {
		t.Error("auto_a: false should select manual A")
	}
}

func TestDraftUnknownPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preset = "ice"
	if _, err := cfg.Draft(); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crrsim.yaml")

	ps := params.Defaults()
	ps.TireWidthMm = 32
	ps.UseAutoA = false
	cfg := FromApplied(ps)
	cfg.Theme = "nord"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Theme != "nord" {
		t.Errorf("expected theme nord, got %s", loaded.Theme)
	}
	d, err := loaded.Draft()
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if got := d.Resolve(); got != ps {
		t.Errorf("round trip mismatch: %+v != %+v", got, ps)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
