package params

// Field names one editable model input.
type Field string

const (
	TireWidthMm Field = "tireWidthMm"
	MassKg      Field = "massKg"
	SpeedKph    Field = "speedKph"
	B           Field = "B"
	D           Field = "D"
	P0          Field = "p0"
	Gamma       Field = "gamma"
	PMin        Field = "pMin"
	PMax        Field = "pMax"
	Kappa       Field = "kappa"
	ManualA     Field = "manualA"
)

// FieldInfo describes how a field is presented on a form.
type FieldInfo struct {
	Key     Field
	Label   string
	Unit    string
	Step    float64
	Default float64
	Hint    string
}

// Fields lists every editable field in form order.
var Fields = []FieldInfo{
	{Key: TireWidthMm, Label: "tire width", Unit: "mm", Step: 0.5, Default: DefaultTireWidthMm},
	{Key: ManualA, Label: "A (hysteresis)", Step: 0.0005, Default: DefaultManualA},
	{Key: Kappa, Label: "κ (material)", Step: 0.001, Default: DefaultKappa, Hint: "lumped tanδ and casing loss, 0.01-0.05 typical"},
	{Key: B, Label: "B (floor)", Step: 0.0001, Default: DefaultB},
	{Key: D, Label: "D (impact @p0)", Step: 0.00005, Default: DefaultD},
	{Key: P0, Label: "p0", Unit: "bar", Step: 0.1, Default: DefaultP0},
	{Key: Gamma, Label: "γ (impact exp)", Step: 0.1, Default: DefaultGamma},
	{Key: SpeedKph, Label: "speed", Unit: "km/h", Step: 1, Default: DefaultSpeedKph},
	{Key: MassKg, Label: "mass", Unit: "kg", Step: 1, Default: DefaultMassKg},
	{Key: PMin, Label: "p_min", Unit: "bar", Step: 0.1, Default: DefaultPMin},
	{Key: PMax, Label: "p_max", Unit: "bar", Step: 0.1, Default: DefaultPMax},
}

// Lookup returns the metadata for a field key.
func Lookup(key Field) (FieldInfo, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// Draft is an immutable snapshot of the form: one raw string per field plus
// the auto/manual selector. Mutators return a new Draft.
type Draft struct {
	raw      map[Field]string
	useAutoA bool
}

// DefaultDraft holds every default rendered as text, with auto mode on.
func DefaultDraft() Draft {
	return DraftFrom(Defaults())
}

// DraftFrom renders a parameter set into form text.
func DraftFrom(p ParameterSet) Draft {
	raw := make(map[Field]string, len(Fields))
	for _, f := range Fields {
		v, _ := p.Get(f.Key)
		raw[f.Key] = FormatValue(v)
	}
	return Draft{raw: raw, useAutoA: p.UseAutoA}
}

// Value returns the raw text of a field.
func (d Draft) Value(key Field) string {
	return d.raw[key]
}

// UseAutoA reports the draft's auto/manual selector.
func (d Draft) UseAutoA() bool {
	return d.useAutoA
}

// With returns a copy of the draft with one field replaced. Unknown keys
// leave the draft unchanged.
func (d Draft) With(key Field, raw string) Draft {
	if _, ok := Lookup(key); !ok {
		return d
	}
	next := make(map[Field]string, len(d.raw)+1)
	for k, v := range d.raw {
		next[k] = v
	}
	next[key] = raw
	return Draft{raw: next, useAutoA: d.useAutoA}
}

// WithValues applies several raw overrides at once.
func (d Draft) WithValues(values map[string]string) Draft {
	for k, v := range values {
		d = d.With(Field(k), v)
	}
	return d
}

// WithAutoA returns a copy with the auto/manual selector set.
func (d Draft) WithAutoA(on bool) Draft {
	d.raw = cloneRaw(d.raw)
	d.useAutoA = on
	return d
}

// Resolve parses every field, falling back to the field default on a per
// field basis. A and DerivedA are left zero.
func (d Draft) Resolve() ParameterSet {
	out := Defaults()
	for _, f := range Fields {
		out = out.With(f.Key, ParseOrDefault(d.raw[f.Key], f.Default))
	}
	out.UseAutoA = d.useAutoA
	return out
}

func cloneRaw(raw map[Field]string) map[Field]string {
	c := make(map[Field]string, len(raw))
	for k, v := range raw {
		c[k] = v
	}
	return c
}
