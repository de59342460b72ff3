package curve

import (
	"encoding/json"
	"sort"
)

// Series keys carried by rows of the primary curve.
const (
	KeyPressure   = "p"
	KeyTotal      = "total"
	KeyHysteresis = "hysteresis"
	KeyImpact     = "impact"
)

// Row is one sampled pressure and the series values computed at it.
type Row struct {
	P      float64
	Values map[string]float64
}

// Get returns the value of one series.
func (r Row) Get(key string) (float64, bool) {
	if key == KeyPressure {
		return r.P, true
	}
	v, ok := r.Values[key]
	return v, ok
}

// Keys returns the series keys present on the row, sorted.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON flattens the row into {"p": ..., "<series>": ...}.
func (r Row) MarshalJSON() ([]byte, error) {
	flat := make(map[string]float64, len(r.Values)+1)
	for k, v := range r.Values {
		flat[k] = v
	}
	flat[KeyPressure] = r.P
	return json.Marshal(flat)
}

// UnmarshalJSON reads the flat form written by MarshalJSON.
func (r *Row) UnmarshalJSON(data []byte) error {
	var flat map[string]float64
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	r.P = flat[KeyPressure]
	delete(flat, KeyPressure)
	r.Values = flat
	return nil
}

// Column extracts one series in row order. Rows missing the key yield 0.
func Column(rows []Row, key string) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i], _ = r.Get(key)
	}
	return out
}

// Has reports whether every row carries key.
func Has(rows []Row, key string) bool {
	if len(rows) == 0 {
		return false
	}
	for _, r := range rows {
		if _, ok := r.Get(key); !ok {
			return false
		}
	}
	return true
}
