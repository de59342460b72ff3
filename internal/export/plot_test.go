package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultResult() sim.Result {
	return sim.Evaluate(sim.Apply(params.DefaultDraft()), curve.AllComponents)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat("out.png"))
	assert.NoError(t, CheckFormat("OUT.SVG"))
	assert.NoError(t, CheckFormat("dir/out.pdf"))
	assert.Error(t, CheckFormat("out.bmp"))
	assert.Error(t, CheckFormat("out"))
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		file string
		kind Kind
	}{
		{"curve png", "curve.png", KindCurve},
		{"curve svg", "curve.svg", KindCurve},
		{"comparison png", "compare.png", KindComparison},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, Save(path, defaultResult(), Options{Kind: tt.kind}))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestSaveRejectsUnknown(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, Save(filepath.Join(dir, "x.bmp"), defaultResult(), DefaultOptions()))
	assert.Error(t, Save(filepath.Join(dir, "x.png"), defaultResult(), Options{Kind: "pie"}))
}

func TestPlotSeries(t *testing.T) {
	r := sim.Evaluate(sim.Apply(params.DefaultDraft()), curve.Components{Impact: true})
	assert.Equal(t, []series{{curve.KeyTotal, "total"}, {curve.KeyImpact, "impact"}}, curveSeries(r.Curve))

	s := comparisonSeries(r.Comparison)
	require.Len(t, s, 3)
	assert.Equal(t, "28.0 mm", s[1].label)
}
