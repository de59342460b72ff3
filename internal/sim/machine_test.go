package sim_test

import (
	"context"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/physics"
	"github.com/san-kum/crrsim/internal/sim"
)

var _ = Describe("Machine", func() {
	var m *sim.Machine

	BeforeEach(func() {
		m = sim.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("initial state", func() {
		It("applies the committed default draft", func() {
			applied := m.Applied()
			Expect(applied.UseAutoA).To(BeTrue())
			Expect(applied.A).To(Equal(0.010507))
			Expect(applied.DerivedA).To(Equal(applied.A))
			Expect(m.Curve()).To(HaveLen(curve.SamplePoints))
			Expect(m.Components()).To(Equal(curve.AllComponents))
			Expect(m.ChartWidth()).To(Equal(sim.DefaultChartWidth))
		})

		It("computes the reference point from the default A", func() {
			r := m.Result()
			want := (0.010507/6 + 0.004 + 0.002) * 65 * physics.G * 30 / 3.6
			Expect(r.RefWatts).To(BeNumerically("~", want, 1e-9))
			Expect(r.ASource()).To(Equal("auto"))
		})
	})

	Describe("EditField", func() {
		It("moves the preview but not the applied set", func() {
			before := m.Curve()
			m.EditField(params.TireWidthMm, "40")

			Expect(m.Preview().Values.TireWidthMm).To(Equal(40.0))
			Expect(m.Preview().AutoA).To(Equal(physics.EstimateA(40, 65, 0.015)))
			Expect(m.Applied().TireWidthMm).To(Equal(28.0))
			Expect(m.Curve()).To(Equal(before))
		})

		It("previews garbage as the field default", func() {
			m.EditField(params.MassKg, "heavy")
			Expect(m.Draft().Value(params.MassKg)).To(Equal("heavy"))
			Expect(m.Preview().Values.MassKg).To(Equal(params.DefaultMassKg))
		})

		It("ignores unknown keys", func() {
			before := m.Draft()
			m.EditField(params.Field("rimDepth"), "50")
			Expect(m.Draft()).To(Equal(before))
		})
	})

	Describe("ToggleAutoMode", func() {
		It("switches the preview A source only", func() {
			m.ToggleAutoMode(false)
			Expect(m.Preview().ResolvedA).To(Equal(params.DefaultManualA))
			Expect(m.Applied().UseAutoA).To(BeTrue())
		})
	})

	Describe("Commit", func() {
		It("freezes A from the draft at commit time", func() {
			m.ToggleAutoMode(false)
			m.EditField(params.ManualA, "0.02")
			ps := m.Commit()

			Expect(ps.A).To(Equal(0.02))
			Expect(m.Applied().A).To(Equal(0.02))
			Expect(m.Result().ASource()).To(Equal("manual"))

			m.EditField(params.ManualA, "0.05")
			m.ToggleAutoMode(true)
			Expect(m.Applied().A).To(Equal(0.02))
		})

		It("uses the estimate in auto mode", func() {
			m.EditField(params.TireWidthMm, "32")
			m.EditField(params.MassKg, "80")
			ps := m.Commit()
			Expect(ps.A).To(Equal(physics.EstimateA(32, 80, 0.015)))
			Expect(ps.DerivedA).To(Equal(ps.A))
		})

		It("falls back per field", func() {
			m.EditField(params.B, "")
			m.EditField(params.D, "abc")
			m.EditField(params.SpeedKph, "35")
			ps := m.Commit()
			Expect(ps.B).To(Equal(params.DefaultB))
			Expect(ps.D).To(Equal(params.DefaultD))
			Expect(ps.SpeedKph).To(Equal(35.0))
		})

		It("recomputes the curves", func() {
			before := m.Curve()
			m.EditField(params.SpeedKph, "40")
			m.Commit()
			Expect(m.Curve()).NotTo(Equal(before))
			Expect(m.Comparison().Rows).To(HaveLen(curve.SamplePoints))
		})

		It("is deterministic", func() {
			m.EditField(params.Gamma, "2.1")
			m.Commit()
			first := m.Result()
			m.Commit()
			Expect(m.Result()).To(Equal(first))
		})
	})

	Describe("display state", func() {
		It("re-samples when components change", func() {
			m.SetComponents(curve.Components{})
			Expect(m.Curve()[0].Keys()).To(Equal([]string{curve.KeyTotal}))
			Expect(m.Applied().A).To(Equal(0.010507))
		})

		It("keeps components across commits", func() {
			m.SetComponents(curve.Components{Impact: true})
			m.Commit()
			Expect(m.Curve()[0].Keys()).To(ConsistOf(curve.KeyImpact, curve.KeyTotal))
		})
	})

	Describe("ResetToDefaults", func() {
		It("restores draft, applied set and display", func() {
			m.EditField(params.TireWidthMm, "45")
			m.ToggleAutoMode(false)
			m.Commit()
			m.SetComponents(curve.Components{})
			m.SetChartWidth(700)

			m.ResetToDefaults()

			Expect(m.Draft()).To(Equal(params.DefaultDraft()))
			Expect(m.Applied()).To(Equal(sim.Apply(params.DefaultDraft())))
			Expect(m.Components()).To(Equal(curve.AllComponents))
			Expect(m.ChartWidth()).To(Equal(sim.DefaultChartWidth))
		})

		It("returns to a custom baseline", func() {
			base := params.DefaultDraft().With(params.D, "0.004")
			m = sim.NewFrom(base, nil)
			m.EditField(params.D, "0.01")
			m.Commit()
			m.ResetToDefaults()
			Expect(m.Applied().D).To(Equal(0.004))
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("evaluates drafts in order", func() {
		drafts := []params.Draft{
			params.DefaultDraft().With(params.TireWidthMm, "25"),
			params.DefaultDraft().With(params.TireWidthMm, "30"),
			params.DefaultDraft().With(params.TireWidthMm, "35"),
		}
		results, err := sim.NewEnsemble(curve.Components{}, 2).Run(context.Background(), drafts)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for i, d := range drafts {
			Expect(results[i]).To(Equal(sim.Evaluate(sim.Apply(d), curve.Components{})))
		}
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		drafts := make([]params.Draft, 50)
		for i := range drafts {
			drafts[i] = params.DefaultDraft()
		}
		_, err := sim.NewEnsemble(curve.AllComponents, 1).Run(ctx, drafts)
		Expect(err).To(MatchError(context.Canceled))
	})
})
