package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/physics"
)

var _ = Describe("EstimateA", func() {
	It("matches the closed form for the baseline tire", func() {
		n := 65 * physics.G
		r := 0.311 + 0.014
		want := 0.015 * n / (0.028 * r * 1e5)

		got := physics.EstimateA(28, 65, 0.015)
		Expect(got).To(BeNumerically("~", want, 1e-6))
		Expect(got).To(Equal(0.010507))
	})

	It("rounds to six decimals", func() {
		got := physics.EstimateA(23, 80, 0.021)
		Expect(got * 1e6).To(BeNumerically("~", math.Round(got*1e6), 1e-6))
	})

	DescribeTable("replaces invalid inputs by their defaults",
		func(width, mass, kappa float64) {
			want := physics.EstimateA(params.DefaultTireWidthMm, params.DefaultMassKg, params.DefaultKappa)
			Expect(physics.EstimateA(width, mass, kappa)).To(Equal(want))
		},
		Entry("zeros", 0.0, 0.0, 0.0),
		Entry("negatives", -28.0, -65.0, -0.015),
		Entry("nan", math.NaN(), math.NaN(), math.NaN()),
		Entry("infinities", math.Inf(1), math.Inf(-1), math.Inf(1)),
		Entry("overflowing mass", 28.0, 1e308, 0.015),
		Entry("subnormal width", 1e-320, 65.0, 0.015),
		Entry("overflowing kappa", 28.0, 65.0, math.MaxFloat64),
	)

	It("falls as the tire gets wider", func() {
		narrow := physics.EstimateA(25, 70, 0.015)
		wide := physics.EstimateA(35, 70, 0.015)
		Expect(wide).To(BeNumerically("<", narrow))
	})

	It("is deterministic", func() {
		Expect(physics.EstimateA(30, 72, 0.02)).To(Equal(physics.EstimateA(30, 72, 0.02)))
	})
})

var _ = Describe("model terms", func() {
	It("uses the rim radius plus half the width", func() {
		Expect(physics.EffectiveRadius(28)).To(BeNumerically("~", 0.325, 1e-12))
		Expect(physics.EffectiveRadius(0)).To(BeNumerically("~", 0.325, 1e-12))
	})

	It("computes the hysteresis term", func() {
		Expect(physics.HysteresisCoefficient(0.012, 0.004, 6)).To(BeNumerically("~", 0.006, 1e-12))
	})

	It("equals D at the reference pressure", func() {
		Expect(physics.ImpactCoefficient(0.002, 6, 6, 1.8)).To(BeNumerically("~", 0.002, 1e-15))
	})

	It("grows with pressure for a positive exponent", func() {
		Expect(physics.ImpactCoefficient(0.002, 8, 6, 1.8)).To(BeNumerically(">", 0.002))
	})

	It("converts coefficients to watts at the given speed", func() {
		Expect(physics.PowerScale(65, 30)).To(BeNumerically("~", 65*physics.G*30/3.6, 1e-9))
		Expect(physics.PowerScale(-1, 0)).To(BeNumerically("~", 65*physics.G*30/3.6, 1e-9))
	})

	It("keeps the force and power scale finite for huge inputs", func() {
		Expect(math.IsInf(physics.NormalForce(1e308), 0)).To(BeFalse())
		Expect(physics.PowerScale(1e308, 30)).To(BeNumerically("~", 65*physics.G*30/3.6, 1e-9))
		Expect(physics.PowerScale(65, 1e308)).To(BeNumerically("~", 65*physics.G*30/3.6, 1e-9))
	})

	It("drops the impact term when D is zero", func() {
		Expect(physics.ImpactCoefficient(0, 9, 6, 2000)).To(Equal(0.0))
	})
})
