package cavity

import (
	"context"
	"errors"
	"math"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = g.Describe("Mode properties", func() {
	var values []float64

	g.BeforeEach(func() {
		var err error
		values, err = DefaultSweepValues(reference(CutPlane), 25)
		Expect(err).NotTo(HaveOccurred())
	})

	g.DescribeTable("every stable configuration yields a physical mode",
		func(cut Cut) {
			p := reference(cut)
			for _, s := range values {
				p.CrystalDistance = s
				mode, err := Solve(p)
				if errors.Is(err, ErrCavityUnstable) {
					continue
				}
				Expect(err).NotTo(HaveOccurred())

				for _, f := range []Focus{mode.Crystal, mode.Collimated} {
					Expect(f.WaistT).To(BeNumerically(">", 0))
					Expect(f.WaistS).To(BeNumerically(">", 0))
					Expect(f.ConfocalT).To(BeNumerically(">", 0))
					Expect(f.ConfocalS).To(BeNumerically(">", 0))
					Expect(f.Ellipticity).To(BeNumerically("~", f.WaistS/f.WaistT, 1e-12))
					Expect(f.XiT * f.ConfocalT).To(BeNumerically("~", p.CrystalLength, 1e-12))
					Expect(f.XiS * f.ConfocalS).To(BeNumerically("~", p.CrystalLength, 1e-12))
				}
				Expect(math.Abs(mode.StabilityT)).To(BeNumerically("<", 1))
				Expect(math.Abs(mode.StabilityS)).To(BeNumerically("<", 1))
			}
		},
		g.Entry("plane cut", CutPlane),
		g.Entry("brewster cut", CutBrewster),
	)

	g.It("treats an uncorrected brewster crystal as plane cut", func() {
		for _, s := range values {
			p := reference(CutPlane)
			p.CrystalDistance = s
			plane, errPlane := solve(p, true)

			p.Cut = CutBrewster
			brewster, errBrewster := solve(p, false)

			Expect(errors.Is(errBrewster, ErrCavityUnstable)).To(Equal(errors.Is(errPlane, ErrCavityUnstable)))
			Expect(brewster).To(Equal(plane))
		}
	})

	g.It("stretches the tangential crystal waist for a brewster cut", func() {
		plane, err := Solve(reference(CutPlane))
		Expect(err).NotTo(HaveOccurred())
		brewster, err := Solve(reference(CutBrewster))
		Expect(err).NotTo(HaveOccurred())

		Expect(brewster.Crystal.Ellipticity).NotTo(BeNumerically("~", plane.Crystal.Ellipticity, 1e-3))
		Expect(brewster.Crystal.WaistS).To(BeNumerically("~", plane.Crystal.WaistS, 1e-15))
	})

	g.It("has one stable interval with a sharp edge", func() {
		p := reference(CutPlane)
		lo, hi, err := StabilityRange(p)
		Expect(err).NotTo(HaveOccurred())

		var transitions int
		prev := false
		for s := lo - 5e-3; s < hi+5e-3; s += 1e-4 {
			p.CrystalDistance = s
			_, err := Solve(p)
			stable := err == nil
			if stable != prev {
				transitions++
			}
			prev = stable
		}
		Expect(transitions).To(Equal(2))
	})

	g.It("returns the same modes from a sweep as from independent solves", func() {
		p := reference(CutBrewster)
		points := SweepParallel(context.Background(), p, FieldCrystalDistance, values, 3)
		Expect(points).To(HaveLen(len(values)))

		for i, pt := range points {
			Expect(pt.Value).To(Equal(values[i]))
			p.CrystalDistance = pt.Value
			mode, err := Solve(p)
			if err != nil {
				Expect(pt.Err).To(HaveOccurred())
				continue
			}
			Expect(pt.Err).NotTo(HaveOccurred())
			Expect(pt.Mode).To(Equal(mode))
		}
	})
})

var _ = g.Describe("Typical 1064 nm cavity", func() {
	g.It("focuses to tens of microns with a moderate focusing parameter", func() {
		p := reference(CutPlane)
		values, err := DefaultSweepValues(p, 40)
		Expect(err).NotTo(HaveOccurred())

		stable := Valid(Sweep(p, FieldCrystalDistance, values))
		Expect(stable).NotTo(BeEmpty())
		for _, pt := range stable {
			Expect(pt.Mode.Crystal.WaistT).To(BeNumerically(">", 1e-6))
			Expect(pt.Mode.Crystal.WaistT).To(BeNumerically("<", 1e-3))
			Expect(pt.Mode.Crystal.XiT).To(BeNumerically(">=", 0))
			Expect(pt.Mode.Crystal.XiT).To(BeNumerically("<", 10))
		}
	})

	g.It("reports the geometry error before stability", func() {
		p := reference(CutPlane)
		p.CrystalLength = 0
		_, err := Solve(p)
		Expect(err).To(MatchError(ErrGeometryInfeasible))
	})
})
