package mogi_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/mogi"
)

var _ = Describe("Displace", func() {
	It("reproduces the reference uplift above a 1 km deep source", func() {
		// Source at (0,0,-1000) with strength 10 (dV = 1e7 m^3),
		// observed at (1000,0,0): theta = 0, rho = 1000,
		// R = 1000*sqrt(2), C = (0.75/pi)*1e7.
		ux, uy, uz := mogi.Displace(1000, 0, 1000, 10, mogi.DefaultNu)

		Expect(ux).To(BeNumerically("~", 0.844047, 1e-5))
		Expect(uy).To(BeZero())
		Expect(uz).To(BeNumerically("~", 0.844047, 1e-5))
	})

	It("is linear in strength", func() {
		ux1, uy1, uz1 := mogi.Displace(700, -300, 1200, 4, mogi.DefaultNu)
		ux2, uy2, uz2 := mogi.Displace(700, -300, 1200, 8, mogi.DefaultNu)

		Expect(ux2).To(BeNumerically("~", 2*ux1, 1e-12))
		Expect(uy2).To(BeNumerically("~", 2*uy1, 1e-12))
		Expect(uz2).To(BeNumerically("~", 2*uz1, 1e-12))
	})

	It("contributes nothing at zero strength", func() {
		ux, uy, uz := mogi.Displace(500, 250, 900, 0, mogi.DefaultNu)

		Expect(ux).To(BeZero())
		Expect(uy).To(BeZero())
		Expect(uz).To(BeZero())
	})

	It("is rotationally symmetric about the source axis", func() {
		// Points at the same rho and z', rotated by 90 degrees.
		uxA, uyA, uzA := mogi.Displace(800, 0, 1000, 5, mogi.DefaultNu)
		uxB, uyB, uzB := mogi.Displace(0, 800, 1000, 5, mogi.DefaultNu)

		Expect(math.Hypot(uxA, uyA)).To(BeNumerically("~", math.Hypot(uxB, uyB), 1e-9))
		Expect(uzA).To(BeNumerically("~", uzB, 1e-12))

		// The radial component points along each azimuth.
		Expect(uyB).To(BeNumerically("~", uxA, 1e-9))
		Expect(uxB).To(BeNumerically("~", 0, 1e-9))
	})

	It("decays monotonically with slant distance", func() {
		prev := math.Inf(1)
		for _, rho := range []float64{500, 1000, 2000, 4000, 8000} {
			ux, uy, uz := mogi.Displace(rho, 0, 1000, 10, mogi.DefaultNu)
			mag := math.Sqrt(ux*ux + uy*uy + uz*uz)
			Expect(mag).To(BeNumerically("<", prev))
			prev = mag
		}
	})

	It("yields the analytic singularity at the source point", func() {
		_, _, uz := mogi.Displace(0, 0, 0, 10, mogi.DefaultNu)

		Expect(math.IsNaN(uz)).To(BeTrue())
	})

	It("evaluates arithmetically for unphysical Poisson ratios", func() {
		// nu = 1.5 flips the sign of the coefficient; no range check.
		_, _, uz := mogi.Displace(1000, 0, 1000, 10, 1.5)

		Expect(math.IsNaN(uz)).To(BeFalse())
		Expect(uz).To(BeNumerically("<", 0))
	})
})

var _ = Describe("Compute", func() {
	var grid geo.Grid

	BeforeEach(func() {
		grid = geo.NewPlane(-5000, 5000, 21, -5000, 5000, 21, 0)
	})

	It("superposes two sources element-wise", func() {
		a := geo.Source{X: -1500, Y: 0, Z: -2000}
		b := geo.Source{X: 2000, Y: 500, Z: -800}

		fa, err := mogi.Compute(grid, geo.SourceSet{Sources: []geo.Source{a}, Strengths: []float64{6}}, mogi.DefaultNu)
		Expect(err).NotTo(HaveOccurred())
		fb, err := mogi.Compute(grid, geo.SourceSet{Sources: []geo.Source{b}, Strengths: []float64{-3}}, mogi.DefaultNu)
		Expect(err).NotTo(HaveOccurred())

		both, err := mogi.Compute(grid, geo.SourceSet{
			Sources:   []geo.Source{a, b},
			Strengths: []float64{6, -3},
		}, mogi.DefaultNu)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < grid.Len(); i++ {
			Expect(both.Ux[i]).To(BeNumerically("~", fa.Ux[i]+fb.Ux[i], 1e-9))
			Expect(both.Uy[i]).To(BeNumerically("~", fa.Uy[i]+fb.Uy[i], 1e-9))
			Expect(both.Uz[i]).To(BeNumerically("~", fa.Uz[i]+fb.Uz[i], 1e-9))
		}
	})

	It("doubles the field when the strength doubles", func() {
		set1 := geo.SourceSet{Sources: []geo.Source{{Z: -1000}}, Strengths: []float64{5}}
		set2 := geo.SourceSet{Sources: []geo.Source{{Z: -1000}}, Strengths: []float64{10}}

		f1, err := mogi.Compute(grid, set1, mogi.DefaultNu)
		Expect(err).NotTo(HaveOccurred())
		f2, err := mogi.Compute(grid, set2, mogi.DefaultNu)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < grid.Len(); i++ {
			Expect(f2.Uz[i]).To(BeNumerically("~", 2*f1.Uz[i], 1e-12))
		}
	})

	It("rejects unpaired sources and strengths", func() {
		set := geo.SourceSet{
			Sources:   []geo.Source{{Z: -1000}, {Z: -2000}},
			Strengths: []float64{5},
		}

		_, err := mogi.Compute(grid, set, mogi.DefaultNu)

		Expect(err).To(MatchError(geo.ErrCountMismatch))
	})

	It("propagates the singularity instead of failing", func() {
		// One grid point sits exactly on the source.
		pts, err := geo.NewPoints([]float64{0, 1000}, []float64{0, 0}, []float64{-1000, 0})
		Expect(err).NotTo(HaveOccurred())

		set := geo.SourceSet{Sources: []geo.Source{{Z: -1000}}, Strengths: []float64{10}}
		f, err := mogi.Compute(pts, set, mogi.DefaultNu)

		Expect(err).NotTo(HaveOccurred())
		Expect(f.IsFinite()).To(BeFalse())
		Expect(math.IsNaN(f.Uz[0])).To(BeTrue())
		Expect(f.Uz[1]).To(BeNumerically("~", 0.844047, 1e-5))
	})

	It("returns an empty field for an empty grid", func() {
		set := geo.SourceSet{Sources: []geo.Source{{Z: -1000}}, Strengths: []float64{10}}

		f, err := mogi.Compute(geo.Grid{Shape: []int{0}}, set, mogi.DefaultNu)

		Expect(err).NotTo(HaveOccurred())
		Expect(f.Len()).To(BeZero())
	})

	It("returns a zero field for an empty source set", func() {
		f, err := mogi.Compute(grid, geo.SourceSet{}, mogi.DefaultNu)

		Expect(err).NotTo(HaveOccurred())
		Expect(f.MaxAbsUz()).To(BeZero())
	})

	It("produces subsidence for a deflating source", func() {
		set := geo.SourceSet{Sources: []geo.Source{{Z: -1500}}, Strengths: []float64{-8}}

		f, err := mogi.Compute(grid, set, mogi.DefaultNu)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < grid.Len(); i++ {
			Expect(f.Uz[i]).To(BeNumerically("<=", 0))
		}
	})
})
