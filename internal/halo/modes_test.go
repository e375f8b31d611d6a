package halo_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"galmag/internal/halo"
)

var allModes = []halo.Mode{
	halo.S1, halo.S2, halo.S3, halo.S4,
	halo.A1, halo.A2, halo.A3, halo.A4,
}

var _ = Describe("free-decay modes", func() {
	Describe("boundary matching", func() {
		const eps = 1e-9

		It("keeps every component continuous across r=1", func() {
			for _, m := range allModes {
				for _, theta := range []float64{0.3, 1.1, 2.0, 2.9} {
					brIn, btIn, bpIn := m.At(1.0-eps, theta)
					brOut, btOut, bpOut := m.At(1.0+eps, theta)

					Expect(brIn).To(BeNumerically("~", brOut, 1e-6),
						"Br of %s at theta=%g", m, theta)
					Expect(btIn).To(BeNumerically("~", btOut, 1e-6),
						"Btheta of %s at theta=%g", m, theta)
					Expect(bpIn).To(BeNumerically("~", bpOut, 1e-6),
						"Bphi of %s at theta=%g", m, theta)
				}
			}
		})
	})

	Describe("parity", func() {
		samples := []struct{ r, theta float64 }{
			{0.2, 0.4}, {0.7, 1.3}, {0.99, 2.2}, {1.4, 0.9}, {3.0, 2.8},
		}

		It("leaves Br and Btheta identically zero for toroidal modes", func() {
			for _, m := range []halo.Mode{halo.S2, halo.S4, halo.A3} {
				Expect(m.Toroidal()).To(BeTrue())
				for _, s := range samples {
					br, bt, _ := m.At(s.r, s.theta)
					Expect(br).To(BeZero(), "Br of %s", m)
					Expect(bt).To(BeZero(), "Btheta of %s", m)
				}
			}
		})

		It("leaves Bphi identically zero for poloidal modes", func() {
			for _, m := range []halo.Mode{halo.S1, halo.S3, halo.A1, halo.A2, halo.A4} {
				Expect(m.Toroidal()).To(BeFalse())
				for _, s := range samples {
					_, _, bp := m.At(s.r, s.theta)
					Expect(bp).To(BeZero(), "Bphi of %s", m)
				}
			}
		})
	})

	Describe("reference values", func() {
		// Computed with an independent transcription of the closed forms.
		type ref struct {
			mode           halo.Mode
			r, theta       float64
			br, btheta, bp float64
		}
		refs := []ref{
			{halo.S1, 0.5, 0.7, 0.385520203718194, -0.556633765299808, 0},
			{halo.S1, 1.5, 2.0, -0.0227926702091501, -0.0359017497731474, 0},
			{halo.S2, 0.5, 0.7, 0, 0, 0.627419669881193},
			{halo.S3, 0.5, 0.7, 0.324602136231622, 0.257234820181255, 0},
			{halo.S3, 1.5, 2.0, 0.00962961544842451, -0.0227440994598478, 0},
			{halo.S4, 0.5, 0.7, 0, 0, 0.831550086010600},
			{halo.A1, 0.5, 0.7, 0.606712815679380, -0.374940904702833, 0},
			{halo.A1, 1.5, 2.0, -0.0384099763714822, 0.0419636647593109, 0},
			{halo.A2, 0.5, 0.7, -0.0309337560774264, 2.52690173272778, 0},
			{halo.A2, 1.5, 2.0, 0.0370964384979963, 0.00710940908920532, 0},
			{halo.A3, 0.5, 0.7, 0, 0, 0.949898967053258},
			{halo.A3, 1.5, 2.0, 0, 0, -5.6245590521496e-05},
			{halo.A4, 0.5, 0.7, 0.475227731346186, 0.200139398093361, 0},
			{halo.A4, 1.5, 2.0, 0.0191532628925653, -0.0209253214658914, 0},
		}

		It("reproduces the recorded baselines", func() {
			for _, rf := range refs {
				br, bt, bp := rf.mode.At(rf.r, rf.theta)
				Expect(br).To(BeNumerically("~", rf.br, 1e-9),
					"Br of %s at r=%g", rf.mode, rf.r)
				Expect(bt).To(BeNumerically("~", rf.btheta, 1e-9),
					"Btheta of %s at r=%g", rf.mode, rf.r)
				Expect(bp).To(BeNumerically("~", rf.bp, 1e-9),
					"Bphi of %s at r=%g", rf.mode, rf.r)
			}
		})
	})

	Describe("decay rates", func() {
		It("returns the published eigenvalues", func() {
			Expect(halo.S1.Gamma()).To(BeNumerically("~", -4.493409457909*4.493409457909, 1e-9))
			Expect(halo.S2.Gamma()).To(Equal(halo.S1.Gamma()))
			Expect(halo.S3.Gamma()).To(BeNumerically("~", -6.987932000501*6.987932000501, 1e-9))
			Expect(halo.S4.Gamma()).To(Equal(halo.S3.Gamma()))
			Expect(halo.A1.Gamma()).To(BeNumerically("~", -math.Pi*math.Pi, 1e-12))
			Expect(halo.A2.Gamma()).To(BeNumerically("~", -5.763*5.763, 1e-9))
			Expect(halo.A3.Gamma()).To(Equal(halo.A2.Gamma()))
			Expect(halo.A4.Gamma()).To(BeNumerically("~", -4*math.Pi*math.Pi, 1e-12))
		})
	})

	Describe("mode dispatch", func() {
		It("maps indices and symmetry classes", func() {
			m, err := halo.ModeFor(3, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(halo.S3))
			Expect(m.Index()).To(Equal(3))
			Expect(m.Symmetric()).To(BeTrue())

			m, err = halo.ModeFor(4, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(halo.A4))
			Expect(m.Index()).To(Equal(4))
			Expect(m.Symmetric()).To(BeFalse())
		})

		It("rejects unsupported mode indices", func() {
			_, err := halo.ModeFor(5, true)
			Expect(err).To(MatchError(halo.ErrUnsupportedMode))

			_, _, _, err = halo.GetMode([]float64{1}, []float64{1}, []float64{0}, 5, true)
			Expect(err).To(MatchError(halo.ErrUnsupportedMode))

			_, err = halo.ModeFor(0, false)
			Expect(err).To(MatchError(halo.ErrUnsupportedMode))
		})

		It("rejects mismatched coordinate arrays", func() {
			_, _, _, err := halo.GetMode([]float64{1, 2}, []float64{1}, []float64{0, 0}, 1, true)
			Expect(err).To(MatchError(halo.ErrLengthMismatch))
		})
	})

	Describe("array evaluation", func() {
		It("matches pointwise evaluation", func() {
			r := []float64{0.3, 0.8, 1.2, 2.5}
			theta := []float64{0.5, 1.0, 1.5, 2.5}
			phi := make([]float64, len(r))

			br, bt, bp, err := halo.GetMode(r, theta, phi, 1, false)
			Expect(err).NotTo(HaveOccurred())
			for i := range r {
				wr, wt, wp := halo.A1.At(r[i], theta[i])
				Expect(br[i]).To(Equal(wr))
				Expect(bt[i]).To(Equal(wt))
				Expect(bp[i]).To(Equal(wp))
			}
		})
	})
})
