package lorenz_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/lorenz"
)

var _ = Describe("Derivative", func() {
	p := lorenz.DefaultParams()

	It("evaluates the Lorenz equations", func() {
		d := lorenz.Derivative(lorenz.State{1, 2, 3}, lorenz.Params{Rho: 28, Sigma: 10, Beta: 2})

		Expect(d[0]).To(Equal(10.0))
		Expect(d[1]).To(Equal(1*(28-3) - 2.0))
		Expect(d[2]).To(Equal(1*2 - 2*3.0))
	})

	It("vanishes at the origin", func() {
		Expect(lorenz.Derivative(lorenz.State{}, p)).To(Equal(lorenz.State{}))
	})

	It("vanishes at every fixed point", func() {
		points := lorenz.FixedPoints(p)
		Expect(points).To(HaveLen(3))
		for _, fp := range points {
			d := lorenz.Derivative(fp, p)
			for _, v := range d {
				Expect(v).To(BeNumerically("~", 0, 1e-9))
			}
		}
	})

	It("has only the origin as equilibrium for rho <= 1", func() {
		Expect(lorenz.FixedPoints(lorenz.Params{Rho: 0.5, Sigma: 10, Beta: 8.0 / 3.0})).To(HaveLen(1))
	})

	It("is deterministic and leaves its input untouched", func() {
		s := lorenz.State{-3.2, 7.1, 20.5}
		a := lorenz.Derivative(s, p)
		b := lorenz.Derivative(s, p)

		Expect(a).To(Equal(b))
		Expect(s).To(Equal(lorenz.State{-3.2, 7.1, 20.5}))
	})

	It("propagates non-finite values without panicking", func() {
		d := lorenz.Derivative(lorenz.State{math.NaN(), 1, 1}, p)
		Expect(math.IsNaN(d[0])).To(BeTrue())

		d = lorenz.Derivative(lorenz.State{1, 1, 1}, lorenz.Params{Rho: math.Inf(1), Sigma: 10, Beta: 1})
		Expect(math.IsInf(d[1], 1)).To(BeTrue())
	})

	It("adapts to dynamo.System", func() {
		var sys dynamo.System = lorenz.NewField(p)
		Expect(sys.StateDim()).To(Equal(3))

		got := sys.Derive(dynamo.State{1, 2, 3}, 0)
		want := lorenz.Derivative(lorenz.State{1, 2, 3}, p)
		Expect([]float64(got)).To(Equal(want[:]))
	})
})

var _ = Describe("Params", func() {
	It("replaces a named parameter", func() {
		p, err := lorenz.DefaultParams().With("rho", 99.96)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Rho).To(Equal(99.96))
		Expect(p.Sigma).To(Equal(10.0))
	})

	It("rejects unknown names", func() {
		_, err := lorenz.DefaultParams().With("gamma", 1)
		Expect(err).To(MatchError(lorenz.ErrUnknownParam))
	})

	It("uses the six-digit beta of the desktop front end", func() {
		Expect(lorenz.ClassicParams()).To(Equal(lorenz.Params{Rho: 28, Sigma: 10, Beta: 2.666667}))
	})
})
