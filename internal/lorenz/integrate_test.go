package lorenz_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/integrators"
	"github.com/san-kum/lorenz/internal/lorenz"
)

var _ = Describe("Integrate", func() {
	var (
		start  lorenz.State
		params lorenz.Params
	)

	BeforeEach(func() {
		start = lorenz.State{1, 1, 1}
		params = lorenz.ClassicParams()
	})

	Describe("grid length", func() {
		It("samples the half-open grid exactly", func() {
			tr, err := lorenz.Integrate(start, 1.0, 0.5, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Len()).To(Equal(2))
			Expect(tr.Times).To(Equal([]float64{0.0, 0.5}))
		})

		DescribeTable("matches the arange rule",
			func(t, dt float64, want int) {
				tr, err := lorenz.Integrate(start, t, dt, params)
				Expect(err).NotTo(HaveOccurred())
				Expect(tr.Len()).To(Equal(want))
				for _, axis := range tr.Axes {
					Expect(axis).To(HaveLen(want))
				}
			},
			Entry("t=1 dt=0.3", 1.0, 0.3, 4),
			Entry("t=1 dt=0.1", 1.0, 0.1, 10),
			Entry("t=40 dt=0.01", 40.0, 0.01, 4000),
			Entry("dt larger than t", 0.5, 2.0, 1),
		)
	})

	DescribeTable("fails with InvalidArgument for non-positive dt",
		func(initial lorenz.State, t, dt float64, p lorenz.Params) {
			tr, err := lorenz.Integrate(initial, t, dt, p)
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
			Expect(tr).To(BeNil())
		},
		Entry("zero dt", lorenz.State{1, 1, 1}, 40.0, 0.0, lorenz.DefaultParams()),
		Entry("negative dt", lorenz.State{1, 1, 1}, 40.0, -0.01, lorenz.DefaultParams()),
		Entry("negative dt and t", lorenz.State{0, 0, 0}, -5.0, -1.0, lorenz.DefaultParams()),
		Entry("zero dt and t", lorenz.State{3, 2, 1}, 0.0, 0.0, lorenz.Params{}),
		Entry("NaN dt", lorenz.State{1, 1, 1}, 1.0, math.NaN(), lorenz.DefaultParams()),
		Entry("negative dt with NaN params", lorenz.State{1, 1, 1}, 1.0, -1.0,
			lorenz.Params{Rho: math.NaN(), Sigma: math.NaN(), Beta: math.NaN()}),
	)

	It("checks dt before the solver name", func() {
		_, err := lorenz.Integrate(start, 1, 0, params, lorenz.WithSolver("nope"))
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
	})

	DescribeTable("returns an empty trajectory for non-positive t",
		func(t float64) {
			tr, err := lorenz.Integrate(start, t, 0.01, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Len()).To(Equal(0))
			_, ok := tr.Final()
			Expect(ok).To(BeFalse())
		},
		Entry("zero", 0.0),
		Entry("negative", -10.0),
	)

	It("starts exactly at the initial state", func() {
		for _, solver := range integrators.Names() {
			tr, err := lorenz.Integrate(lorenz.State{0.1, -2.5, 30}, 1, 0.01, params, lorenz.WithSolver(solver))
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.At(0)).To(Equal(lorenz.State{0.1, -2.5, 30}))
			Expect(tr.Times[0]).To(Equal(0.0))
		}
	})

	It("is deterministic", func() {
		for _, solver := range integrators.Names() {
			a, err := lorenz.Integrate(start, 20, 0.01, params, lorenz.WithSolver(solver))
			Expect(err).NotTo(HaveOccurred())
			b, err := lorenz.Integrate(start, 20, 0.01, params, lorenz.WithSolver(solver))
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Axes).To(Equal(b.Axes))
		}
	})

	It("stays at the origin equilibrium", func() {
		for _, solver := range integrators.Names() {
			tr, err := lorenz.Integrate(lorenz.State{}, 40, 0.01, lorenz.DefaultParams(), lorenz.WithSolver(solver))
			Expect(err).NotTo(HaveOccurred())
			for _, axis := range tr.Axes {
				for _, v := range axis {
					Expect(v).To(BeZero())
				}
			}
		}
	})

	It("stays inside the attractor envelope for the classic run", func() {
		tr, err := lorenz.Integrate(start, 40, 0.01, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Len()).To(Equal(4000))

		for i := 0; i < tr.Len(); i++ {
			s := tr.At(i)
			Expect(math.Abs(s[0])).To(BeNumerically("<", 40), "x at sample %d", i)
			Expect(math.Abs(s[1])).To(BeNumerically("<", 40), "y at sample %d", i)
			Expect(s[2]).To(BeNumerically(">", 0), "z at sample %d", i)
			Expect(s[2]).To(BeNumerically("<", 60), "z at sample %d", i)
		}
	})

	It("stays inside the envelope with the adaptive solver", func() {
		tr, err := lorenz.Integrate(start, 40, 0.01, params, lorenz.WithSolver("rk45"))
		Expect(err).NotTo(HaveOccurred())

		lo, hi := tr.Bounds()
		Expect(lo[0]).To(BeNumerically(">", -40))
		Expect(hi[0]).To(BeNumerically("<", 40))
		Expect(lo[1]).To(BeNumerically(">", -40))
		Expect(hi[1]).To(BeNumerically("<", 40))
		Expect(lo[2]).To(BeNumerically(">", 0))
		Expect(hi[2]).To(BeNumerically("<", 60))
	})

	It("amplifies a tiny perturbation", func() {
		a, err := lorenz.Integrate(start, 40, 0.01, params)
		Expect(err).NotTo(HaveOccurred())
		b, err := lorenz.Integrate(lorenz.State{1 + 1e-8, 1, 1}, 40, 0.01, params)
		Expect(err).NotTo(HaveOccurred())

		early := dynamo.State(a.At(100).Slice()).Distance(b.At(100).Slice())
		Expect(early).To(BeNumerically("<", 1e-4))

		maxSep := 0.0
		for i := 0; i < a.Len(); i++ {
			maxSep = math.Max(maxSep, a.At(i).Slice().Distance(b.At(i).Slice()))
		}
		Expect(maxSep).To(BeNumerically(">", 5))
	})

	It("agrees across solvers over a short horizon", func() {
		// RK4 at dt=1e-4 is accurate to ~1e-11 over t=1; every 100th
		// sample lines up with the coarse grid.
		reference, err := lorenz.Integrate(start, 1, 1e-4, params)
		Expect(err).NotTo(HaveOccurred())
		rk45, err := lorenz.Integrate(start, 1, 0.01, params, lorenz.WithSolver("rk45"), lorenz.WithTolerance(1e-10))
		Expect(err).NotTo(HaveOccurred())
		rk4, err := lorenz.Integrate(start, 1, 0.01, params)
		Expect(err).NotTo(HaveOccurred())

		Expect(rk45.Len()).To(Equal(100))
		Expect(rk4.Len()).To(Equal(100))
		Expect(reference.Len()).To(BeNumerically(">=", 100*(rk45.Len()-1)+1))
		for i := 0; i < rk45.Len(); i++ {
			ref := reference.At(100 * i).Slice()
			Expect(rk45.At(i).Slice().Distance(ref)).To(BeNumerically("<", 1e-6))
			// Coarse RK4 carries its own O(dt^4) truncation error.
			Expect(rk4.At(i).Slice().Distance(ref)).To(BeNumerically("<", 2e-3))
		}
	})

	It("keeps non-finite values instead of failing", func() {
		nan := lorenz.Params{Rho: math.NaN(), Sigma: 10, Beta: 8.0 / 3.0}
		tr, err := lorenz.Integrate(start, 1, 0.1, nan)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Len()).To(Equal(10))
		final, _ := tr.Final()
		Expect(final.IsFinite()).To(BeFalse())

		wild := lorenz.Params{Rho: 28, Sigma: 1e6, Beta: 8.0 / 3.0}
		tr, err = lorenz.Integrate(start, 5, 0.01, wild)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Len()).To(Equal(500))
	})

	It("reports adaptive step counts only for rk45", func() {
		adaptive, err := lorenz.Integrate(start, 1, 0.01, params, lorenz.WithSolver("rk45"))
		Expect(err).NotTo(HaveOccurred())
		Expect(adaptive.Stats.Accepted).To(BeNumerically(">=", adaptive.Len()-1))
		Expect(adaptive.Stats.Evaluations).To(BeNumerically(">", 0))

		fixed, err := lorenz.Integrate(start, 1, 0.01, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(fixed.Stats).To(BeZero())
	})

	It("builds the selected stepper", func() {
		s, err := lorenz.NewStepper(lorenz.WithSolver("rk45"), lorenz.WithTolerance(1e-6))
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeAssignableToTypeOf(&integrators.RK45{}))
		Expect(s.(*integrators.RK45).RelTol).To(Equal(1e-6))

		_, err = lorenz.NewStepper(lorenz.WithSolver("lsoda"))
		Expect(err).To(MatchError(integrators.ErrUnknownSolver))
	})

	It("reports an unknown solver", func() {
		_, err := lorenz.Integrate(start, 1, 0.01, params, lorenz.WithSolver("lsoda"))
		Expect(err).To(MatchError(integrators.ErrUnknownSolver))
	})

	It("notifies the observer for every sample", func() {
		var indices []int
		tr, err := lorenz.Integrate(start, 2, 0.01, params, lorenz.WithObserver(func(i int, t float64, s lorenz.State) {
			indices = append(indices, i)
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(indices).To(HaveLen(tr.Len()))
		Expect(indices[len(indices)-1]).To(Equal(tr.Len() - 1))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		tr, err := lorenz.IntegrateContext(ctx, start, 40, 0.01, params)
		Expect(err).To(MatchError(context.Canceled))
		Expect(tr).To(BeNil())
	})
})

var _ = Describe("Sweep", func() {
	It("returns one trajectory per parameter set in order", func() {
		var sets []lorenz.Params
		for _, rho := range []float64{10, 14, 21, 28} {
			p, err := lorenz.DefaultParams().With("rho", rho)
			Expect(err).NotTo(HaveOccurred())
			sets = append(sets, p)
		}

		trs, err := lorenz.Sweep(context.Background(), lorenz.State{1, 1, 1}, 10, 0.01, sets, lorenz.WithParallelism(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(trs).To(HaveLen(len(sets)))

		for i, p := range sets {
			single, err := lorenz.Integrate(lorenz.State{1, 1, 1}, 10, 0.01, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(trs[i].Axes).To(Equal(single.Axes))
		}
	})

	It("gives every run its own adaptive stepper", func() {
		sets := []lorenz.Params{lorenz.DefaultParams(), lorenz.DefaultParams(), lorenz.DefaultParams()}
		trs, err := lorenz.Sweep(context.Background(), lorenz.State{1, 1, 1}, 2, 0.01, sets,
			lorenz.WithSolver("rk45"), lorenz.WithParallelism(3))
		Expect(err).NotTo(HaveOccurred())

		single, err := lorenz.Integrate(lorenz.State{1, 1, 1}, 2, 0.01, lorenz.DefaultParams(), lorenz.WithSolver("rk45"))
		Expect(err).NotTo(HaveOccurred())
		for _, tr := range trs {
			Expect(tr.Axes).To(Equal(single.Axes))
			Expect(tr.Stats).To(Equal(single.Stats))
		}
	})

	It("validates dt before starting any run", func() {
		_, err := lorenz.Sweep(context.Background(), lorenz.State{1, 1, 1}, 10, 0, []lorenz.Params{lorenz.DefaultParams()})
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
	})

	It("rejects an unknown solver up front", func() {
		_, err := lorenz.Sweep(context.Background(), lorenz.State{1, 1, 1}, 1, 0.01,
			[]lorenz.Params{lorenz.DefaultParams()}, lorenz.WithSolver("lsoda"))
		Expect(err).To(MatchError(integrators.ErrUnknownSolver))
	})
})
