package sweep_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fdtdisp/internal/dispersion"
	"github.com/san-kum/fdtdisp/internal/sweep"
)

var _ = Describe("Range", func() {
	It("spans both endpoints evenly", func() {
		pts, err := sweep.Range{Min: 3, Max: 80, Steps: 100}.Points()
		Expect(err).NotTo(HaveOccurred())
		Expect(pts).To(HaveLen(100))
		Expect(pts[0]).To(Equal(3.0))
		Expect(pts[99]).To(BeNumerically("~", 80, 1e-9))
		Expect(pts[1] - pts[0]).To(BeNumerically("~", 77.0/99, 1e-12))
	})

	DescribeTable("rejects unusable ranges",
		func(r sweep.Range) {
			_, err := r.Points()
			Expect(err).To(MatchError(sweep.ErrInvalidRange))
		},
		Entry("single step", sweep.Range{Min: 1, Max: 2, Steps: 1}),
		Entry("inverted", sweep.Range{Min: 5, Max: 2, Steps: 10}),
		Entry("empty", sweep.Range{Min: 2, Max: 2, Steps: 10}),
		Entry("infinite", sweep.Range{Min: 1, Max: math.Inf(1), Steps: 10}),
	)

	It("ends the transition range at N_t", func() {
		r, err := sweep.TransitionRange(0.5, 1, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Max).To(BeNumerically("~", 3, 1e-12))

		_, err = sweep.TransitionRange(0.5, 4, 100)
		Expect(err).To(MatchError(sweep.ErrInvalidRange))

		_, err = sweep.TransitionRange(1.5, 1, 100)
		Expect(errors.Is(err, dispersion.ErrDomain)).To(BeTrue())
	})
})

var _ = Describe("Run", func() {
	var (
		ctx  context.Context
		opts sweep.Options
	)

	BeforeEach(func() {
		ctx = context.Background()
		opts = sweep.Options{Workers: 4, MinChunk: 8}
	})

	It("sweeps the 1D phase-velocity error over [3, 80]", func() {
		res, err := sweep.Run(ctx, sweep.Error1D, sweep.Params{Courant: 0.5}, sweep.Range{Min: 3, Max: 80, Steps: 100}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(100))
		Expect(res.Failures).To(BeEmpty())

		Expect(res.Samples[0].Value).To(BeNumerically(">", 10))
		Expect(res.Samples[0].Value).To(BeNumerically("<", 100))
		Expect(res.Samples[99].Value).To(BeNumerically("<", 0.1))

		for i := 1; i < len(res.Samples); i++ {
			Expect(res.Samples[i].N).To(BeNumerically(">", res.Samples[i-1].N))
			Expect(math.Log(res.Samples[i].Value)).To(BeNumerically("<", math.Log(res.Samples[i-1].Value)))
		}
	})

	It("matches serial evaluation regardless of worker count", func() {
		rng := sweep.Range{Min: 3, Max: 40, Steps: 257}
		p := sweep.Params{Courant: 0.6, Theta: 0.3}

		serial, err := sweep.Run(ctx, sweep.Error2D, p, rng, sweep.Options{Workers: 1})
		Expect(err).NotTo(HaveOccurred())
		parallel, err := sweep.Run(ctx, sweep.Error2D, p, rng, sweep.Options{Workers: 16, MinChunk: 1})
		Expect(err).NotTo(HaveOccurred())

		Expect(parallel.Samples).To(Equal(serial.Samples))
	})

	It("reports failing samples without corrupting computed ones", func() {
		rng := sweep.Range{Min: 1, Max: 10, Steps: 10}
		res, err := sweep.Run(ctx, sweep.Error1D, sweep.Params{Courant: 0.5}, rng, opts)

		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, dispersion.ErrDomain)).To(BeTrue())

		var se *sweep.SampleError
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Index).To(Equal(0))
		Expect(se.N).To(Equal(1.0))

		Expect(res.Failures).To(HaveLen(2))
		Expect(res.Failures[1].N).To(Equal(2.0))
		Expect(res.Samples).To(HaveLen(8))
		for _, s := range res.Samples {
			want, err := dispersion.PhaseVelocityError1D(s.N, 0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Value).To(Equal(want))
		}
	})

	It("covers both regimes of the phase velocity", func() {
		res, err := sweep.Run(ctx, sweep.Velocity, sweep.Params{Courant: 0.5}, sweep.Range{Min: 1, Max: 10, Steps: 100}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(100))

		for _, s := range res.Samples {
			Expect(s.Value).To(BeNumerically(">", 0))
			Expect(s.Value).To(BeNumerically("<=", 2))
			if s.N < 3 {
				Expect(s.Value).To(BeNumerically("~", 2/s.N, 1e-12))
			}
		}
	})

	It("keeps attenuation at zero at the transition density", func() {
		rng, err := sweep.TransitionRange(0.5, 1, 100)
		Expect(err).NotTo(HaveOccurred())

		res, err := sweep.Run(ctx, sweep.Attenuation, sweep.Params{Courant: 0.5}, rng, opts)
		Expect(err).NotTo(HaveOccurred())

		lo, hi, ok := res.Extent()
		Expect(ok).To(BeTrue())
		Expect(lo).To(BeNumerically("~", 0, 1e-6))
		Expect(hi).To(BeNumerically("~", 2*math.Acosh(2), 1e-9))
		Expect(res.Samples[len(res.Samples)-1].Value).To(BeNumerically("~", 0, 1e-6))
	})

	It("stops when the context is canceled", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		res, err := sweep.Run(canceled, sweep.Error1D, sweep.Params{Courant: 0.5}, sweep.Range{Min: 3, Max: 80, Steps: 100}, opts)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res).To(BeNil())
	})

	It("rejects unknown quantities", func() {
		_, err := sweep.Run(ctx, sweep.Quantity("group-delay"), sweep.Params{Courant: 0.5}, sweep.Range{Min: 3, Max: 80, Steps: 10}, opts)
		Expect(err).To(MatchError(ContainSubstring("unknown quantity")))
	})
})

var _ = Describe("Quantity", func() {
	It("parses every listed quantity", func() {
		for _, q := range sweep.Quantities() {
			parsed, err := sweep.ParseQuantity(string(q))
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(q))
			Expect(q.Label()).NotTo(BeEmpty())
		}
	})
})
