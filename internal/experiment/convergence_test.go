package experiment_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sirconv/internal/analysis"
	"github.com/san-kum/sirconv/internal/experiment"
)

var _ = Describe("Convergence sweep", func() {
	var (
		cfg    experiment.Config
		report *experiment.Report
	)

	BeforeEach(func() {
		cfg = experiment.DefaultConfig()
	})

	JustBeforeEach(func() {
		var err error
		report, err = experiment.New(cfg).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
	})

	Context("with the default Euler study", func() {
		It("reports one error per step size in input order", func() {
			Expect(report.Errors).To(HaveLen(len(cfg.StepSizes)))
			Expect(report.StepSizes()).To(Equal(cfg.StepSizes))
		})

		It("reproduces the reference error sequence", func() {
			expected := []float64{
				0.1263393498870075,
				0.08077107437456943,
				0.04283504637204699,
				0.02199772042578746,
				0.011110659764940967,
				0.005580919660416017,
				0.0027958469189565127,
			}
			for k, e := range expected {
				Expect(report.Errors[k]).To(BeNumerically("~", e, 1e-9))
			}
		})

		It("shrinks the error as the step is halved", func() {
			Expect(analysis.IsNonIncreasing(report.Errors, 0)).To(BeTrue())
			Expect(report.Errors[len(report.Errors)-1]).To(BeNumerically("<", report.Errors[0]))
		})

		It("converges at first order", func() {
			Expect(report.FittedOrder).To(BeNumerically("~", 1, 0.1))
			Expect(report.Orders).To(HaveLen(len(cfg.StepSizes) - 1))
			Expect(report.Orders[len(report.Orders)-1]).To(BeNumerically("~", 1, 0.01))
		})

		It("conserves the total population up to round-off", func() {
			for _, run := range report.Runs {
				Expect(run.Drift).To(BeNumerically("<", 1e-12))
			}
		})

		It("produces one extra point past the horizon on coarse grids", func() {
			Expect(report.Runs[0].Points).To(Equal(14))
			Expect(report.Runs[1].Points).To(Equal(26))
		})
	})

	Context("when runs execute in parallel", func() {
		BeforeEach(func() {
			cfg.Parallel = true
		})

		It("matches the sequential result exactly", func() {
			seq := experiment.DefaultConfig()
			want, err := experiment.New(seq).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Errors).To(Equal(want.Errors))
		})
	})

	Context("with the RK4 integrator", func() {
		BeforeEach(func() {
			cfg.Integrator = "rk4"
		})

		It("converges faster than Euler", func() {
			Expect(report.FittedOrder).To(BeNumerically(">", 3))
			Expect(report.Errors[len(report.Errors)-1]).To(BeNumerically("<", 1e-8))
		})
	})
})
