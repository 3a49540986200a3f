package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sirconv/internal/experiment"
)

const (
	plotWidth  = 70
	plotHeight = 15
)

// PlotErrors charts log10(max error) per step size, coarsest first. Only
// the leading runs with a positive finite error are drawn so that x
// positions keep matching report.Runs; the caption names what was cut.
func PlotErrors(report *experiment.Report) string {
	if report == nil || len(report.Errors) == 0 {
		return ""
	}

	data := leadingLog10(report.Errors)
	if len(data) == 0 {
		return ""
	}

	caption := fmt.Sprintf("log10 max |I_analytical - I_%s| by step", report.Integrator)
	if len(report.Runs) >= len(data) {
		caption += fmt.Sprintf(" (dt %v → %v)", report.Runs[0].Dt, report.Runs[len(data)-1].Dt)
	}
	if omitted := len(report.Errors) - len(data); omitted > 0 {
		caption += fmt.Sprintf(", last %d omitted (zero or non-finite error)", omitted)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotTrajectory overlays the numerical (first series) and analytical
// infected fraction.
func PlotTrajectory(traj *experiment.Trajectory) string {
	if traj == nil || len(traj.Times) == 0 {
		return ""
	}

	return asciigraph.PlotMany([][]float64{traj.INumerical, traj.IAnalytical},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Cyan),
		asciigraph.Caption(fmt.Sprintf("I(t), dt=%v: green numerical, cyan analytical", traj.Dt)),
	)
}

// leadingLog10 maps errors to log10 up to the first one that has no
// finite logarithm.
func leadingLog10(errs []float64) []float64 {
	out := make([]float64, 0, len(errs))
	for _, e := range errs {
		v := math.Log10(e)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			break
		}
		out = append(out, v)
	}
	return out
}
