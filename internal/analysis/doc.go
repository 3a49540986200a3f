// Package analysis provides convergence diagnostics for step-size sweeps.
//
// Given the step sizes of a sweep and the sup-norm error measured at
// each one, the package estimates how fast the error shrinks:
//
//   - [ObservedOrders]: order between each pair of neighbouring steps
//   - [FitOrder]: least-squares slope of log(error) against log(dt)
//   - [IsNonIncreasing]: monotone decrease check with a relative tolerance
//   - [LargestStepWithin]: coarsest step meeting an error tolerance
//
// # Reading the Order
//
// A first-order method such as forward Euler halves its error when the
// step is halved, so its observed order sits near 1:
//
//	p, _ := analysis.FitOrder(dts, errs)
//	if math.Abs(p-1) < 0.1 {
//	    // first-order convergence
//	}
package analysis
