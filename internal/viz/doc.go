// Package viz renders convergence studies in the terminal.
//
//   - [PlotErrors]: log10 sup-norm error against step index (asciigraph)
//   - [PlotTrajectory]: numerical and analytical I(t) on one chart
//   - [RenderReport]: styled table of a sweep (lipgloss)
//   - [Explorer]: Bubble Tea model stepping through the sweep
//
// # Key Bindings
//
//	←/h, →/l - Previous/next step size
//	q, Esc   - Quit
package viz
