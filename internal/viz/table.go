package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sirconv/internal/experiment"
)

var expectedOrder = map[string]float64{
	"euler": 1,
	"rk4":   4,
}

func formatOrder(p float64) string {
	return fmt.Sprintf("%.3f", p)
}

func cell(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// RenderReport lays out a sweep as a table, one row per step size.
func RenderReport(report *experiment.Report) string {
	if report == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(GradientTitle.Render(fmt.Sprintf("convergence: %s  beta=%g gamma=%g max_t=%g",
		report.Integrator, report.Beta, report.Gamma, report.MaxT)))
	sb.WriteString("\n\n")

	header := cell(12, "DT") + cell(9, "POINTS") + cell(16, "MAX ERROR") + cell(10, "ORDER") + cell(12, "PEAK I")
	sb.WriteString(HeaderStyle.Render(header))
	sb.WriteString("\n")

	want, known := expectedOrder[report.Integrator]
	for k, run := range report.Runs {
		order := cell(10, "-")
		if k > 0 && k-1 < len(report.Orders) {
			if known {
				order = cell(10, OrderBadge(report.Orders[k-1], want))
			} else {
				order = cell(10, formatOrder(report.Orders[k-1]))
			}
		}
		sb.WriteString(cell(12, fmt.Sprintf("%g", run.Dt)))
		sb.WriteString(cell(9, fmt.Sprintf("%d", run.Points)))
		sb.WriteString(MetricValue.Render(cell(16, fmt.Sprintf("%.6e", run.MaxError))))
		sb.WriteString(order)
		sb.WriteString(cell(12, fmt.Sprintf("%.6f", run.Peak)))
		sb.WriteString("\n")
	}

	if len(report.Orders) > 0 {
		sb.WriteString("\n")
		sb.WriteString(MetricLabel.Render("fitted order: "))
		sb.WriteString(MetricValue.Render(formatOrder(report.FittedOrder)))
		sb.WriteString("\n")
	}

	return sb.String()
}
