package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/sirconv/internal/experiment"
)

type point struct{ X, Y float64 }

// WriteTrajectorySVG draws I(t) for the numerical (strokeNumerical) and
// analytical (strokeAnalytical) solutions on shared axes.
func WriteTrajectorySVG(w io.Writer, traj *experiment.Trajectory, width, height int) error {
	n := len(traj.Times)
	if n < 2 {
		return fmt.Errorf("need at least two points to draw, got %d", n)
	}
	if len(traj.INumerical) != n || len(traj.IAnalytical) != n {
		return fmt.Errorf("trajectory columns differ in length")
	}

	numerical := make([]point, n)
	analytical := make([]point, n)
	for k := 0; k < n; k++ {
		numerical[k] = point{traj.Times[k], traj.INumerical[k]}
		analytical[k] = point{traj.Times[k], traj.IAnalytical[k]}
	}

	// Find bounds over both series
	minX, maxX := numerical[0].X, numerical[0].X
	minY, maxY := numerical[0].Y, numerical[0].Y
	for _, series := range [][]point{numerical, analytical} {
		for _, p := range series {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, s := range []struct {
		points []point
		stroke string
		label  string
	}{
		{numerical, strokeNumerical, "numerical"},
		{analytical, strokeAnalytical, "analytical"},
	} {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" data-series="%s" d="M`, s.stroke, s.label))
		for i, p := range s.points {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)

			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(fmt.Sprintf(`<text x="8" y="16" fill="#888899" font-family="monospace" font-size="12">dt=%g</text>
</svg>
`, traj.Dt))

	_, err := io.WriteString(w, sb.String())
	return err
}

const (
	strokeNumerical  = "#00ff88"
	strokeAnalytical = "#00ccff"
)
