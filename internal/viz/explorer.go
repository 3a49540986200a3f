package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sirconv/internal/experiment"
	"github.com/san-kum/sirconv/internal/metrics"
)

// Explorer is a Bubble Tea model that shows one step size of a sweep
// at a time. Trajectories are solved lazily and cached.
type Explorer struct {
	cfg      experiment.Config
	selected int
	cache    map[int]*experiment.Trajectory
	errs     map[int]float64
	err      error
	width    int
}

func NewExplorer(cfg experiment.Config) *Explorer {
	e := &Explorer{
		cfg:   cfg,
		cache: make(map[int]*experiment.Trajectory),
		errs:  make(map[int]float64),
	}
	e.load()
	return e
}

func (e *Explorer) Selected() int { return e.selected }

func (e *Explorer) Err() error { return e.err }

// Current returns the trajectory of the selected step size.
func (e *Explorer) Current() *experiment.Trajectory {
	return e.cache[e.selected]
}

func (e *Explorer) load() {
	if len(e.cfg.StepSizes) == 0 {
		e.err = fmt.Errorf("no step sizes configured")
		return
	}
	if _, ok := e.cache[e.selected]; ok {
		return
	}

	traj, err := experiment.Solve(context.Background(), e.cfg, e.cfg.StepSizes[e.selected])
	if err != nil {
		e.err = err
		return
	}
	maxErr, err := metrics.SupNorm(traj.IAnalytical, traj.INumerical)
	if err != nil {
		e.err = err
		return
	}
	e.err = nil
	e.cache[e.selected] = traj
	e.errs[e.selected] = maxErr
}

func (e *Explorer) Init() tea.Cmd {
	return nil
}

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return e, tea.Quit
		case "left", "h":
			if e.selected > 0 {
				e.selected--
				e.load()
			}
		case "right", "l":
			if e.selected < len(e.cfg.StepSizes)-1 {
				e.selected++
				e.load()
			}
		}
	case tea.WindowSizeMsg:
		e.width = msg.Width
	}
	return e, nil
}

func (e *Explorer) View() string {
	var sb strings.Builder

	sb.WriteString(GradientTitle.Render("sirconv explorer"))
	sb.WriteString("\n\n")

	if e.err != nil {
		sb.WriteString(ErrorStyle.Render("error: " + e.err.Error()))
		sb.WriteString("\n")
	} else if traj := e.Current(); traj != nil {
		sb.WriteString(PlotTrajectory(traj))
		sb.WriteString("\n\n")

		stats := []struct{ label, value string }{
			{"step", fmt.Sprintf("%d/%d", e.selected+1, len(e.cfg.StepSizes))},
			{"dt", fmt.Sprintf("%g", traj.Dt)},
			{"points", fmt.Sprintf("%d", len(traj.Times))},
			{"max error", fmt.Sprintf("%.6e", e.errs[e.selected])},
			{"peak I", fmt.Sprintf("%.6f", traj.Metrics["peak_prevalence"])},
		}
		lines := make([]string, len(stats))
		for k, s := range stats {
			lines[k] = MetricLabel.Render(fmt.Sprintf("%-10s", s.label)) + " " + MetricValue.Render(s.value)
		}
		sb.WriteString(GlassPanel.Render(strings.Join(lines, "\n")))
		sb.WriteString("\n")
	}

	width := e.width
	if width < 20 {
		width = 60
	}
	sb.WriteString(Separator(width))
	sb.WriteString("\n")
	sb.WriteString(KeyHint.Render("←/→ step size • q quit"))
	sb.WriteString("\n")
	return sb.String()
}
