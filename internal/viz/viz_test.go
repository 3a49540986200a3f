package viz

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sirconv/internal/experiment"
)

func sweep(t *testing.T) *experiment.Report {
	t.Helper()
	cfg := experiment.DefaultConfig()
	cfg.StepSizes = []float64{1, 0.5, 0.25}
	report, err := experiment.New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	return report
}

func TestRenderReport(t *testing.T) {
	out := RenderReport(sweep(t))

	for _, want := range []string{"convergence: euler", "DT", "MAX ERROR", "0.25", "fitted order"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if RenderReport(nil) != "" {
		t.Error("expected empty output for nil report")
	}
}

func TestPlotErrors(t *testing.T) {
	out := PlotErrors(sweep(t))
	if !strings.Contains(out, "log10 max") {
		t.Errorf("plot missing caption:\n%s", out)
	}
	if PlotErrors(&experiment.Report{}) != "" {
		t.Error("expected empty plot for empty report")
	}
}

func TestPlotErrors_StopsAtUnplottableError(t *testing.T) {
	report := &experiment.Report{
		Integrator: "euler",
		Runs:       []experiment.Run{{Dt: 1}, {Dt: 0.5}, {Dt: 0.25}, {Dt: 0.125}},
		Errors:     []float64{0.1, 0.05, 0, 0.01},
	}

	out := PlotErrors(report)
	if !strings.Contains(out, "dt 1 → 0.5") {
		t.Errorf("caption should cover only the plotted runs:\n%s", out)
	}
	if !strings.Contains(out, "last 2 omitted") {
		t.Errorf("caption should name the omitted runs:\n%s", out)
	}

	if got := leadingLog10(report.Errors); len(got) != 2 {
		t.Errorf("expected 2 plotted points, got %v", got)
	}
	if got := leadingLog10([]float64{0, 0.1}); len(got) != 0 {
		t.Errorf("a leading zero error should plot nothing, got %v", got)
	}
}

func TestPlotTrajectory(t *testing.T) {
	traj, err := experiment.Solve(context.Background(), experiment.DefaultConfig(), 0.5)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	out := PlotTrajectory(traj)
	if !strings.Contains(out, "dt=0.5") {
		t.Errorf("plot missing caption:\n%s", out)
	}
}

func TestExplorerNavigation(t *testing.T) {
	cfg := experiment.DefaultConfig()
	e := NewExplorer(cfg)
	if e.Err() != nil {
		t.Fatalf("explorer failed to load: %v", e.Err())
	}

	e.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if e.Selected() != 0 {
		t.Errorf("left at start should stay at 0, got %d", e.Selected())
	}

	e.Update(tea.KeyMsg{Type: tea.KeyRight})
	if e.Selected() != 1 {
		t.Fatalf("expected selection 1, got %d", e.Selected())
	}
	if e.Current() == nil || e.Current().Dt != cfg.StepSizes[1] {
		t.Errorf("expected trajectory for dt=%v", cfg.StepSizes[1])
	}

	for i := 0; i < 20; i++ {
		e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	}
	if e.Selected() != len(cfg.StepSizes)-1 {
		t.Errorf("expected selection clamped at %d, got %d", len(cfg.StepSizes)-1, e.Selected())
	}

	if !strings.Contains(e.View(), "max error") {
		t.Error("view missing stats panel")
	}
}

func TestExplorerQuit(t *testing.T) {
	e := NewExplorer(experiment.DefaultConfig())

	_, cmd := e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestExplorerError(t *testing.T) {
	cfg := experiment.DefaultConfig()
	cfg.I0 = 0

	e := NewExplorer(cfg)
	if e.Err() == nil {
		t.Fatal("expected error for undefined closed form")
	}
	if !strings.Contains(e.View(), "error:") {
		t.Error("view should show the error")
	}
}
