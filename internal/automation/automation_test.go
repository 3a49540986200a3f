package automation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/sirconv/internal/experiment"
)

const scenarioYAML = `
name: ladders
description: euler against rk4
steps:
  - name: coarse
    step_sizes: [1, 0.5]
  - preset: rk4
    max_t: 10
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatalf("ParseScenario failed: %v", err)
	}
	if s.Name != "ladders" || len(s.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", s)
	}

	coarse := s.Steps[0]
	if coarse.Name != "coarse" || len(coarse.Config.StepSizes) != 2 {
		t.Errorf("unexpected first step %+v", coarse)
	}
	if coarse.Config.Beta != 3 || coarse.Config.Integrator != "euler" {
		t.Errorf("first step should keep defaults, got %+v", coarse.Config)
	}

	rk4 := s.Steps[1]
	if rk4.Name != "step-2" {
		t.Errorf("expected generated name step-2, got %s", rk4.Name)
	}
	if rk4.Config.Integrator != "rk4" || rk4.Config.MaxT != 10 {
		t.Errorf("preset override not applied: %+v", rk4.Config)
	}
}

func TestParseScenario_UnknownPreset(t *testing.T) {
	_, err := ParseScenario([]byte("steps:\n  - preset: nope\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("expected unknown preset error, got %v", err)
	}
}

func TestLoadAndRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	var out bytes.Buffer
	reports, err := RunScenario(context.Background(), s, &out)
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if len(reports[0].Report.Errors) != 2 {
		t.Errorf("expected 2 errors in first report, got %d", len(reports[0].Report.Errors))
	}
	if !strings.Contains(out.String(), "running step 2/2") {
		t.Errorf("missing progress output: %q", out.String())
	}
}

func TestRunScenario_InvalidStep(t *testing.T) {
	s, err := ParseScenario([]byte("steps:\n  - step_sizes: [0]\n"))
	if err != nil {
		t.Fatalf("ParseScenario failed: %v", err)
	}
	if _, err := RunScenario(context.Background(), s, &bytes.Buffer{}); err == nil {
		t.Error("expected validation error")
	}
}

func TestRunSweep(t *testing.T) {
	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:     experiment.DefaultConfig(),
		BetaMin:  2.5,
		BetaMax:  4.5,
		NumSteps: 3,
		Dt:       0.25,
	})
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Beta != 3.5 || results[1].R0 != 1.75 {
		t.Errorf("unexpected middle result %+v", results[1])
	}
	for _, r := range results {
		if !(r.MaxError > 0) {
			t.Errorf("beta=%v: expected positive error, got %v", r.Beta, r.MaxError)
		}
	}
}

func TestRunSweep_NoSteps(t *testing.T) {
	if _, err := RunSweep(context.Background(), &ParameterSweep{Base: experiment.DefaultConfig(), Dt: 1}); err == nil {
		t.Error("expected error for zero steps")
	}
}
