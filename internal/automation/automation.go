package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/sirconv/internal/config"
	"github.com/san-kum/sirconv/internal/experiment"
	"github.com/san-kum/sirconv/internal/metrics"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of convergence studies
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one study. Preset, when set, supplies the base values
// and the inline fields override it.
type ScenarioStep struct {
	Name   string        `yaml:"name"`
	Preset string        `yaml:"preset"`
	Config config.Config `yaml:",inline"`
}

// StepReport pairs a step's name with its outcome
type StepReport struct {
	Name   string
	Report *experiment.Report
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var raw struct {
		Name        string      `yaml:"name"`
		Description string      `yaml:"description"`
		Steps       []yaml.Node `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	scenario := &Scenario{Name: raw.Name, Description: raw.Description}
	for i, node := range raw.Steps {
		var head struct {
			Name   string `yaml:"name"`
			Preset string `yaml:"preset"`
		}
		if err := node.Decode(&head); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		base := config.DefaultConfig()
		if head.Preset != "" {
			if base = config.GetPreset(head.Preset); base == nil {
				return nil, fmt.Errorf("step %d: unknown preset: %s (available: %v)", i+1, head.Preset, config.ListPresets())
			}
		}

		// decoding over the base keeps every key the step leaves out
		step := ScenarioStep{Name: head.Name, Preset: head.Preset, Config: *base}
		if err := node.Decode(&step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Name == "" {
			step.Name = fmt.Sprintf("step-%d", i+1)
		}
		scenario.Steps = append(scenario.Steps, step)
	}

	return scenario, nil
}

// RunScenario executes all steps in a scenario, reporting progress to out
func RunScenario(ctx context.Context, scenario *Scenario, out io.Writer) ([]StepReport, error) {
	results := make([]StepReport, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Name)

		cfg := step.Config
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		report, err := experiment.New(cfg.ToExperiment()).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepReport{Name: step.Name, Report: report})
	}

	return results, nil
}

// ParameterSweep measures the error at a fixed step size across a range
// of transmission rates
type ParameterSweep struct {
	Base     experiment.Config
	BetaMin  float64
	BetaMax  float64
	NumSteps int
	Dt       float64
}

// SweepResult holds the outcome for one beta
type SweepResult struct {
	Beta     float64
	R0       float64
	MaxError float64
	Peak     float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}

	betaStep := 0.0
	if sweep.NumSteps > 1 {
		betaStep = (sweep.BetaMax - sweep.BetaMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		cfg := sweep.Base
		cfg.Beta = sweep.BetaMin + float64(i)*betaStep

		traj, err := experiment.Solve(ctx, cfg, sweep.Dt)
		if err != nil {
			return nil, fmt.Errorf("beta=%v: %w", cfg.Beta, err)
		}
		maxErr, err := metrics.SupNorm(traj.IAnalytical, traj.INumerical)
		if err != nil {
			return nil, fmt.Errorf("beta=%v: %w", cfg.Beta, err)
		}

		results = append(results, SweepResult{
			Beta:     cfg.Beta,
			R0:       cfg.Beta / cfg.Gamma,
			MaxError: maxErr,
			Peak:     traj.Metrics["peak_prevalence"],
		})
	}

	return results, nil
}
