package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/sirconv/internal/experiment"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBeta       = 3.0
	DefaultGamma      = 2.0
	DefaultSInit      = 0.99
	DefaultIInit      = 0.01
	DefaultMaxT       = 25.0
	DefaultIntegrator = "euler"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Beta       float64   `yaml:"beta"`
	Gamma      float64   `yaml:"gamma"`
	SInit      float64   `yaml:"s_init"`
	IInit      float64   `yaml:"i_init"`
	TInit      float64   `yaml:"t_init"`
	MaxT       float64   `yaml:"max_t"`
	StepSizes  []float64 `yaml:"step_sizes"`
	Integrator string    `yaml:"integrator"`
	Parallel   bool      `yaml:"parallel"`
}

func DefaultConfig() *Config {
	return &Config{
		Beta:       DefaultBeta,
		Gamma:      DefaultGamma,
		SInit:      DefaultSInit,
		IInit:      DefaultIInit,
		MaxT:       DefaultMaxT,
		StepSizes:  HalvingSteps(2, 7),
		Integrator: DefaultIntegrator,
	}
}

// HalvingSteps returns n step sizes starting at first, each half the previous.
func HalvingSteps(first float64, n int) []float64 {
	steps := make([]float64, n)
	dt := first
	for i := range steps {
		steps[i] = dt
		dt /= 2
	}
	return steps
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values for which no grid can be built. A zero i_init
// is accepted here and surfaces as an undefined closed form at run time.
func (c *Config) Validate() error {
	for name, v := range map[string]float64{
		"beta": c.Beta, "gamma": c.Gamma, "s_init": c.SInit,
		"i_init": c.IInit, "t_init": c.TInit, "max_t": c.MaxT,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalid, name)
		}
	}
	if len(c.StepSizes) == 0 {
		return fmt.Errorf("%w: step_sizes is empty", ErrInvalid)
	}
	for i, dt := range c.StepSizes {
		if !(dt > 0) || math.IsInf(dt, 0) {
			return fmt.Errorf("%w: step_sizes[%d] must be positive, got %v", ErrInvalid, i, dt)
		}
	}
	if c.Integrator == "" {
		return fmt.Errorf("%w: integrator is empty", ErrInvalid)
	}
	return nil
}

func (c *Config) ToExperiment() experiment.Config {
	steps := make([]float64, len(c.StepSizes))
	copy(steps, c.StepSizes)
	return experiment.Config{
		Beta:       c.Beta,
		Gamma:      c.Gamma,
		S0:         c.SInit,
		I0:         c.IInit,
		T0:         c.TInit,
		MaxT:       c.MaxT,
		StepSizes:  steps,
		Integrator: c.Integrator,
		Parallel:   c.Parallel,
	}
}
