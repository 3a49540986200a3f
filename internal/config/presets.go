package config

import "sort"

var Presets = map[string]*Config{
	"baseline": DefaultConfig(),
	"fine": {
		Beta: DefaultBeta, Gamma: DefaultGamma, SInit: DefaultSInit, IInit: DefaultIInit,
		MaxT: DefaultMaxT, StepSizes: HalvingSteps(1, 10), Integrator: "euler",
	},
	"near-threshold": {
		Beta: 2.2, Gamma: 2.0, SInit: DefaultSInit, IInit: DefaultIInit,
		MaxT: 100, StepSizes: HalvingSteps(2, 7), Integrator: "euler",
	},
	"rk4": {
		Beta: DefaultBeta, Gamma: DefaultGamma, SInit: DefaultSInit, IInit: DefaultIInit,
		MaxT: DefaultMaxT, StepSizes: HalvingSteps(2, 7), Integrator: "rk4",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.StepSizes = append([]float64(nil), p.StepSizes...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
