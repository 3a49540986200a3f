package metrics

import (
	"math"

	"github.com/san-kum/sirconv/internal/sim"
)

// PeakPrevalence tracks the largest infected fraction seen during a run.
type PeakPrevalence struct {
	peak    float64
	at      float64
	samples int
}

func NewPeakPrevalence() *PeakPrevalence {
	return &PeakPrevalence{}
}

func (p *PeakPrevalence) Name() string { return "peak_prevalence" }

func (p *PeakPrevalence) Observe(x sim.State, t float64) {
	if len(x) <= sim.IdxI {
		return
	}
	if p.samples == 0 || x[sim.IdxI] > p.peak {
		p.peak = x[sim.IdxI]
		p.at = t
	}
	p.samples++
}

func (p *PeakPrevalence) Value() float64 {
	return p.peak
}

// Time returns when the peak was first reached.
func (p *PeakPrevalence) Time() float64 {
	return p.at
}

func (p *PeakPrevalence) Reset() {
	p.peak = 0
	p.at = 0
	p.samples = 0
}

// PopulationDrift measures how far S+I strays from its initial value.
type PopulationDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewPopulationDrift() *PopulationDrift {
	return &PopulationDrift{}
}

func (d *PopulationDrift) Name() string { return "population_drift" }

func (d *PopulationDrift) Observe(x sim.State, t float64) {
	total := x.Sum()
	if d.samples == 0 {
		d.initial = total
	}
	d.samples++
	d.maxDrift = math.Max(d.maxDrift, math.Abs(total-d.initial))
}

func (d *PopulationDrift) Value() float64 {
	return d.maxDrift
}

func (d *PopulationDrift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
