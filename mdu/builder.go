package mdu

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new units.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	fault  Fault
}

// NewBuilder returns a builder for a 1 GHz unit without faults.
func NewBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the unit.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	if freq <= 0 {
		panic("frequency must be positive")
	}
	b.freq = freq
	return b
}

// WithFault injects a defect into the built unit.
func (b Builder) WithFault(fault Fault) Builder {
	b.fault = fault
	return b
}

// Build creates a unit. The unit starts out of reset with all outputs low.
func (b Builder) Build(name string) *Unit {
	u := &Unit{
		fault: b.fault,
	}

	u.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, u)
	u.in.rstN = true

	return u
}
