// Package config assembles a simulated multiply/divide unit and the driver
// that exercises it.
package config

import (
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/mdverify/api"
	"github.com/sarchlab/mdverify/mdu"
)

// Bench owns the engine and the unit. It is the clock of the simulation: each
// Tick schedules exactly one edge of the unit and runs the engine until that
// edge has been handled.
type Bench struct {
	Engine sim.Engine
	Unit   *mdu.Unit
}

// Tick advances the simulation by one clock cycle.
func (b *Bench) Tick() {
	b.Unit.TickLater()

	if err := b.Engine.Run(); err != nil {
		panic(err)
	}
}

// Cycle returns the number of edges the unit has seen.
func (b *Bench) Cycle() uint64 {
	return b.Unit.Cycle()
}

// NewDriver builds a driver that controls the bench's unit with the bounds
// from p.
func (b *Bench) NewDriver(name string, p *Params) api.Driver {
	return api.DriverBuilder{}.
		WithUnit(b.Unit).
		WithClock(b).
		WithTimeout(p.TimeoutCycles).
		WithResetCycles(p.ResetCycles).
		Build(name)
}

// BenchBuilder can build benches.
type BenchBuilder struct {
	engine  sim.Engine
	freq    sim.Freq
	fault   mdu.Fault
	monitor *monitoring.Monitor
}

// WithEngine sets the engine that drives the simulation.
func (b BenchBuilder) WithEngine(engine sim.Engine) BenchBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the unit.
func (b BenchBuilder) WithFreq(freq sim.Freq) BenchBuilder {
	b.freq = freq
	return b
}

// WithFault injects a defect into the unit.
func (b BenchBuilder) WithFault(fault mdu.Fault) BenchBuilder {
	b.fault = fault
	return b
}

// WithMonitor sets the monitor that watches the engine and the unit.
func (b BenchBuilder) WithMonitor(monitor *monitoring.Monitor) BenchBuilder {
	b.monitor = monitor
	return b
}

// WithParams applies the clock and fault settings of p.
func (b BenchBuilder) WithParams(p *Params) BenchBuilder {
	fault, err := mdu.ParseFault(p.Fault)
	if err != nil {
		panic(err)
	}

	return b.WithFreq(sim.Freq(p.FreqMHz) * sim.MHz).WithFault(fault)
}

// Build creates a bench. A serial engine is created if none was given.
func (b BenchBuilder) Build(name string) *Bench {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	freq := b.freq
	if freq == 0 {
		freq = 1 * sim.GHz
	}

	unit := mdu.NewBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithFault(b.fault).
		Build(name + ".MDU")

	if b.monitor != nil {
		b.monitor.RegisterEngine(engine)
		b.monitor.RegisterComponent(unit)
	}

	return &Bench{
		Engine: engine,
		Unit:   unit,
	}
}
