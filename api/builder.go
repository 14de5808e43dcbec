package api

// DefaultTimeout is the number of cycles a divide may take before the driver
// gives up on it.
const DefaultTimeout = 200

// DefaultResetCycles is how long reset is held active.
const DefaultResetCycles = 5

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	unit        Unit
	clock       Clock
	timeout     int
	resetCycles int
}

// WithUnit sets the unit that the driver controls.
func (b DriverBuilder) WithUnit(unit Unit) DriverBuilder {
	b.unit = unit
	return b
}

// WithClock sets the clock that the driver advances.
func (b DriverBuilder) WithClock(clock Clock) DriverBuilder {
	b.clock = clock
	return b
}

// WithTimeout sets the polling bound for divide operations.
func (b DriverBuilder) WithTimeout(cycles int) DriverBuilder {
	if cycles <= 0 {
		panic("timeout must be at least one cycle")
	}
	b.timeout = cycles
	return b
}

// WithResetCycles sets how many cycles reset is held.
func (b DriverBuilder) WithResetCycles(cycles int) DriverBuilder {
	if cycles <= 0 {
		panic("reset must be held for at least one cycle")
	}
	b.resetCycles = cycles
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	if b.unit == nil || b.clock == nil {
		panic("driver needs both a unit and a clock")
	}

	d := &driverImpl{
		name:        name,
		unit:        b.unit,
		clock:       b.clock,
		timeout:     b.timeout,
		resetCycles: b.resetCycles,
	}

	if d.timeout == 0 {
		d.timeout = DefaultTimeout
	}
	if d.resetCycles == 0 {
		d.resetCycles = DefaultResetCycles
	}

	return d
}
