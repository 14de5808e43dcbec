package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/mdverify/mdu"
)

// Params holds the settings of a conformance run.
type Params struct {
	// TimeoutCycles bounds how long the driver polls a divide for done.
	// Default: 200 cycles.
	TimeoutCycles int `json:"timeout_cycles"`

	// ResetCycles is how long reset is held active. Default: 5 cycles.
	ResetCycles int `json:"reset_cycles"`

	// FreqMHz is the clock of the simulated unit. Default: 1000 MHz.
	FreqMHz float64 `json:"freq_mhz"`

	// RandomCases is the size of the randomized sweep run after the
	// reference campaign. Default: 0 (disabled).
	RandomCases int `json:"random_cases"`

	// Seed feeds the operand generators of the randomized sweep.
	Seed int64 `json:"seed"`

	// Fault names a defect to inject into the simulated unit, see
	// mdu.ParseFault. Default: "" (none).
	Fault string `json:"fault"`
}

// DefaultParams returns the settings of the reference testbench.
func DefaultParams() *Params {
	return &Params{
		TimeoutCycles: 200,
		ResetCycles:   5,
		FreqMHz:       1000,
		RandomCases:   0,
		Seed:          1,
		Fault:         "",
	}
}

// LoadParams reads Params from a JSON file. Missing fields keep their
// defaults.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	p := DefaultParams()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return p, nil
}

// SaveParams writes Params to a JSON file.
func (p *Params) SaveParams(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the settings can drive a run.
func (p *Params) Validate() error {
	if p.TimeoutCycles <= 0 {
		return fmt.Errorf("timeout_cycles must be > 0")
	}
	if p.ResetCycles <= 0 {
		return fmt.Errorf("reset_cycles must be > 0")
	}
	if p.FreqMHz <= 0 {
		return fmt.Errorf("freq_mhz must be > 0")
	}
	if p.RandomCases < 0 {
		return fmt.Errorf("random_cases must be >= 0")
	}
	if _, err := mdu.ParseFault(p.Fault); err != nil {
		return fmt.Errorf("fault: %w", err)
	}
	return nil
}

// Clone returns a copy of the Params.
func (p *Params) Clone() *Params {
	c := *p
	return &c
}
