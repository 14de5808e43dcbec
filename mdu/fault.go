package mdu

import (
	"fmt"
	"strings"
)

// Fault selects a deliberate defect in the simulated unit. It lets the
// failure paths of a checker be exercised against a real model.
type Fault int

const (
	// FaultNone is a correct unit.
	FaultNone Fault = iota
	// FaultHang never completes a division.
	FaultHang
	// FaultBusyOnDone leaves busy asserted on the cycle done rises.
	FaultBusyOnDone
	// FaultDivZero returns 0 instead of all ones for a zero divisor.
	FaultDivZero
	// FaultSlowMul answers multiplies one cycle late.
	FaultSlowMul
)

var faultNames = map[Fault]string{
	FaultNone:       "none",
	FaultHang:       "hang",
	FaultBusyOnDone: "busy-on-done",
	FaultDivZero:    "div-zero",
	FaultSlowMul:    "slow-mul",
}

func (f Fault) String() string {
	if name, ok := faultNames[f]; ok {
		return name
	}

	return fmt.Sprintf("Fault(%d)", int(f))
}

// ParseFault converts a fault name to a Fault. The empty string is FaultNone.
func ParseFault(s string) (Fault, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FaultNone, nil
	}

	for f, n := range faultNames {
		if n == name {
			return f, nil
		}
	}

	return FaultNone, fmt.Errorf("unknown fault %q", s)
}
