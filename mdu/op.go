// Package mdu models the multiply/divide unit of a RV32M core as a clocked
// akita component.
package mdu

import (
	"fmt"
	"strings"
)

// Op is the 3-bit operation code driven on the unit's op input.
type Op uint8

// The encodings follow funct3 of the RV32M instructions.
const (
	OpMul    Op = 0
	OpMulh   Op = 1
	OpMulhsu Op = 2
	OpMulhu  Op = 3
	OpDiv    Op = 4
	OpDivu   Op = 5
	OpRem    Op = 6
	OpRemu   Op = 7
)

// AllOps lists every operation in encoding order.
var AllOps = []Op{
	OpMul, OpMulh, OpMulhsu, OpMulhu,
	OpDiv, OpDivu, OpRem, OpRemu,
}

var opNames = [...]string{
	"MUL", "MULH", "MULHSU", "MULHU",
	"DIV", "DIVU", "REM", "REMU",
}

// Valid reports whether op fits in the 3-bit encoding.
func (op Op) Valid() bool {
	return op <= OpRemu
}

// IsDivide reports whether op belongs to the multi-cycle divide class.
func (op Op) IsDivide() bool {
	return op&0x4 != 0
}

// IsSigned reports whether op treats its operands as two's complement. For
// MULHSU only the first operand is signed.
func (op Op) IsSigned() bool {
	switch op {
	case OpMulh, OpMulhsu, OpDiv, OpRem:
		return true
	default:
		return false
	}
}

// IsRemainder reports whether a divide-class op returns the remainder.
func (op Op) IsRemainder() bool {
	return op == OpRem || op == OpRemu
}

func (op Op) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}

	return opNames[op]
}

// ParseOp converts a mnemonic such as "divu" to its Op.
func ParseOp(s string) (Op, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range opNames {
		if n == name {
			return Op(i), nil
		}
	}

	return 0, fmt.Errorf("unknown operation %q", s)
}
