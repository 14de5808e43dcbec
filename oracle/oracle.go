// Package oracle computes the results RV32M defines for multiply, divide and
// remainder on 32-bit operands.
//
// Operands are raw bit patterns. Whether a pattern is read as signed is decided
// by the operation alone. Division by zero and the INT_MIN / -1 overflow do
// not trap; they produce the fixed values below.
//
//	op    b == 0       a == 0x80000000, b == 0xffffffff
//	DIV   0xffffffff   0x80000000
//	DIVU  0xffffffff   -
//	REM   a            0
//	REMU  a            -
package oracle

import (
	"math/bits"

	"github.com/sarchlab/mdverify/mdu"
)

const (
	minInt32 = 0x80000000
	negOne   = 0xffffffff
	allOnes  = 0xffffffff
)

// Compute returns the expected result of op applied to a and b.
func Compute(op mdu.Op, a, b uint32) uint32 {
	switch op {
	case mdu.OpMul:
		return Mul(a, b)
	case mdu.OpMulh:
		return Mulh(a, b)
	case mdu.OpMulhsu:
		return Mulhsu(a, b)
	case mdu.OpMulhu:
		return Mulhu(a, b)
	case mdu.OpDiv:
		return Div(a, b)
	case mdu.OpDivu:
		return Divu(a, b)
	case mdu.OpRem:
		return Rem(a, b)
	case mdu.OpRemu:
		return Remu(a, b)
	default:
		panic("unknown operation " + op.String())
	}
}

// Mul returns the low 32 bits of a*b.
func Mul(a, b uint32) uint32 {
	_, lo := bits.Mul32(a, b)
	return lo
}

// Mulhu returns the high 32 bits of the unsigned 64-bit product.
func Mulhu(a, b uint32) uint32 {
	hi, _ := bits.Mul32(a, b)
	return hi
}

// Mulh returns the high 32 bits of the signed 64-bit product. The unsigned
// high word is corrected once for each negative operand.
func Mulh(a, b uint32) uint32 {
	hi := Mulhu(a, b)
	if int32(a) < 0 {
		hi -= b
	}
	if int32(b) < 0 {
		hi -= a
	}

	return hi
}

// Mulhsu returns the high 32 bits of signed(a) times unsigned(b).
func Mulhsu(a, b uint32) uint32 {
	hi := Mulhu(a, b)
	if int32(a) < 0 {
		hi -= b
	}

	return hi
}

// Div is the signed quotient, truncated toward zero.
func Div(a, b uint32) uint32 {
	if b == 0 {
		return allOnes
	}
	if a == minInt32 && b == negOne {
		return minInt32
	}

	return uint32(int32(a) / int32(b))
}

// Divu is the unsigned quotient.
func Divu(a, b uint32) uint32 {
	if b == 0 {
		return allOnes
	}

	return a / b
}

// Rem is the signed remainder; it takes the sign of the dividend.
func Rem(a, b uint32) uint32 {
	if b == 0 {
		return a
	}
	if a == minInt32 && b == negOne {
		return 0
	}

	return uint32(int32(a) % int32(b))
}

// Remu is the unsigned remainder.
func Remu(a, b uint32) uint32 {
	if b == 0 {
		return a
	}

	return a % b
}
