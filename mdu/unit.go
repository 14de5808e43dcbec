package mdu

import (
	"github.com/sarchlab/akita/v4/sim"
)

type unitState int

const (
	stateIdle unitState = iota
	stateMulLate
	stateDivide
	stateDone
)

var stateNames = map[unitState]string{
	stateIdle:    "IDLE",
	stateMulLate: "MUL_LATE",
	stateDivide:  "DIVIDE",
	stateDone:    "DONE",
}

// inputs are the signals driven by the requester. They are sampled on every
// rising edge.
type inputs struct {
	rstN  bool
	start bool
	op    Op
	a, b  uint32
}

// outputs are registered; they change only on a clock edge.
type outputs struct {
	done   bool
	busy   bool
	result uint32
}

// divState is the restoring divider datapath.
type divState struct {
	op        Op
	dividend  uint32
	quotient  uint32
	remainder uint64
	divisor   uint64
	count     int
	negQ      bool
	negR      bool
}

// Unit is a cycle-level model of a multiply/divide unit. Multiplies answer on
// the edge that samples start; divisions retire one quotient bit per cycle.
// The requester holds start high until it sees done, then drops it.
type Unit struct {
	*sim.TickingComponent

	fault Fault
	cycle uint64
	state unitState
	in    inputs
	out   outputs
	div   divState
}

// SetResetN drives the active-low reset.
func (u *Unit) SetResetN(v bool) {
	u.in.rstN = v
}

// SetStart drives the request line.
func (u *Unit) SetStart(v bool) {
	u.in.start = v
}

// SetOp drives the operation code. Only the low three bits reach the unit.
func (u *Unit) SetOp(op Op) {
	u.in.op = op & 0x7
}

// SetOperands drives both operand buses.
func (u *Unit) SetOperands(a, b uint32) {
	u.in.a = a
	u.in.b = b
}

// Done returns the registered done output.
func (u *Unit) Done() bool {
	return u.out.done
}

// Busy returns the registered busy output.
func (u *Unit) Busy() bool {
	return u.out.busy
}

// Result returns the registered result output.
func (u *Unit) Result() uint32 {
	return u.out.result
}

// Cycle returns the number of clock edges the unit has seen.
func (u *Unit) Cycle() uint64 {
	return u.cycle
}

// Tick evaluates one rising clock edge. It never asks to be ticked again; the
// owner of the clock schedules every edge explicitly.
func (u *Unit) Tick() (madeProgress bool) {
	u.cycle++

	if !u.in.rstN {
		u.reset()
	} else {
		switch u.state {
		case stateIdle:
			u.accept()
		case stateMulLate:
			u.finishMultiply()
		case stateDivide:
			u.divideStep()
		case stateDone:
			u.holdDone()
		}
	}

	Trace("MDU",
		"Name", u.Name(),
		"Cycle", u.cycle,
		"State", stateNames[u.state],
		"Start", u.in.start,
		"Op", u.in.op.String(),
		"Done", u.out.done,
		"Busy", u.out.busy,
		"Result", u.out.result,
	)
	u.PrintState()

	return false
}

func (u *Unit) reset() {
	u.state = stateIdle
	u.out = outputs{}
	u.div = divState{}
}

func (u *Unit) accept() {
	u.out.done = false
	u.out.busy = false

	if !u.in.start {
		return
	}

	if !u.in.op.IsDivide() {
		if u.fault == FaultSlowMul {
			u.out.busy = true
			u.state = stateMulLate
			return
		}

		u.finishMultiply()
		return
	}

	u.startDivide()
}

func (u *Unit) finishMultiply() {
	u.out.result = multiply(u.in.op, u.in.a, u.in.b)
	u.out.done = true
	u.out.busy = false
	u.state = stateDone
}

func multiply(op Op, a, b uint32) uint32 {
	switch op {
	case OpMulh:
		return uint32(uint64(int64(int32(a))*int64(int32(b))) >> 32)
	case OpMulhsu:
		return uint32(uint64(int64(int32(a))*int64(b)) >> 32)
	case OpMulhu:
		return uint32((uint64(a) * uint64(b)) >> 32)
	default:
		return a * b
	}
}

func (u *Unit) startDivide() {
	op, a, b := u.in.op, u.in.a, u.in.b

	if b == 0 {
		u.finishDivideByZero(op, a)
		return
	}

	d := divState{op: op, count: 32}
	d.dividend, d.divisor = a, uint64(b)

	if op.IsSigned() {
		if int32(a) < 0 {
			d.dividend = -a
			d.negR = true
		}
		if int32(b) < 0 {
			d.divisor = uint64(-b)
		}
		d.negQ = (int32(a) < 0) != (int32(b) < 0)
	}

	d.quotient = d.dividend
	u.div = d
	u.out.busy = true
	u.state = stateDivide
}

// finishDivideByZero takes the early exit for a zero divisor. The quotient is
// all ones and the remainder is the dividend regardless of signedness.
func (u *Unit) finishDivideByZero(op Op, a uint32) {
	quotient := ^uint32(0)
	if u.fault == FaultDivZero {
		quotient = 0
	}

	result := quotient
	if op.IsRemainder() {
		result = a
	}

	u.complete(result)
}

// divideStep shifts one bit of the dividend into the partial remainder and
// subtracts the divisor when it fits.
func (u *Unit) divideStep() {
	if u.fault == FaultHang {
		return
	}

	d := &u.div
	d.remainder = d.remainder<<1 | uint64(d.quotient>>31)
	d.quotient <<= 1

	if d.remainder >= d.divisor {
		d.remainder -= d.divisor
		d.quotient |= 1
	}

	d.count--
	if d.count > 0 {
		return
	}

	q, r := d.quotient, uint32(d.remainder)
	if d.negQ {
		q = -q
	}
	if d.negR {
		r = -r
	}

	if d.op.IsRemainder() {
		u.complete(r)
	} else {
		u.complete(q)
	}
}

func (u *Unit) complete(result uint32) {
	u.out.result = result
	u.out.done = true
	u.out.busy = u.fault == FaultBusyOnDone
	u.state = stateDone
}

// holdDone keeps done asserted until the requester drops start.
func (u *Unit) holdDone() {
	if u.in.start {
		return
	}

	u.state = stateIdle
	u.out.done = false
	u.out.busy = false
}
