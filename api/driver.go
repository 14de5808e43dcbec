// Package api defines the driver that issues requests to a multiply/divide
// unit over its start/busy/done handshake.
package api

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarchlab/mdverify/mdu"
)

// TimeoutResult is returned in place of a result when a division never
// completes.
const TimeoutResult uint32 = 0xDEADBEEF

// releaseCycles is the number of edges issued after start drops, so that the
// unit registers the release before the next request.
const releaseCycles = 1

var (
	// ErrTimeout reports a divide that did not raise done within the bound.
	ErrTimeout = errors.New("done never asserted")

	// ErrNoDone reports a multiply that did not raise done on its only cycle.
	ErrNoDone = errors.New("done not asserted for multiply")
)

// Unit is the signal surface of the unit under test. Inputs are driven with
// the Set methods and sampled by the unit on the next clock edge. Outputs are
// registered and may be read at any time.
type Unit interface {
	SetResetN(v bool)
	SetStart(v bool)
	SetOp(op mdu.Op)
	SetOperands(a, b uint32)

	Done() bool
	Busy() bool
	Result() uint32
}

// Clock advances the simulation by one full clock cycle.
type Clock interface {
	Tick()
}

// Request is one operation. Signedness comes only from Op.
type Request struct {
	Op   mdu.Op
	A, B uint32
}

func (r Request) String() string {
	return fmt.Sprintf("%s 0x%08x, 0x%08x", r.Op, r.A, r.B)
}

// Response is what the driver captured for a request.
type Response struct {
	Result uint32
	// Cycles counts the edges from start until done was seen.
	Cycles uint32
	// BusyOnDone is set if busy was still high on the cycle done rose.
	BusyOnDone bool
}

// Driver provides the interface to control a multiply/divide unit.
type Driver interface {
	// Reset holds the unit in reset with all inputs low, then releases it.
	Reset()

	// Execute runs one request to completion. On ErrTimeout the response
	// carries TimeoutResult. On ErrNoDone the response carries whatever the
	// unit presented.
	Execute(req Request) (Response, error)

	// Cycle returns the number of cycles the driver has clocked.
	Cycle() uint64
}

type driverImpl struct {
	name string

	unit  Unit
	clock Clock

	timeout     int
	resetCycles int

	cycle uint64
}

func (d *driverImpl) Cycle() uint64 {
	return d.cycle
}

func (d *driverImpl) tick() {
	d.clock.Tick()
	d.cycle++
}

// Reset runs the reset sequence.
func (d *driverImpl) Reset() {
	d.unit.SetResetN(false)
	d.unit.SetStart(false)
	d.unit.SetOp(mdu.OpMul)
	d.unit.SetOperands(0, 0)

	for i := 0; i < d.resetCycles; i++ {
		d.tick()
	}

	d.unit.SetResetN(true)
	d.tick()

	slog.Debug("MDU reset", "Driver", d.name, "Cycle", d.cycle)
}

// Execute runs a request.
func (d *driverImpl) Execute(req Request) (Response, error) {
	if req.Op.IsDivide() {
		return d.runDivide(req)
	}

	return d.runMultiply(req)
}

func (d *driverImpl) drive(req Request) {
	d.unit.SetOp(req.Op)
	d.unit.SetOperands(req.A, req.B)
	d.unit.SetStart(true)
}

func (d *driverImpl) release() {
	d.unit.SetStart(false)
	for i := 0; i < releaseCycles; i++ {
		d.tick()
	}
}

// runDivide holds start until done is seen or the bound expires.
func (d *driverImpl) runDivide(req Request) (Response, error) {
	d.drive(req)

	rsp := Response{}
	captured := false

	for i := 0; i < d.timeout; i++ {
		d.tick()
		rsp.Cycles++

		if !d.unit.Done() {
			continue
		}

		rsp.Result = d.unit.Result()
		captured = true

		if d.unit.Busy() {
			rsp.BusyOnDone = true
			slog.Warn("busy still high when done asserted",
				"Driver", d.name,
				"Request", req.String(),
				"Cycles", rsp.Cycles,
			)
		}

		break
	}

	d.release()

	if !captured {
		slog.Error("divide timed out",
			"Driver", d.name,
			"Request", req.String(),
			"Cycles", d.timeout,
		)

		return Response{Result: TimeoutResult, Cycles: rsp.Cycles},
			fmt.Errorf("%w after %d cycles", ErrTimeout, d.timeout)
	}

	return rsp, nil
}

// runMultiply strobes start for exactly one cycle. The unit must answer on
// that same edge.
func (d *driverImpl) runMultiply(req Request) (Response, error) {
	d.drive(req)
	d.tick()

	rsp := Response{
		Result: d.unit.Result(),
		Cycles: 1,
	}

	var err error
	if !d.unit.Done() {
		err = ErrNoDone
		slog.Error("multiply did not complete in one cycle",
			"Driver", d.name,
			"Request", req.String(),
		)
	} else if d.unit.Busy() {
		rsp.BusyOnDone = true
		slog.Warn("busy still high when done asserted",
			"Driver", d.name,
			"Request", req.String(),
			"Cycles", rsp.Cycles,
		)
	}

	d.release()

	return rsp, err
}
