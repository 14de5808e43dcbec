package mdu

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

// LevelTrace sits above Info so per-cycle traces can be kept apart from the
// run log.
const LevelTrace slog.Level = slog.LevelInfo + 1

// PrintToggle enables the per-cycle state table on stdout.
var PrintToggle = false

// Trace logs a record at LevelTrace.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState renders the unit's signals and divider registers.
func (u *Unit) PrintState() {
	if !PrintToggle {
		return
	}

	fmt.Printf("==============%s@%d==============\n", u.Name(), u.cycle)

	sigTable := table.NewWriter()
	sigTable.SetTitle("Signals")
	sigTable.AppendHeader(table.Row{"rst_n", "start", "op", "a", "b", "done", "busy", "result"})
	sigTable.AppendRow(table.Row{
		u.in.rstN,
		u.in.start,
		u.in.op.String(),
		fmt.Sprintf("0x%08x", u.in.a),
		fmt.Sprintf("0x%08x", u.in.b),
		u.out.done,
		u.out.busy,
		fmt.Sprintf("0x%08x", u.out.result),
	})
	fmt.Println(sigTable.Render())

	if u.state != stateDivide {
		return
	}

	divTable := table.NewWriter()
	divTable.SetTitle("Divider")
	divTable.AppendHeader(table.Row{"op", "quotient", "remainder", "divisor", "bits left", "negQ", "negR"})
	divTable.AppendRow(table.Row{
		u.div.op.String(),
		fmt.Sprintf("0x%08x", u.div.quotient),
		fmt.Sprintf("0x%09x", u.div.remainder),
		fmt.Sprintf("0x%08x", u.div.divisor),
		u.div.count,
		u.div.negQ,
		u.div.negR,
	})
	fmt.Println(divTable.Render())
}
