// Package verify checks a multiply/divide unit against the reference oracle.
//
// A Checker executes named cases through an api.Driver, compares every
// captured result with oracle.Compute and prints one console line per case:
//
//	  [PASS] DIVU 10 / 3                              got=0x00000003
//	  [FAIL] REM  -10 % 3                             got=0x00000001 expected=0xffffffff
//	  [ERROR] DIV  7 / 2                              done never asserted after 200 cycles
//	  [WARN] busy still high when done asserted at cycle 33
//
// Timeouts count as one failure and are not compared. A multiply that never
// raised done counts as one failure and its observed result is still
// compared. Busy overlapping done is only a warning.
//
// # Usage Example
//
//	bench := config.BenchBuilder{}.WithParams(params).Build("Bench")
//	checker := verify.NewChecker(bench.NewDriver("Driver", params), os.Stdout)
//	checker.Run(verify.ReferenceCampaign())
//	checker.PrintSummary()
//	if err := checker.Err(); err != nil {
//	    atexit.Exit(1)
//	}
package verify

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/mdverify/api"
	"github.com/sarchlab/mdverify/oracle"
)

// Outcome categorizes a checked case
type Outcome string

const (
	OutcomePass     Outcome = "PASS"    // Result matched the oracle
	OutcomeMismatch Outcome = "FAIL"    // Result differed from the oracle
	OutcomeTimeout  Outcome = "TIMEOUT" // Divide never raised done
	OutcomeNoDone   Outcome = "NODONE"  // Multiply did not raise done on its cycle
)

var (
	// ErrNoCases is returned by Err when nothing was checked.
	ErrNoCases = errors.New("no cases were executed")

	// ErrFailed is returned by Err when at least one failure was counted.
	ErrFailed = errors.New("conformance check failed")
)

// Record is the outcome of one case
type Record struct {
	Group      string
	Name       string
	Req        api.Request
	Got        uint32
	Expected   uint32
	Cycles     uint32
	Outcome    Outcome
	BusyOnDone bool
	Err        error
}

// Checker runs cases and keeps the pass and fail tallies.
type Checker struct {
	driver api.Driver
	out    io.Writer

	section  string
	sections int

	passed   int
	failed   int
	warnings int
	records  []Record
}

// NewChecker creates a checker that prints its console lines to out.
func NewChecker(driver api.Driver, out io.Writer) *Checker {
	return &Checker{
		driver: driver,
		out:    out,
	}
}

// Reset puts the unit back into its reset state.
func (c *Checker) Reset() {
	c.driver.Reset()
}

// Section starts a new group of cases.
func (c *Checker) Section(title string) {
	if c.sections > 0 {
		fmt.Fprintln(c.out)
	}

	fmt.Fprintf(c.out, "--- %s ---\n", title)

	c.section = title
	c.sections++
}

// Check executes req and compares the result with the oracle.
func (c *Checker) Check(name string, req api.Request) Record {
	rec := Record{
		Group:    c.section,
		Name:     name,
		Req:      req,
		Expected: oracle.Compute(req.Op, req.A, req.B),
	}

	rsp, err := c.driver.Execute(req)
	rec.Got = rsp.Result
	rec.Cycles = rsp.Cycles
	rec.BusyOnDone = rsp.BusyOnDone
	rec.Err = err

	if rsp.BusyOnDone {
		c.warnings++
		fmt.Fprintf(c.out,
			"  [WARN] busy still high when done asserted at cycle %d\n",
			rsp.Cycles)
	}

	if errors.Is(err, api.ErrTimeout) {
		c.failed++
		rec.Outcome = OutcomeTimeout
		fmt.Fprintf(c.out, "  [ERROR] %-40s %v\n", name, err)
		c.records = append(c.records, rec)

		return rec
	}

	if err != nil {
		c.failed++
		rec.Outcome = OutcomeNoDone
		fmt.Fprintf(c.out, "  [ERROR] %-40s %v\n", name, err)
	}

	if rec.Got == rec.Expected {
		c.passed++
		if rec.Outcome == "" {
			rec.Outcome = OutcomePass
		}
		fmt.Fprintf(c.out, "  [PASS] %-40s got=0x%08x\n", name, rec.Got)
	} else {
		c.failed++
		if rec.Outcome == "" {
			rec.Outcome = OutcomeMismatch
		}
		fmt.Fprintf(c.out, "  [FAIL] %-40s got=0x%08x expected=0x%08x\n",
			name, rec.Got, rec.Expected)
	}

	c.records = append(c.records, rec)

	return rec
}

// Passed returns the number of passed comparisons.
func (c *Checker) Passed() int {
	return c.passed
}

// Failed returns the number of failures, timeouts and missing done signals
// included.
func (c *Checker) Failed() int {
	return c.failed
}

// Warnings returns the number of protocol warnings.
func (c *Checker) Warnings() int {
	return c.warnings
}

// Records returns every case checked so far, in order.
func (c *Checker) Records() []Record {
	return c.records
}

// Summary returns the final tally line.
func (c *Checker) Summary() string {
	return fmt.Sprintf("=== Summary: %d PASSED, %d FAILED ===", c.passed, c.failed)
}

// PrintSummary writes the tally line to the console.
func (c *Checker) PrintSummary() {
	fmt.Fprintf(c.out, "\n%s\n", c.Summary())
}

// Err returns nil only if cases were executed and none failed.
func (c *Checker) Err() error {
	if len(c.records) == 0 {
		return ErrNoCases
	}

	if c.failed > 0 {
		return fmt.Errorf("%w: %d failures", ErrFailed, c.failed)
	}

	return nil
}
