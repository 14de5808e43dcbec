package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/mdverify/mdu"
)

// OpStats aggregates the records of one operation.
type OpStats struct {
	Op        mdu.Op
	Cases     int
	Passed    int
	Failed    int
	Timeouts  int
	MinCycles uint32
	MaxCycles uint32
}

// VerificationReport represents a complete conformance report
type VerificationReport struct {
	Passed   int
	Failed   int
	Warnings int
	Cases    int
	Stats    []OpStats
	Failures []Record
	Err      error
}

// GenerateReport summarizes everything the checker has run so far.
func GenerateReport(c *Checker) *VerificationReport {
	report := &VerificationReport{
		Passed:   c.Passed(),
		Failed:   c.Failed(),
		Warnings: c.Warnings(),
		Cases:    len(c.Records()),
		Err:      c.Err(),
	}

	stats := make(map[mdu.Op]*OpStats)
	for _, rec := range c.Records() {
		s, ok := stats[rec.Req.Op]
		if !ok {
			s = &OpStats{Op: rec.Req.Op}
			stats[rec.Req.Op] = s
		}

		s.Cases++
		switch rec.Outcome {
		case OutcomePass:
			s.Passed++
		case OutcomeTimeout:
			s.Timeouts++
		default:
			s.Failed++
		}

		if rec.Outcome != OutcomePass {
			report.Failures = append(report.Failures, rec)
		}

		if rec.Outcome == OutcomeTimeout {
			continue
		}
		if s.MinCycles == 0 || rec.Cycles < s.MinCycles {
			s.MinCycles = rec.Cycles
		}
		if rec.Cycles > s.MaxCycles {
			s.MaxCycles = rec.Cycles
		}
	}

	for _, op := range mdu.AllOps {
		if s, ok := stats[op]; ok {
			report.Stats = append(report.Stats, *s)
		}
	}

	return report
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "MULTIPLY/DIVIDE UNIT CONFORMANCE REPORT")
	fmt.Fprintln(w, separator)

	opTable := table.NewWriter()
	opTable.SetTitle("Operations")
	opTable.AppendHeader(table.Row{"op", "cases", "pass", "fail", "timeout", "min cycles", "max cycles"})
	for _, s := range r.Stats {
		opTable.AppendRow(table.Row{
			s.Op.String(),
			s.Cases,
			s.Passed,
			s.Failed,
			s.Timeouts,
			s.MinCycles,
			s.MaxCycles,
		})
	}
	opTable.AppendFooter(table.Row{"total", r.Cases, "", "", "", "", ""})
	fmt.Fprintln(w, opTable.Render())

	if len(r.Failures) > 0 {
		failTable := table.NewWriter()
		failTable.SetTitle("Failures")
		failTable.AppendHeader(table.Row{"group", "case", "outcome", "got", "expected", "cycles"})
		for _, rec := range r.Failures {
			failTable.AppendRow(table.Row{
				rec.Group,
				rec.Name,
				string(rec.Outcome),
				fmt.Sprintf("0x%08x", rec.Got),
				fmt.Sprintf("0x%08x", rec.Expected),
				rec.Cycles,
			})
		}
		fmt.Fprintln(w, failTable.Render())
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Cases: %d\n", r.Cases)
	fmt.Fprintf(w, "Passed: %d\n", r.Passed)
	fmt.Fprintf(w, "Failed: %d\n", r.Failed)
	fmt.Fprintf(w, "Protocol warnings: %d\n", r.Warnings)

	status := "PASS"
	if r.Err != nil {
		status = "FAIL: " + r.Err.Error()
	}
	fmt.Fprintf(w, "Result: %s\n", status)

	fmt.Fprintln(w)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
