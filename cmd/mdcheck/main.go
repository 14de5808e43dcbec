// Command mdcheck runs the conformance campaign against a simulated
// multiply/divide unit and exits non-zero if any case failed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/mdverify/config"
	"github.com/sarchlab/mdverify/mdu"
	"github.com/sarchlab/mdverify/verify"
	"github.com/tebeka/atexit"
	"golang.org/x/term"
)

var (
	configPath  = flag.String("config", "", "Path to a JSON parameter file")
	saveConfig  = flag.String("save-config", "", "Write the effective parameters to this file")
	timeout     = flag.Int("timeout", 200, "Cycles to wait for a divide to raise done")
	resetCycles = flag.Int("reset-cycles", 5, "Cycles reset is held active")
	freqMHz     = flag.Float64("freq", 1000, "Clock of the simulated unit in MHz")
	random      = flag.Int("random", 0, "Number of random cases after the reference campaign")
	seed        = flag.Int64("seed", 1, "Seed of the random operand generators")
	fault       = flag.String("fault", "", "Defect to inject: hang, busy-on-done, div-zero, slow-mul")
	reportPath  = flag.String("report", "", "Write the conformance report to this file")
	logPath     = flag.String("log", "", "Write the JSON run log to this file instead of stderr")
	logLevel    = flag.String("log-level", "warn", "Log level: debug, info, trace, warn, error")
	monitorOn   = flag.Bool("monitor", false, "Serve the akita monitor while running")
	dumpState   = flag.Bool("dump-state", false, "Print the unit state on every clock edge")
)

// loadParams starts from the defaults or the config file, then applies the
// flags that were given on the command line.
func loadParams() (*config.Params, error) {
	params := config.DefaultParams()

	if *configPath != "" {
		p, err := config.LoadParams(*configPath)
		if err != nil {
			return nil, err
		}
		params = p
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout":
			params.TimeoutCycles = *timeout
		case "reset-cycles":
			params.ResetCycles = *resetCycles
		case "freq":
			params.FreqMHz = *freqMHz
		case "random":
			params.RandomCases = *random
		case "seed":
			params.Seed = *seed
		case "fault":
			params.Fault = *fault
		}
	})

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return params, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "trace":
		return mdu.LevelTrace, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func setupLogging() error {
	level, err := parseLevel(*logLevel)
	if err != nil {
		return err
	}

	out := os.Stderr
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		atexit.Register(func() { f.Close() })
		out = f
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

func main() {
	flag.Parse()

	params, err := loadParams()
	if err != nil {
		fmt.Fprintln(os.Stderr, "mdcheck:", err)
		atexit.Exit(2)
	}

	if err := setupLogging(); err != nil {
		fmt.Fprintln(os.Stderr, "mdcheck:", err)
		atexit.Exit(2)
	}

	if *saveConfig != "" {
		if err := params.SaveParams(*saveConfig); err != nil {
			fmt.Fprintln(os.Stderr, "mdcheck:", err)
			atexit.Exit(2)
		}
	}

	mdu.PrintToggle = *dumpState

	var monitor *monitoring.Monitor
	if *monitorOn {
		monitor = monitoring.NewMonitor()
	}

	bench := config.BenchBuilder{}.
		WithParams(params).
		WithMonitor(monitor).
		Build("Bench")

	if monitor != nil {
		monitor.StartServer()
	}

	driver := bench.NewDriver("Driver", params)
	checker := verify.NewChecker(driver, os.Stdout)

	fmt.Println("=== mul_div standalone testbench ===")
	fmt.Println()

	checker.Run(verify.ReferenceCampaign())
	checker.Run(verify.RandomCampaign(params.RandomCases, params.Seed))
	checker.PrintSummary()

	report := verify.GenerateReport(checker)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println()
		report.WriteReport(os.Stdout)
	}

	if *reportPath != "" {
		if err := report.SaveReportToFile(*reportPath); err != nil {
			fmt.Fprintln(os.Stderr, "mdcheck:", err)
			atexit.Exit(2)
		}
	}

	slog.Info("campaign finished",
		"Passed", checker.Passed(),
		"Failed", checker.Failed(),
		"Warnings", checker.Warnings(),
		"Cycles", driver.Cycle(),
	)

	if err := checker.Err(); err != nil {
		if errors.Is(err, verify.ErrNoCases) {
			fmt.Fprintln(os.Stderr, "mdcheck:", err)
		}
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
