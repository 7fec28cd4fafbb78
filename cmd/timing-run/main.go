// Command timing-run executes timing scenarios and reports the results.
//
// Scenarios are YAML files describing elements, their begin/end
// specifiers and a sequence of stimuli with expectations. Each scenario
// runs against a fresh timegraph on a mock wallclock.
//
// Usage:
//
//	timing-run [flags] <file-or-directory>...
//
// Flags:
//
//	-config string     YAML or TOML config file
//	-format string     Report format: text, json, junit (default "text")
//	-log-level string  Operational log level: debug, info, warn, error
//	-trace string      File path for propagation trace logging (CBOR format)
//	-trace-console     Also write trace events to the operational log
//	-recursive         Descend into subdirectories
//	-stop              Stop after the first failed scenario
//	-verbose           Show per-step details
//	-version           Print the supported scenario format version
//
// Examples:
//
//	# Run the shipped scenarios
//	timing-run testdata/scenarios
//
//	# Record a trace and inspect it afterwards
//	timing-run -trace run.tlog testdata/scenarios/cycle.yaml
//	timing-log view run.tlog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/smil-anim/timing-go/internal/config"
	"github.com/smil-anim/timing-go/internal/reporter"
	"github.com/smil-anim/timing-go/internal/scenario"
	"github.com/smil-anim/timing-go/pkg/log"
	"github.com/smil-anim/timing-go/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("timing-run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML or TOML config file")
	format := fs.String("format", config.FormatText, "Report format: text, json, junit")
	logLevel := fs.String("log-level", "", "Operational log level: debug, info, warn, error")
	tracePath := fs.String("trace", "", "File path for propagation trace logging (CBOR format)")
	traceConsole := fs.Bool("trace-console", false, "Also write trace events to the operational log (shown at -log-level debug)")
	recursive := fs.Bool("recursive", false, "Descend into subdirectories")
	stopOnFailure := fs.Bool("stop", false, "Stop after the first failed scenario")
	verbose := fs.Bool("verbose", false, "Show per-step details")
	showVersion := fs.Bool("version", false, "Print the supported scenario format version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: timing-run [flags] <file-or-directory>...")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "timing-run (scenario format %s)\n", version.Current)
		return 0
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	// Explicit flags win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "log-level":
			cfg.LogLevel = *logLevel
		case "trace":
			cfg.Trace = *tracePath
		case "trace-console":
			cfg.TraceConsole = *traceConsole
		case "recursive":
			cfg.Recursive = *recursive
		case "stop":
			cfg.StopOnFirstFailure = *stopOnFailure
		case "verbose":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var scenarios []*scenario.Scenario
	for _, path := range fs.Args() {
		loaded, err := load(path, cfg.Recursive)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		scenarios = append(scenarios, loaded...)
	}

	trace, closeTrace, err := traceLogger(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeTrace()

	rep, err := reporter.New(cfg.Format, stdout, cfg.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	runner := scenario.NewRunner(&scenario.Config{
		Logger:             logger,
		TraceLogger:        trace,
		StopOnFirstFailure: cfg.StopOnFirstFailure,
	})
	result := runner.RunSuite(ctx, suiteName(fs.Args()), scenarios)
	rep.ReportSuite(result)

	if result.FailCount > 0 {
		return 1
	}
	return 0
}

// load reads one scenario file, or the scenarios of a directory.
func load(path string, recursive bool) ([]*scenario.Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() && !recursive {
		return scenario.LoadDirectory(path)
	}
	return scenario.LoadPath(path)
}

// traceLogger assembles the trace sinks selected by cfg.
func traceLogger(cfg *config.Config, logger *slog.Logger) (log.Logger, func(), error) {
	var sinks []log.Logger
	closeFn := func() {}

	if cfg.Trace != "" {
		fl, err := log.NewFileLogger(cfg.Trace)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create trace logger: %w", err)
		}
		sinks = append(sinks, fl)
		closeFn = func() { fl.Close() }
	}
	if cfg.TraceConsole {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}

	return log.Tee(sinks...), closeFn, nil
}

func suiteName(paths []string) string {
	if len(paths) == 1 {
		return paths[0]
	}
	return fmt.Sprintf("%d paths", len(paths))
}
