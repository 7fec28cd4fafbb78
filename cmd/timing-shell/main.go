// Command timing-shell is an interactive shell for exploring timegraphs.
//
// Load a scenario, inject stimuli one at a time and inspect how instance
// times propagate between elements.
//
// Usage:
//
//	timing-shell [flags] [scenario.yaml]
//
// Flags:
//
//	-config string     YAML or TOML config file
//	-log-level string  Operational log level: debug, info, warn, error
//	-trace string      File path for propagation trace logging (CBOR format)
//	-trace-console     Also write trace events to the operational log
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/smil-anim/timing-go/cmd/timing-shell/interactive"
	"github.com/smil-anim/timing-go/internal/config"
	"github.com/smil-anim/timing-go/internal/scenario"
	"github.com/smil-anim/timing-go/pkg/log"
)

var (
	configPath   = flag.String("config", "", "YAML or TOML config file")
	logLevel     = flag.String("log-level", "", "Operational log level: debug, info, warn, error")
	tracePath    = flag.String("trace", "", "File path for propagation trace logging (CBOR format)")
	traceConsole = flag.Bool("trace-console", false, "Also write trace events to the operational log (shown at -log-level debug)")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *tracePath != "" {
		cfg.Trace = *tracePath
	}
	if *traceConsole {
		cfg.TraceConsole = true
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var trace log.Logger = log.NoopLogger{}
	var fileLogger *log.FileLogger
	if cfg.Trace != "" {
		fileLogger, err = log.NewFileLogger(cfg.Trace)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create trace logger: %v\n", err)
			os.Exit(1)
		}
		defer fileLogger.Close()
		trace = fileLogger
	}

	shell, err := interactive.New(cfg.HistoryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Log through readline so output does not clobber the prompt.
	logger := slog.New(slog.NewTextHandler(shell.Stdout(), &slog.HandlerOptions{Level: level}))
	if cfg.TraceConsole {
		trace = log.Tee(trace, log.NewSlogAdapter(logger))
	}
	shell.SetRunner(scenario.NewRunner(&scenario.Config{
		Logger:      logger,
		TraceLogger: trace,
	}))

	if flag.NArg() > 0 {
		if err := shell.Load(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	shell.Run(ctx, cancel)
}
