// Command timing-log is a tool for viewing and analyzing propagation trace files.
//
// Trace files are written by timing-run and timing-shell with the -trace flag.
//
// Usage:
//
//	timing-log <command> [flags] <file.tlog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON lines or CSV
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	timing-log view run.tlog
//
//	# View the notifications delivered to one element
//	timing-log view -element b -category notification run.tlog
//
//	# Extract one pass
//	timing-log filter -pass 3f2a9c1e-... -o pass.tlog run.tlog
//
//	# Show statistics
//	timing-log stats run.tlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/smil-anim/timing-go/cmd/timing-log/commands"
)

const usage = `timing-log - Timing Propagation Trace Analyzer

Usage:
  timing-log <command> [flags] <file.tlog>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON lines or CSV
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "timing-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the event selection flags on fs.
func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.PassID, "pass", "", "Filter by pass ID")
	fs.StringVar(&opts.Element, "element", "", "Filter by element ID")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (pass, stimulus, notification, interval, instances, error)")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return opts
}

// tracePath returns the single positional argument or exits.
func tracePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `timing-log view - View trace file in human-readable format

Usage:
  timing-log view [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}
	opts := filterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunView(path, *opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `timing-log export - Export trace file to JSON lines or CSV

Usage:
  timing-log export [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	opts := filterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	w := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := commands.RunExport(path, *format, *opts, w); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `timing-log filter - Filter trace file and write to new file

Usage:
  timing-log filter [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}
	output := fs.String("o", "", "Output file (required)")
	opts := filterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	count, err := commands.RunFilter(path, *output, *opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Filtered %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `timing-log stats - Show statistics about the trace file

Usage:
  timing-log stats <file.tlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
