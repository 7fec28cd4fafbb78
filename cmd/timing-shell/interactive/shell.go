// Package interactive provides the interactive command-line interface
// for exploring a timegraph.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/smil-anim/timing-go/internal/scenario"
	"github.com/smil-anim/timing-go/pkg/timegraph"
	"github.com/smil-anim/timing-go/pkg/timing"
)

// Shell handles interactive mode for timing-shell.
type Shell struct {
	runner *scenario.Runner
	rl     *readline.Instance
	out    io.Writer

	// Loaded scenario and the index of its next unexecuted step.
	state *scenario.State
	next  int
}

// New creates a shell with a readline prompt. historyFile may be empty.
// A runner must be set with SetRunner before commands are executed.
func New(historyFile string) (*Shell, error) {
	s := &Shell{}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timing> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryFile:     historyFile,
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s.rl = rl
	s.out = rl.Stdout()
	return s, nil
}

// newWithWriter creates a shell without a terminal.
func newWithWriter(runner *scenario.Runner, out io.Writer) *Shell {
	return &Shell{runner: runner, out: out}
}

// SetRunner sets the runner that builds graphs and executes steps.
func (s *Shell) SetRunner(runner *scenario.Runner) {
	s.runner = runner
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

func (s *Shell) completer() readline.AutoCompleter {
	elements := readline.PcItemDynamic(func(string) []string {
		if s.state == nil {
			return nil
		}
		var ids []string
		for _, e := range s.state.Graph.Elements() {
			ids = append(ids, e.ID())
		}
		return ids
	})
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("load"),
		readline.PcItem("elements"),
		readline.PcItem("show", elements),
		readline.PcItem("deps", elements),
		readline.PcItem("pass"),
		readline.PcItem("init"),
		readline.PcItem("event", elements),
		readline.PcItem("key"),
		readline.PcItem("repeat", elements),
		readline.PcItem("wallclock"),
		readline.PcItem("reset", elements),
		readline.PcItem("attach", elements),
		readline.PcItem("detach", elements),
		readline.PcItem("dur", elements),
		readline.PcItem("step"),
		readline.PcItem("run"),
		readline.PcItem("quit"),
	)
}

// Load replaces the current graph with the one built from a scenario file.
func (s *Shell) Load(path string) error {
	sc, err := scenario.LoadScenario(path)
	if err != nil {
		return err
	}
	state, err := s.runner.Prepare(sc)
	if err != nil {
		return err
	}
	s.state = state
	s.next = 0
	fmt.Fprintf(s.out, "Loaded %s (%s): %d elements, %d steps\n", sc.ID, sc.Name, len(sc.Elements), len(sc.Steps))
	return nil
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if s.Exec(ctx, line) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" || strings.HasPrefix(input, "#") {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "quit", "exit", "q":
		return true
	case "load", "l":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "Usage: load <scenario.yaml>")
			return false
		}
		if err := s.Load(args[0]); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	default:
		if s.state == nil {
			fmt.Fprintln(s.out, "No scenario loaded (use 'load <file>')")
			return false
		}
		s.dispatch(ctx, cmd, args)
	}
	return false
}

func (s *Shell) dispatch(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "elements", "ls":
		s.cmdElements()
	case "show", "s":
		s.cmdShow(args)
	case "deps":
		s.cmdDeps(args)
	case "pass":
		s.printPass()
	case "step":
		s.cmdStep(ctx)
	case "run":
		s.cmdRun(ctx)
	case "init", "event", "key", "repeat", "wallclock", "reset", "attach", "detach", "dur":
		step, err := parseStep(cmd, args)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		s.execute(ctx, step, -1)
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
}

// parseStep turns a stimulus command into a scenario step.
func parseStep(cmd string, args []string) (*scenario.Step, error) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch cmd {
	case "init":
		return &scenario.Step{Action: scenario.ActionInit}, nil
	case "event":
		if len(args) < 2 {
			return nil, fmt.Errorf("usage: event <target> <name> [at]")
		}
		return &scenario.Step{Action: scenario.ActionEvent, Element: args[0], Event: args[1], At: arg(2)}, nil
	case "key":
		if len(args) < 1 {
			return nil, fmt.Errorf("usage: key <char> [at]")
		}
		return &scenario.Step{Action: scenario.ActionKey, Key: args[0], At: arg(1)}, nil
	case "repeat":
		if len(args) < 2 {
			return nil, fmt.Errorf("usage: repeat <element> <iteration> [at]")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid iteration %q", args[1])
		}
		return &scenario.Step{Action: scenario.ActionRepeat, Element: args[0], Iteration: n, At: arg(2)}, nil
	case "wallclock":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: wallclock <RFC3339 | offset from origin>")
		}
		return &scenario.Step{Action: scenario.ActionWallclock, At: args[0]}, nil
	case "reset", "attach", "detach":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: %s <element>", cmd)
		}
		return &scenario.Step{Action: cmd, Element: args[0]}, nil
	case "dur":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: dur <element> <duration|indefinite>")
		}
		return &scenario.Step{Action: scenario.ActionDuration, Element: args[0], Dur: args[1]}, nil
	}
	return nil, fmt.Errorf("unknown command: %s", cmd)
}

// execute runs a step and prints its outcome. index is the scenario step
// index, or -1 for an ad-hoc command.
func (s *Shell) execute(ctx context.Context, step *scenario.Step, index int) bool {
	sr := s.runner.ExecuteStep(ctx, step, index, s.state)
	if sr.Error != nil {
		fmt.Fprintf(s.out, "Error: %v\n", sr.Error)
	}
	for _, c := range sr.Checks {
		status := "OK"
		if !c.Passed {
			status = "FAILED"
		}
		fmt.Fprintf(s.out, "  [%s] %s = %s (expected %s)\n", status, c.Key, c.Actual, c.Expected)
	}
	if sr.Passed && step.Action != scenario.ActionExpect {
		s.printPass()
	}
	return sr.Passed
}

func (s *Shell) cmdStep(ctx context.Context) {
	steps := s.state.Scenario.Steps
	if s.next >= len(steps) {
		fmt.Fprintln(s.out, "No more steps")
		return
	}
	step := &steps[s.next]
	fmt.Fprintf(s.out, "Step %d/%d: %s %s\n", s.next+1, len(steps), step.Action, step.Element)
	s.execute(ctx, step, s.next)
	s.next++
}

func (s *Shell) cmdRun(ctx context.Context) {
	steps := s.state.Scenario.Steps
	for s.next < len(steps) {
		step := &steps[s.next]
		fmt.Fprintf(s.out, "Step %d/%d: %s %s\n", s.next+1, len(steps), step.Action, step.Element)
		ok := s.execute(ctx, step, s.next)
		s.next++
		if !ok {
			return
		}
	}
	fmt.Fprintln(s.out, "All steps executed")
}

func (s *Shell) cmdElements() {
	for _, e := range s.state.Graph.Elements() {
		fmt.Fprintf(s.out, "  %-12s %s\n", e.ID(), intervalString(e))
	}
}

func (s *Shell) cmdShow(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: show <element>")
		return
	}
	e, ok := s.state.Graph.Element(args[0])
	if !ok {
		fmt.Fprintf(s.out, "Error: %s: %v\n", args[0], timegraph.ErrUnknownElement)
		return
	}

	fmt.Fprintf(s.out, "Element %s\n", e.ID())
	fmt.Fprintf(s.out, "  attached: %v\n", e.Attached())
	fmt.Fprintf(s.out, "  dur:      %s\n", e.SimpleDuration())
	fmt.Fprintf(s.out, "  begin:    %s\n", scenario.FormatTimes(e.Instances(timing.Begin).Times()))
	fmt.Fprintf(s.out, "  end:      %s\n", scenario.FormatTimes(e.Instances(timing.End).Times()))
	fmt.Fprintf(s.out, "  interval: %s\n", intervalString(e))

	if specs := e.Specifiers(); len(specs) > 0 {
		fmt.Fprintln(s.out, "  specifiers:")
		for _, sp := range specs {
			fmt.Fprintf(s.out, "    %s\n", sp)
		}
	}
	if errs := e.Errors(); len(errs) > 0 {
		fmt.Fprintln(s.out, "  errors:")
		for _, err := range errs {
			fmt.Fprintf(s.out, "    %v\n", err)
		}
	}
}

func (s *Shell) cmdDeps(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: deps <element>")
		return
	}
	if _, ok := s.state.Graph.Element(args[0]); !ok {
		fmt.Fprintf(s.out, "Error: %s: %v\n", args[0], timegraph.ErrUnknownElement)
		return
	}
	deps := s.state.Graph.Dependents(args[0])
	if len(deps) == 0 {
		fmt.Fprintln(s.out, "  (no dependents)")
		return
	}
	for _, d := range deps {
		fmt.Fprintf(s.out, "  %s\n", d)
	}
}

func (s *Shell) printPass() {
	p := s.state.Graph.LastPass()
	if p.ID == "" {
		fmt.Fprintln(s.out, "  (no pass yet)")
		return
	}
	fmt.Fprintf(s.out, "  pass %s: %d notifications", p.ID[:8], p.Notifications)
	if p.Suppressed > 0 {
		fmt.Fprintf(s.out, ", %d suppressed", p.Suppressed)
	}
	fmt.Fprintln(s.out)
}

func intervalString(e *timegraph.Element) string {
	if !e.Attached() {
		return "detached"
	}
	if iv := e.Interval(); iv != nil {
		return iv.String()
	}
	return "no interval"
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Timing Shell Commands:
  Document:
    load <file>            - Load a scenario and build its graph
    elements               - List elements and their current intervals
    show <element>         - Show instance lists, specifiers and errors
    deps <element>         - List specifiers depending on an element
    pass                   - Show the last propagation pass

  Stimuli:
    init                   - Initialize the document
    event <target> <name> [at]
    key <char> [at]
    repeat <element> <iteration> [at]
    wallclock <time>       - Advance the wallclock (RFC3339 or offset)
    reset <element>        - Drop the element's clear-on-reset instants
    attach <element>
    detach <element>
    dur <element> <dur>    - Set the simple duration

  Scenario:
    step                   - Execute the next scenario step
    run                    - Execute the remaining steps

    quit                   - Exit`)
}
