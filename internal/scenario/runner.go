package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/smil-anim/timing-go/pkg/log"
	"github.com/smil-anim/timing-go/pkg/timegraph"
	"github.com/smil-anim/timing-go/pkg/timing"
	"github.com/smil-anim/timing-go/pkg/wallclock"
)

// Config configures the runner.
type Config struct {
	// Logger receives debug output (nil discards it).
	Logger *slog.Logger

	// TraceLogger receives propagation trace events.
	TraceLogger log.Logger

	// StopOnFirstFailure stops a suite after the first failed scenario.
	StopOnFirstFailure bool

	// OnScenarioComplete is called after each scenario of a suite.
	OnScenarioComplete func(*Result)
}

// DefaultConfig returns the default runner configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// State is what step handlers operate on.
type State struct {
	Scenario *Scenario
	Graph    *timegraph.Graph

	// Clock drives trace timestamps and follows wallclock steps.
	Clock *wallclock.MockClock
}

// StepHandler executes one step action.
type StepHandler func(ctx context.Context, step *Step, state *State) error

// Runner executes scenarios.
type Runner struct {
	config   *Config
	logger   *slog.Logger
	handlers map[string]StepHandler
}

// NewRunner creates a runner with the built-in step handlers.
func NewRunner(config *Config) *Runner {
	if config == nil {
		config = DefaultConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Runner{
		config:   config,
		logger:   logger,
		handlers: make(map[string]StepHandler),
	}

	r.RegisterHandler(ActionInit, handleInit)
	r.RegisterHandler(ActionEvent, handleEvent)
	r.RegisterHandler(ActionKey, handleKey)
	r.RegisterHandler(ActionRepeat, handleRepeat)
	r.RegisterHandler(ActionWallclock, handleWallclock)
	r.RegisterHandler(ActionReset, handleReset)
	r.RegisterHandler(ActionAttach, handleAttach)
	r.RegisterHandler(ActionDetach, handleDetach)
	r.RegisterHandler(ActionDuration, handleSetDuration)
	return r
}

// RegisterHandler registers or replaces a step handler.
func (r *Runner) RegisterHandler(action string, h StepHandler) {
	r.handlers[action] = h
}

// Prepare builds the scenario's graph on a mock clock set to its origin.
func (r *Runner) Prepare(sc *Scenario) (*State, error) {
	origin := time.Now().UTC().Truncate(time.Second)
	if sc.Origin != "" {
		t, err := time.Parse(time.RFC3339Nano, sc.Origin)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid origin %q: %w", sc.ID, sc.Origin, err)
		}
		origin = t
	}
	clock := wallclock.NewMockClock(origin)

	g, err := Build(sc, timegraph.Config{
		Origin:      origin,
		Clock:       clock,
		Logger:      r.logger.With("scenario", sc.ID),
		TraceLogger: r.config.TraceLogger,
	})
	if err != nil {
		return nil, err
	}
	return &State{Scenario: sc, Graph: g, Clock: clock}, nil
}

// Run executes a single scenario.
func (r *Runner) Run(ctx context.Context, sc *Scenario) *Result {
	start := time.Now()
	result := &Result{Scenario: sc}
	defer func() { result.Duration = time.Since(start) }()

	if sc.Skip {
		result.Skipped = true
		result.SkipReason = sc.SkipReason
		if result.SkipReason == "" {
			result.SkipReason = "skipped by scenario definition"
		}
		return result
	}

	state, err := r.Prepare(sc)
	if err != nil {
		result.Error = err
		return result
	}
	result.Graph = state.Graph

	for i := range sc.Steps {
		if err := ctx.Err(); err != nil {
			result.Error = err
			return result
		}
		sr := r.ExecuteStep(ctx, &sc.Steps[i], i, state)
		result.StepResults = append(result.StepResults, sr)
		if !sr.Passed {
			result.Error = sr.Error
			return result
		}
	}

	result.Passed = true
	return result
}

// ExecuteStep runs one step against state.
func (r *Runner) ExecuteStep(ctx context.Context, step *Step, index int, state *State) *StepResult {
	start := time.Now()
	sr := &StepResult{Step: step, StepIndex: index}
	defer func() { sr.Duration = time.Since(start) }()

	if step.Action == ActionExpect {
		sr.Checks = Check(state.Graph, step)
		sr.Passed = true
		for _, c := range sr.Checks {
			if !c.Passed {
				sr.Passed = false
				sr.Error = fmt.Errorf("expectation failed: %s: expected %s, got %s", c.Key, c.Expected, c.Actual)
				break
			}
		}
		return sr
	}

	h, ok := r.handlers[step.Action]
	if !ok {
		sr.Error = fmt.Errorf("unknown action: %s", step.Action)
		return sr
	}

	r.logger.Debug("step", "scenario", state.Scenario.ID, "index", index+1, "action", step.Action, "element", step.Element)
	if err := h(ctx, step, state); err != nil {
		sr.Error = fmt.Errorf("step %d (%s): %w", index+1, step.Action, err)
		return sr
	}
	sr.Pass = state.Graph.LastPass()
	sr.Passed = true
	return sr
}

// RunSuite executes scenarios in order.
func (r *Runner) RunSuite(ctx context.Context, name string, scenarios []*Scenario) *SuiteResult {
	start := time.Now()
	result := &SuiteResult{Name: name}
	defer func() { result.Duration = time.Since(start) }()

	for _, sc := range scenarios {
		if ctx.Err() != nil {
			return result
		}

		res := r.Run(ctx, sc)
		result.Results = append(result.Results, res)
		switch {
		case res.Skipped:
			result.SkipCount++
		case res.Passed:
			result.PassCount++
		default:
			result.FailCount++
		}

		if r.config.OnScenarioComplete != nil {
			r.config.OnScenarioComplete(res)
		}
		if !res.Passed && !res.Skipped && r.config.StopOnFirstFailure {
			break
		}
	}
	return result
}

func handleInit(_ context.Context, _ *Step, s *State) error {
	s.Graph.Initialize()
	return nil
}

func handleEvent(_ context.Context, step *Step, s *State) error {
	if step.Element == "" || step.Event == "" {
		return fmt.Errorf("event step needs element and event")
	}
	at, err := stepTime(step)
	if err != nil {
		return err
	}
	s.Graph.DispatchEvent(step.Element, step.Event, at)
	return nil
}

func handleKey(_ context.Context, step *Step, s *State) error {
	key, err := parseKey(step.Key)
	if err != nil {
		return err
	}
	at, err := stepTime(step)
	if err != nil {
		return err
	}
	s.Graph.KeyPress(key, at)
	return nil
}

func handleRepeat(_ context.Context, step *Step, s *State) error {
	at, err := stepTime(step)
	if err != nil {
		return err
	}
	return s.Graph.NotifyRepeat(step.Element, step.Iteration, at)
}

func handleWallclock(_ context.Context, step *Step, s *State) error {
	now, err := parseWallclock(step.At, s.Graph.Origin())
	if err != nil {
		return err
	}
	s.Clock.Set(now)
	s.Graph.AdvanceWallclock(now)
	return nil
}

func handleReset(_ context.Context, step *Step, s *State) error {
	return s.Graph.Reset(step.Element)
}

func handleAttach(_ context.Context, step *Step, s *State) error {
	return s.Graph.Attach(step.Element)
}

func handleDetach(_ context.Context, step *Step, s *State) error {
	return s.Graph.Detach(step.Element)
}

func handleSetDuration(_ context.Context, step *Step, s *State) error {
	e, ok := s.Graph.Element(step.Element)
	if !ok {
		return fmt.Errorf("%s: %w", step.Element, timegraph.ErrUnknownElement)
	}
	dur, err := ParseTime(step.Dur)
	if err != nil {
		return err
	}
	return e.SetSimpleDuration(dur)
}

// stepTime parses the step's document time; empty means zero.
func stepTime(step *Step) (timing.Time, error) {
	if step.At == "" {
		return 0, nil
	}
	return ParseTime(step.At)
}
