package scenario

import (
	"time"

	"github.com/smil-anim/timing-go/pkg/timegraph"
)

// Result represents the outcome of one scenario.
type Result struct {
	// Scenario is the scenario that was executed.
	Scenario *Scenario

	// Passed indicates if all steps passed.
	Passed bool

	// Error is the error that caused failure, if any.
	Error error

	// StepResults contains results for each executed step.
	StepResults []*StepResult

	// Graph is the timegraph after the last executed step.
	Graph *timegraph.Graph

	// Duration is how long the scenario took.
	Duration time.Duration

	// Skipped indicates if the scenario was skipped.
	Skipped bool

	// SkipReason explains why the scenario was skipped.
	SkipReason string
}

// StepResult represents the outcome of a single step.
type StepResult struct {
	// Step is the step that was executed.
	Step *Step

	// StepIndex is the index of this step (0-based).
	StepIndex int

	// Passed indicates if the step passed.
	Passed bool

	// Error is the error that caused failure, if any.
	Error error

	// Checks holds the expectation results of an expect step.
	Checks []*CheckResult

	// Pass is the propagation pass the step ran, if any.
	Pass timegraph.PassStats

	// Duration is how long the step took.
	Duration time.Duration
}

// CheckResult represents the result of checking one expectation.
type CheckResult struct {
	// Key names the checked property (e.g., "b.begin").
	Key string

	// Expected is the expected value.
	Expected string

	// Actual is the observed value.
	Actual string

	// Passed indicates if the expectation was met.
	Passed bool
}

// SuiteResult represents the outcome of running several scenarios.
type SuiteResult struct {
	// Name identifies the suite.
	Name string

	// Results contains results for each scenario.
	Results []*Result

	// PassCount is the number of passed scenarios.
	PassCount int

	// FailCount is the number of failed scenarios.
	FailCount int

	// SkipCount is the number of skipped scenarios.
	SkipCount int

	// Duration is the total time for all scenarios.
	Duration time.Duration
}
