// Package scenario loads and runs YAML timing scenarios: a set of timed
// elements with their begin/end specifiers, and a sequence of stimuli and
// expectations applied to the resulting timegraph.
package scenario

// Scenario is a single scenario loaded from YAML.
type Scenario struct {
	// ID is the unique scenario identifier (e.g., "SC-SYNC-001").
	ID string `yaml:"id"`

	// Name is a human-readable name.
	Name string `yaml:"name"`

	// Description explains what the scenario exercises.
	Description string `yaml:"description"`

	// Version is the scenario format version ("1.0"); empty means current.
	Version string `yaml:"version,omitempty"`

	// Origin is the wallclock instant of document time zero (RFC 3339).
	// Empty means the runner's clock at start.
	Origin string `yaml:"origin,omitempty"`

	// Elements are the timed elements, in document order.
	Elements []ElementDef `yaml:"elements"`

	// Steps are the stimuli and checks to execute in order.
	Steps []Step `yaml:"steps"`

	// Tags for categorizing scenarios.
	Tags []string `yaml:"tags,omitempty"`

	// Skip excludes the scenario from runs.
	Skip bool `yaml:"skip,omitempty"`

	// SkipReason explains why the scenario is skipped.
	SkipReason string `yaml:"skip_reason,omitempty"`

	// source is the file the scenario was loaded from.
	source string
}

// Source returns the file the scenario was loaded from, if any.
func (s *Scenario) Source() string {
	return s.source
}

// ElementDef declares a timed element.
type ElementDef struct {
	// ID is the element id other specifiers refer to.
	ID string `yaml:"id"`

	// Dur is the simple duration ("5s", "indefinite"). Empty means
	// indefinite.
	Dur string `yaml:"dur,omitempty"`

	// Begin lists the begin specifiers in attribute order.
	Begin []SpecDef `yaml:"begin,omitempty"`

	// End lists the end specifiers in attribute order.
	End []SpecDef `yaml:"end,omitempty"`

	// Detached elements are added to the graph but start outside the
	// document.
	Detached bool `yaml:"detached,omitempty"`
}

// Specifier kinds.
const (
	KindOffset     = "offset"
	KindIndefinite = "indefinite"
	KindSyncbase   = "syncbase"
	KindEvent      = "event"
	KindRepeat     = "repeat"
	KindAccesskey  = "accesskey"
	KindWallclock  = "wallclock"
)

// SpecDef declares one timing specifier.
type SpecDef struct {
	// Kind selects the variant (see the Kind constants).
	Kind string `yaml:"kind"`

	// Offset is added to the trigger time ("2s", "-500ms").
	Offset string `yaml:"offset,omitempty"`

	// Ref is the timebase element (syncbase, repeat).
	Ref string `yaml:"ref,omitempty"`

	// Edge is "begin" or "end" (syncbase).
	Edge string `yaml:"edge,omitempty"`

	// Target is the event target; empty means the owning element.
	Target string `yaml:"target,omitempty"`

	// Event is the event name.
	Event string `yaml:"event,omitempty"`

	// Iteration is the repeat iteration.
	Iteration int `yaml:"iteration,omitempty"`

	// Key is the access key (a single character).
	Key string `yaml:"key,omitempty"`

	// At is the wallclock instant (RFC 3339) or an offset from the origin.
	At string `yaml:"at,omitempty"`
}

// Step actions.
const (
	ActionInit      = "init"
	ActionEvent     = "event"
	ActionKey       = "key"
	ActionRepeat    = "repeat"
	ActionWallclock = "wallclock"
	ActionReset     = "reset"
	ActionAttach    = "attach"
	ActionDetach    = "detach"
	ActionDuration  = "set_dur"
	ActionExpect    = "expect"
)

// Step is a single stimulus or check.
type Step struct {
	// Action is the step type (see the Action constants).
	Action string `yaml:"action"`

	// Element is the element the step applies to.
	Element string `yaml:"element,omitempty"`

	// Event is the event name (event).
	Event string `yaml:"event,omitempty"`

	// Key is the pressed key (key).
	Key string `yaml:"key,omitempty"`

	// Iteration is the repeat iteration (repeat).
	Iteration int `yaml:"iteration,omitempty"`

	// At is the document time of the stimulus, or the wallclock instant
	// (RFC 3339 or offset from origin) for wallclock steps.
	At string `yaml:"at,omitempty"`

	// Dur is the new simple duration (set_dur).
	Dur string `yaml:"dur,omitempty"`

	// Description explains what this step does.
	Description string `yaml:"description,omitempty"`

	// Expectation holds the checks of an expect step.
	Expectation `yaml:",inline"`
}

// Expectation describes the expected state of one element. Nil fields are
// not checked.
type Expectation struct {
	// Begin is the expected begin instance list.
	Begin *[]string `yaml:"begin,omitempty"`

	// End is the expected end instance list.
	End *[]string `yaml:"end,omitempty"`

	// Interval is the expected current interval.
	Interval *IntervalExpect `yaml:"interval,omitempty"`

	// NoInterval expects the element to have no current interval.
	NoInterval bool `yaml:"no_interval,omitempty"`

	// Errors is the expected number of reported errors.
	Errors *int `yaml:"errors,omitempty"`

	// CyclicErrors is the expected number of cyclic dependency errors.
	CyclicErrors *int `yaml:"cyclic_errors,omitempty"`

	// UnresolvedErrors is the expected number of unresolved references.
	UnresolvedErrors *int `yaml:"unresolved_errors,omitempty"`

	// Suppressed is the expected suppression count of the last pass.
	Suppressed *int `yaml:"suppressed,omitempty"`
}

// IntervalExpect is the expected begin and end of an interval.
type IntervalExpect struct {
	Begin string `yaml:"begin"`
	End   string `yaml:"end"`
}

// Suite is a collection of scenarios.
type Suite struct {
	// Name of the suite.
	Name string

	// Scenarios are the loaded scenarios.
	Scenarios []*Scenario
}
