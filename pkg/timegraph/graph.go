package timegraph

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/smil-anim/timing-go/pkg/log"
	"github.com/smil-anim/timing-go/pkg/timing"
	"github.com/smil-anim/timing-go/pkg/wallclock"
)

// Graph errors.
var (
	ErrDuplicateElement = errors.New("duplicate element id")
	ErrUnknownElement   = errors.New("unknown element")
	ErrForeignSpecifier = errors.New("specifier belongs to another element")
)

// Config holds graph configuration.
type Config struct {
	// Origin is the wallclock instant of document time zero.
	Origin time.Time

	// Clock is the wallclock source used by Tick and trace timestamps.
	Clock wallclock.Clock

	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// TraceLogger receives propagation trace events (nil disables tracing).
	TraceLogger log.Logger
}

// DefaultConfig returns a configuration with the document starting now on
// the system clock.
func DefaultConfig() Config {
	clock := wallclock.RealClock{}
	return Config{
		Origin: clock.Now(),
		Clock:  clock,
	}
}

// Graph is the timegraph of one document.
type Graph struct {
	config Config
	logger *slog.Logger
	trace  log.Logger

	// elements is the arena; a handle is an index into it.
	elements []*Element
	byID     map[string]timing.ElementID

	registry *registry
	engine   *engine
	alarms   *wallclock.Scheduler

	events map[eventKey][]*listener
	keys   map[rune][]*listener

	// unresolved maps a missing timebase id to the owners waiting for it.
	unresolved map[string][]timing.ElementID

	initialized bool
}

// New creates an empty graph.
func New(config Config) *Graph {
	if config.Clock == nil {
		config.Clock = wallclock.RealClock{}
	}
	if config.Origin.IsZero() {
		config.Origin = config.Clock.Now()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	trace := config.TraceLogger
	if trace == nil {
		trace = log.NoopLogger{}
	}

	g := &Graph{
		config:     config,
		logger:     logger,
		trace:      trace,
		byID:       make(map[string]timing.ElementID),
		registry:   newRegistry(),
		alarms:     wallclock.NewScheduler(config.Clock),
		events:     make(map[eventKey][]*listener),
		keys:       make(map[rune][]*listener),
		unresolved: make(map[string][]timing.ElementID),
	}
	g.engine = newEngine(g)
	return g
}

// Origin returns the wallclock instant of document time zero.
func (g *Graph) Origin() time.Time {
	return g.config.Origin
}

// DocumentTime converts a wallclock instant to document time.
func (g *Graph) DocumentTime(at time.Time) timing.Time {
	return timing.FromDuration(at.Sub(g.config.Origin))
}

// AddElement adds an attached element with no specifiers. If the document
// is initialized, specifiers waiting for this id are retried.
func (g *Graph) AddElement(id string) (*Element, error) {
	if id == "" {
		return nil, fmt.Errorf("empty element id: %w", ErrUnknownElement)
	}
	if _, exists := g.byID[id]; exists {
		return nil, fmt.Errorf("%s: %w", id, ErrDuplicateElement)
	}
	e := &Element{
		graph:    g,
		handle:   timing.ElementID(len(g.elements)),
		id:       id,
		attached: true,
		dur:      timing.Indefinite,
	}
	g.elements = append(g.elements, e)
	g.byID[id] = e.handle
	g.logger.Debug("element added", "element", id, "handle", int(e.handle))

	if g.initialized {
		g.engine.run(&log.StimulusEvent{Kind: log.StimulusAttach, Target: id}, func() {
			g.retryUnresolved(id)
		})
	}
	return e, nil
}

// Element returns the element with the given id.
func (g *Graph) Element(id string) (*Element, bool) {
	h, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return g.elements[h], true
}

// ElementAt returns the element with the given handle, or nil.
func (g *Graph) ElementAt(h timing.ElementID) *Element {
	if h < 0 || int(h) >= len(g.elements) {
		return nil
	}
	return g.elements[h]
}

// Elements returns all elements in arena order.
func (g *Graph) Elements() []*Element {
	out := make([]*Element, len(g.elements))
	copy(out, g.elements)
	return out
}

// Initialized reports whether Initialize has run.
func (g *Graph) Initialized() bool {
	return g.initialized
}

// DependentCount returns the number of dependency registrations.
func (g *Graph) DependentCount() int {
	return g.registry.count()
}

// Dependents returns the specifiers registered on the element with the
// given id.
func (g *Graph) Dependents(id string) []timing.Specifier {
	h, ok := g.byID[id]
	if !ok {
		return nil
	}
	return g.registry.list(h)
}

// LastPass returns statistics of the most recent completed pass.
func (g *Graph) LastPass() PassStats {
	return g.engine.last
}

// PendingAlarms returns the number of scheduled wallclock alarms.
func (g *Graph) PendingAlarms() int {
	return g.alarms.Count()
}

// Initialize initializes every specifier of every attached element (document
// load) in one pass.
func (g *Graph) Initialize() {
	g.initialized = true
	g.engine.run(&log.StimulusEvent{Kind: log.StimulusInitialize}, func() {
		for _, e := range g.elements {
			if e.attached {
				e.initializeSpecifiers()
			}
		}
	})
}

// Attach reinserts a detached element: its specifiers are initialized again
// and specifiers waiting for its id are retried.
func (g *Graph) Attach(id string) error {
	e, ok := g.Element(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownElement)
	}
	if e.attached {
		return nil
	}
	g.engine.run(&log.StimulusEvent{Kind: log.StimulusAttach, Target: id}, func() {
		e.attached = true
		if g.initialized {
			e.initializeSpecifiers()
			g.retryUnresolved(id)
		}
		e.scheduleResolve()
	})
	return nil
}

// Detach removes an element from the document: its specifiers are
// deinitialized and its interval is removed. Dependents stay registered and
// pick up its intervals again after Attach.
func (g *Graph) Detach(id string) error {
	e, ok := g.Element(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownElement)
	}
	if !e.attached {
		return nil
	}
	g.engine.run(&log.StimulusEvent{Kind: log.StimulusDetach, Target: id}, func() {
		e.deinitializeSpecifiers()
		e.attached = false
		e.scheduleResolve()
	})
	return nil
}

// Reset clears the element's clear-on-reset instants (restart).
func (g *Graph) Reset(id string) error {
	e, ok := g.Element(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownElement)
	}
	g.engine.run(&log.StimulusEvent{Kind: log.StimulusReset, Target: id}, e.reset)
	return nil
}

// DispatchEvent delivers an occurrence of the named event on target at
// document time at.
func (g *Graph) DispatchEvent(target, name string, at timing.Time) {
	stimulus := &log.StimulusEvent{Kind: log.StimulusDocEvent, Target: target, Name: name, At: at}
	g.engine.run(stimulus, func() {
		for _, l := range snapshot(g.events[eventKey{target: target, name: name}]) {
			l.fire(at)
		}
	})
}

// KeyPress delivers a key press at document time at.
func (g *Graph) KeyPress(key rune, at timing.Time) {
	stimulus := &log.StimulusEvent{Kind: log.StimulusKey, Name: string(key), At: at}
	g.engine.run(stimulus, func() {
		for _, l := range snapshot(g.keys[key]) {
			l.fire(at)
		}
	})
}

// NotifyRepeat tells the dependents of element id that it started repeat
// iteration at document time at.
func (g *Graph) NotifyRepeat(id string, iteration int, at timing.Time) error {
	e, ok := g.Element(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownElement)
	}
	stimulus := &log.StimulusEvent{Kind: log.StimulusRepeat, Target: id, Iteration: iteration, At: at}
	g.engine.run(stimulus, func() {
		e.publishRepeat(iteration, at)
	})
	return nil
}

// AdvanceWallclock fires the wallclock alarms due at now and returns how
// many fired.
func (g *Graph) AdvanceWallclock(now time.Time) int {
	fired := 0
	stimulus := &log.StimulusEvent{Kind: log.StimulusWallclock, At: g.DocumentTime(now), Wallclock: now}
	g.engine.run(stimulus, func() {
		fired = g.alarms.FireDue(now)
	})
	return fired
}

// Tick advances wallclock alarms to the configured clock's current time.
func (g *Graph) Tick() int {
	return g.AdvanceWallclock(g.config.Clock.Now())
}

// resolve looks up an attached element.
func (g *Graph) resolve(ref string) (timing.ElementID, bool) {
	h, ok := g.byID[ref]
	if !ok || !g.elements[h].attached {
		return timing.NoElement, false
	}
	return h, true
}

// reportError records an element's error and remembers unresolved
// references for retry.
func (g *Graph) reportError(e *Element, err error) {
	kind := log.ErrorOther
	var unresolved *timing.UnresolvedReferenceError
	switch {
	case errors.As(err, &unresolved):
		kind = log.ErrorUnresolved
		g.addUnresolved(unresolved.Ref, e.handle)
		g.logger.Warn("unresolved timebase", "element", e.id, "ref", unresolved.Ref)
	case errors.Is(err, timing.ErrCyclicDependency):
		kind = log.ErrorCyclic
		g.logger.Warn("cyclic timing dependency", "element", e.id, "err", err)
	default:
		g.logger.Warn("timing error", "element", e.id, "err", err)
	}
	g.emit(log.Event{
		Category: log.CategoryError,
		Element:  e.id,
		Error:    &log.ErrorEventData{Kind: kind, Message: err.Error()},
	})
}

func (g *Graph) addUnresolved(ref string, owner timing.ElementID) {
	for _, h := range g.unresolved[ref] {
		if h == owner {
			return
		}
	}
	g.unresolved[ref] = append(g.unresolved[ref], owner)
}

// retryUnresolved re-initializes the owners that were waiting for id.
// Initialize is idempotent, so already bound specifiers are untouched.
func (g *Graph) retryUnresolved(id string) {
	owners := g.unresolved[id]
	delete(g.unresolved, id)
	for _, h := range owners {
		if owner := g.elements[h]; owner.attached {
			g.logger.Debug("retrying timebase", "element", owner.id, "ref", id)
			owner.initializeSpecifiers()
		}
	}
}

// emit stamps and forwards a trace event.
func (g *Graph) emit(ev log.Event) {
	ev.Timestamp = g.config.Clock.Now()
	ev.PassID = g.engine.passID()
	g.trace.Log(ev)
}

// RegisterDependent implements timing.Environment. A timebase with a live
// interval replays it to the new dependent.
func (g *Graph) RegisterDependent(timebase timing.ElementID, d timing.Specifier) {
	tb := g.ElementAt(timebase)
	if tb == nil || !g.registry.add(timebase, d) {
		return
	}
	g.logger.Debug("dependent registered", "timebase", tb.id, "specifier", d.String())
	if tb.current != nil {
		g.engine.enqueue(notification{
			kind:     notifyNewInterval,
			delivery: g.engine.nextDelivery(),
			source:   tb,
			spec:     d,
			interval: tb.current,
			cause:    g.engine.active,
		})
	}
}

// UnregisterDependent implements timing.Environment.
func (g *Graph) UnregisterDependent(timebase timing.ElementID, d timing.Specifier) {
	if g.registry.remove(timebase, d) {
		g.logger.Debug("dependent unregistered", "timebase", int(timebase), "specifier", d.String())
	}
}

// ListenEvent implements timing.Environment.
func (g *Graph) ListenEvent(target, name string, fn func(timing.Time)) timing.Subscription {
	key := eventKey{target: target, name: name}
	l := &listener{fn: fn}
	g.events[key] = append(g.events[key], l)
	l.remove = func() {
		g.events[key] = without(g.events[key], l)
		if len(g.events[key]) == 0 {
			delete(g.events, key)
		}
	}
	return l
}

// ListenKey implements timing.Environment.
func (g *Graph) ListenKey(key rune, fn func(timing.Time)) timing.Subscription {
	l := &listener{fn: fn}
	g.keys[key] = append(g.keys[key], l)
	l.remove = func() {
		g.keys[key] = without(g.keys[key], l)
		if len(g.keys[key]) == 0 {
			delete(g.keys, key)
		}
	}
	return l
}

// ScheduleAt implements timing.Environment.
func (g *Graph) ScheduleAt(at time.Time, fn func(timing.Time)) timing.Subscription {
	l := &listener{fn: fn}
	id := g.alarms.Schedule(at, func(at time.Time) {
		l.fire(g.DocumentTime(at))
	})
	l.remove = func() {
		_ = g.alarms.Cancel(id)
	}
	return l
}

// Compile-time interface satisfaction check.
var _ timing.Environment = (*Graph)(nil)
