package timegraph

import (
	"github.com/google/uuid"

	"github.com/smil-anim/timing-go/pkg/log"
	"github.com/smil-anim/timing-go/pkg/timing"
)

// notifyKind identifies a queued notification.
type notifyKind uint8

const (
	notifyRecompute notifyKind = iota
	notifyNewInterval
	notifyRemoveInterval
	notifyTimebaseUpdate
	notifyRepeat
)

func (k notifyKind) trace() log.NotificationKind {
	switch k {
	case notifyRemoveInterval:
		return log.NotifyRemoveInterval
	case notifyTimebaseUpdate:
		return log.NotifyTimebaseUpdate
	case notifyRepeat:
		return log.NotifyRepeat
	default:
		return log.NotifyNewInterval
	}
}

// notification is one queue entry of a propagation pass.
type notification struct {
	kind     notifyKind
	delivery uint64

	// source publishes the notification; element is recomputed.
	source  *Element
	element *Element

	spec      timing.Specifier
	interval  *timing.Interval
	instance  *timing.InstanceTime
	time      timing.Time
	iteration int

	// cause lists the specifiers whose handling led to this notification.
	cause cause
}

// cause is the set of specifiers a notification descends from within one
// pass. A notification that reaches a member of its own cause has gone
// around a cycle. Causes are never mutated once built.
type cause map[timing.Specifier]struct{}

func (c cause) has(s timing.Specifier) bool {
	_, ok := c[s]
	return ok
}

// with returns c extended by s.
func (c cause) with(s timing.Specifier) cause {
	out := make(cause, len(c)+1)
	for x := range c {
		out[x] = struct{}{}
	}
	out[s] = struct{}{}
	return out
}

// union returns the members of c and o.
func (c cause) union(o cause) cause {
	switch {
	case len(o) == 0:
		return c
	case len(c) == 0:
		return o
	}
	out := make(cause, len(c)+len(o))
	for x := range c {
		out[x] = struct{}{}
	}
	for x := range o {
		out[x] = struct{}{}
	}
	return out
}

// pass tracks one propagation pass.
type pass struct {
	id string

	// pinned holds the specifiers frozen during this pass.
	pinned        map[timing.Specifier]bool
	notifications int
	suppressions  int
}

func newPass() *pass {
	return &pass{
		id:     uuid.New().String(),
		pinned: make(map[timing.Specifier]bool),
	}
}

// PassStats summarizes the most recent completed pass.
type PassStats struct {
	// ID is the pass UUID.
	ID string

	// Notifications is the number of queue entries processed.
	Notifications int

	// Suppressed is the number of notifications dropped as cyclic.
	Suppressed int
}

// engine drains notifications first-in first-out, one pass per stimulus.
type engine struct {
	graph      *Graph
	queue      []notification
	current    *pass
	deliveries uint64
	last       PassStats

	// active is the cause of the notification being dispatched; anything
	// published meanwhile inherits it.
	active cause

	// frozen holds specifiers pinned by an earlier pass. They thaw on their
	// next accepted delivery.
	frozen map[timing.Specifier]struct{}
}

func newEngine(g *Graph) *engine {
	return &engine{graph: g, frozen: make(map[timing.Specifier]struct{})}
}

// running reports whether a pass is in progress.
func (en *engine) running() bool {
	return en.current != nil
}

// passID returns the id of the running pass, or "".
func (en *engine) passID() string {
	if en.current == nil {
		return ""
	}
	return en.current.id
}

// run executes fn as the stimulus of a new pass and drains the queue. If a
// pass is already running, fn joins it.
func (en *engine) run(stimulus *log.StimulusEvent, fn func()) {
	if en.current != nil {
		if stimulus != nil {
			en.graph.emit(log.Event{Category: log.CategoryStimulus, Stimulus: stimulus})
		}
		fn()
		return
	}

	en.current = newPass()
	en.graph.emit(log.Event{Category: log.CategoryPass, Pass: &log.PassEvent{Phase: log.PassStart}})
	if stimulus != nil {
		en.graph.emit(log.Event{Category: log.CategoryStimulus, Stimulus: stimulus})
	}

	fn()
	en.drain()

	p := en.current
	en.graph.emit(log.Event{
		Category: log.CategoryPass,
		Pass: &log.PassEvent{
			Phase:         log.PassEnd,
			Notifications: p.notifications,
			Suppressed:    p.suppressions,
		},
	})
	en.last = PassStats{ID: p.id, Notifications: p.notifications, Suppressed: p.suppressions}
	en.current = nil
}

// enqueue appends n to the running pass, starting one if needed.
func (en *engine) enqueue(n notification) {
	if en.current == nil {
		en.run(nil, func() { en.queue = append(en.queue, n) })
		return
	}
	en.queue = append(en.queue, n)
}

// nextDelivery allocates the id shared by one publication.
func (en *engine) nextDelivery() uint64 {
	en.deliveries++
	return en.deliveries
}

func (en *engine) drain() {
	for len(en.queue) > 0 {
		n := en.queue[0]
		en.queue[0] = notification{}
		en.queue = en.queue[1:]
		en.dispatch(n)
	}
	en.queue = nil
}

func (en *engine) dispatch(n notification) {
	p := en.current
	p.notifications++

	if n.kind == notifyRecompute {
		e := n.element
		e.pending = false
		en.active, e.cause = e.cause, nil
		e.resolve()
		en.active = nil
		return
	}

	s := n.spec
	if s == nil || !s.Initialized() {
		return
	}
	if n.kind != notifyTimebaseUpdate && !en.graph.registry.contains(n.source.handle, s) {
		return
	}

	if n.cause.has(s) {
		p.suppressions++
		en.traceNotification(n, true)
		if !p.pinned[s] {
			p.pinned[s] = true
			en.frozen[s] = struct{}{}
			s.Freeze()
			s.Owner().ReportError(&timing.CyclicDependencyError{
				Owner:     s.Owner().ID(),
				Specifier: s.String(),
				PassID:    p.id,
			})
		}
		return
	}
	if _, ok := en.frozen[s]; ok && !p.pinned[s] {
		delete(en.frozen, s)
		s.Thaw()
	}
	en.traceNotification(n, false)

	en.active = n.cause.with(s)
	switch n.kind {
	case notifyNewInterval:
		s.NewInterval(n.interval)
	case notifyRemoveInterval:
		s.RemoveInterval(n.interval)
	case notifyTimebaseUpdate:
		s.HandleTimebaseUpdate(n.instance, n.time)
	case notifyRepeat:
		s.HandleRepeat(n.iteration, n.time)
	}
	en.active = nil
}

func (en *engine) traceNotification(n notification, suppressed bool) {
	ev := &log.NotificationEvent{
		Kind:       n.kind.trace(),
		Delivery:   n.delivery,
		Source:     n.source.id,
		Time:       n.time,
		Iteration:  n.iteration,
		Suppressed: suppressed,
	}
	if n.interval != nil {
		ev.IntervalSeq = n.interval.Seq()
	}
	en.graph.emit(log.Event{
		Category:     log.CategoryNotification,
		Element:      n.spec.Owner().ID(),
		Specifier:    n.spec.String(),
		Notification: ev,
	})
}
