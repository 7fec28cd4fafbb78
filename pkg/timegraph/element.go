package timegraph

import (
	"fmt"

	"github.com/smil-anim/timing-go/pkg/log"
	"github.com/smil-anim/timing-go/pkg/timing"
)

// Element is a timed element of the document. It owns the begin and end
// instance lists fed by its specifiers and resolves them into at most one
// current interval.
type Element struct {
	graph  *Graph
	handle timing.ElementID
	id     string

	attached bool
	dur      timing.Time

	begin timing.InstanceList
	end   timing.InstanceList
	specs []timing.Specifier

	current *timing.Interval
	nextSeq uint64

	// pending is set while a recompute is queued; cause accumulates what
	// led to it.
	pending bool
	cause   cause

	errs []error
}

// ID returns the element's document id.
func (e *Element) ID() string {
	return e.id
}

// Handle returns the element's arena handle.
func (e *Element) Handle() timing.ElementID {
	return e.handle
}

// Attached reports whether the element is part of the document.
func (e *Element) Attached() bool {
	return e.attached
}

// SimpleDuration returns the simple duration (Indefinite when unset).
func (e *Element) SimpleDuration() timing.Time {
	return e.dur
}

// SetSimpleDuration sets the simple duration. Pass timing.Indefinite to
// clear it. Negative or unresolved durations are rejected.
func (e *Element) SetSimpleDuration(d timing.Time) error {
	if !d.IsResolved() || (d.IsDefinite() && d < 0) {
		return fmt.Errorf("%s: invalid simple duration %s", e.id, d)
	}
	e.dur = d
	if e.graph.initialized {
		e.scheduleResolve()
	}
	return nil
}

// AddSpecifier appends s to the element's begin or end attribute. If the
// document is already initialized and the element attached, s is
// initialized immediately.
func (e *Element) AddSpecifier(s timing.Specifier) error {
	if s.Owner() != timing.Owner(e) {
		return fmt.Errorf("%s: %w", e.id, ErrForeignSpecifier)
	}
	for _, x := range e.specs {
		if x == s {
			return nil
		}
	}
	e.specs = append(e.specs, s)
	if e.graph.initialized && e.attached {
		e.graph.engine.run(nil, s.Initialize)
	}
	return nil
}

// Specifiers returns the element's specifiers in attribute order.
func (e *Element) Specifiers() []timing.Specifier {
	out := make([]timing.Specifier, len(e.specs))
	copy(out, e.specs)
	return out
}

// Interval returns the current interval, or nil.
func (e *Element) Interval() *timing.Interval {
	return e.current
}

// Errors returns the timing errors reported for this element.
func (e *Element) Errors() []error {
	out := make([]error, len(e.errs))
	copy(out, e.errs)
	return out
}

// Instances implements timing.Owner.
func (e *Element) Instances(dir timing.Direction) *timing.InstanceList {
	if dir == timing.End {
		return &e.end
	}
	return &e.begin
}

// InstanceListChanged implements timing.Owner.
func (e *Element) InstanceListChanged(dir timing.Direction) {
	e.graph.emit(log.Event{
		Category: log.CategoryInstances,
		Element:  e.id,
		Instances: &log.InstancesEvent{
			Direction: dir,
			Times:     e.Instances(dir).Times(),
		},
	})
	e.scheduleResolve()
}

// ResolveTimebase implements timing.Owner.
func (e *Element) ResolveTimebase(ref string) (timing.ElementID, bool) {
	return e.graph.resolve(ref)
}

// ReportError implements timing.Owner.
func (e *Element) ReportError(err error) {
	e.errs = append(e.errs, err)
	e.graph.reportError(e, err)
}

// Environment implements timing.Owner.
func (e *Element) Environment() timing.Environment {
	return e.graph
}

func (e *Element) initializeSpecifiers() {
	for _, s := range e.specs {
		s.Initialize()
	}
}

func (e *Element) deinitializeSpecifiers() {
	for _, s := range e.specs {
		s.Deinitialize()
	}
}

// reset clears clear-on-reset instants from both lists.
func (e *Element) reset() {
	for _, dir := range []timing.Direction{timing.Begin, timing.End} {
		if removed := e.Instances(dir).ClearResettable(); len(removed) > 0 {
			e.InstanceListChanged(dir)
		}
	}
}

// scheduleResolve queues one recompute of the element.
func (e *Element) scheduleResolve() {
	en := e.graph.engine
	e.cause = e.cause.union(en.active)
	if e.pending {
		return
	}
	e.pending = true
	en.enqueue(notification{kind: notifyRecompute, element: e})
}

// resolve derives the current interval from the instance lists and
// publishes what changed.
func (e *Element) resolve() {
	if !e.attached {
		e.removeInterval()
		return
	}
	first := e.begin.FirstDefinite()
	if first == nil {
		e.removeInterval()
		return
	}
	begin := first.Time()
	end := e.computeEnd(begin)

	if e.current == nil {
		e.nextSeq++
		e.current = timing.NewInterval(begin, end, e.nextSeq)
		e.traceInterval(log.IntervalCreated, e.current)
		e.publish(notifyNewInterval, e.current)
		return
	}

	var edges []timing.Direction
	if e.current.SetBegin(begin) {
		edges = append(edges, timing.Begin)
	}
	if e.current.SetEnd(end) {
		edges = append(edges, timing.End)
	}
	if len(edges) > 0 {
		e.traceInterval(log.IntervalRevised, e.current)
		e.publishRevision(e.current, edges)
	}
}

// computeEnd returns the end of an interval beginning at begin.
func (e *Element) computeEnd(begin timing.Time) timing.Time {
	end := timing.Indefinite
	if e.dur.IsDefinite() {
		end = begin.Add(e.dur.Duration())
	}
	if e.end.Len() == 0 {
		return end
	}
	if it := e.end.FirstAfter(begin); it != nil {
		return timing.Min(end, it.Time())
	}
	if !e.dur.IsDefinite() {
		return timing.Unresolved
	}
	return end
}

func (e *Element) removeInterval() {
	if e.current == nil {
		return
	}
	iv := e.current
	e.current = nil
	e.traceInterval(log.IntervalRemoved, iv)
	e.publish(notifyRemoveInterval, iv)
}

// publish queues a lifecycle notification for every registered dependent.
func (e *Element) publish(kind notifyKind, iv *timing.Interval) {
	en := e.graph.engine
	delivery := en.nextDelivery()
	for _, s := range e.graph.registry.list(e.handle) {
		en.enqueue(notification{
			kind:     kind,
			delivery: delivery,
			source:   e,
			spec:     s,
			interval: iv,
			cause:    en.active,
		})
	}
}

// publishRevision queues a timebase update for every instant derived from
// the changed edges.
func (e *Element) publishRevision(iv *timing.Interval, edges []timing.Direction) {
	en := e.graph.engine
	delivery := en.nextDelivery()
	for _, edge := range edges {
		for _, it := range iv.Dependents(edge) {
			en.enqueue(notification{
				kind:     notifyTimebaseUpdate,
				delivery: delivery,
				source:   e,
				spec:     it.Creator(),
				interval: iv,
				instance: it,
				time:     iv.Edge(edge),
				cause:    en.active,
			})
		}
	}
}

// publishRepeat queues a repeat notification for every registered dependent.
func (e *Element) publishRepeat(iteration int, t timing.Time) {
	en := e.graph.engine
	delivery := en.nextDelivery()
	for _, s := range e.graph.registry.list(e.handle) {
		en.enqueue(notification{
			kind:      notifyRepeat,
			delivery:  delivery,
			source:    e,
			spec:      s,
			time:      t,
			iteration: iteration,
			cause:     en.active,
		})
	}
}

func (e *Element) traceInterval(change log.IntervalChange, iv *timing.Interval) {
	e.graph.emit(log.Event{
		Category: log.CategoryInterval,
		Element:  e.id,
		Interval: &log.IntervalEvent{
			Change: change,
			Seq:    iv.Seq(),
			Begin:  iv.Begin(),
			End:    iv.End(),
		},
	})
}

// String returns the element id and its current interval.
func (e *Element) String() string {
	if e.current == nil {
		return e.id + " (no interval)"
	}
	return e.id + " " + e.current.String()
}

// Compile-time interface satisfaction check.
var _ timing.Owner = (*Element)(nil)
