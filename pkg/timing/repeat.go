package timing

import (
	"strconv"
	"time"
)

// Repeat produces one fixed instant each time a timebase element starts the
// configured repeat iteration ("X.repeat(2)+1s").
type Repeat struct {
	base
	ref       string
	iteration int
	offset    time.Duration

	timebase  ElementID
	bound     bool
	instances []*InstanceTime
}

// NewRepeat creates a repeat specifier.
func NewRepeat(owner Owner, dir Direction, ref string, iteration int, offset time.Duration) (*Repeat, error) {
	if owner == nil {
		return nil, malformed("repeat", "no owner")
	}
	if ref == "" {
		return nil, malformed("repeat", "empty timebase reference")
	}
	if iteration < 0 {
		return nil, malformed("repeat", "negative iteration %d", iteration)
	}
	return &Repeat{
		base:      base{owner: owner, dir: dir},
		ref:       ref,
		iteration: iteration,
		offset:    offset,
		timebase:  NoElement,
	}, nil
}

// Ref returns the timebase id.
func (s *Repeat) Ref() string {
	return s.ref
}

// Iteration returns the repeat iteration the specifier waits for.
func (s *Repeat) Iteration() int {
	return s.iteration
}

// Bound reports whether the timebase reference resolved.
func (s *Repeat) Bound() bool {
	return s.bound
}

func (s *Repeat) Initialize() {
	s.initialized = true
	if s.bound {
		return
	}
	tb, ok := s.owner.ResolveTimebase(s.ref)
	if !ok {
		s.owner.ReportError(&UnresolvedReferenceError{Owner: s.owner.ID(), Ref: s.ref})
		return
	}
	s.timebase = tb
	s.bound = true
	s.env().RegisterDependent(tb, s)
}

func (s *Repeat) Deinitialize() {
	if !s.initialized {
		return
	}
	s.initialized = false
	if s.bound {
		s.env().UnregisterDependent(s.timebase, s)
		s.bound = false
		s.timebase = NoElement
	}
	its := s.instances
	s.instances = nil
	s.removeAll(its...)
}

func (s *Repeat) HandleRepeat(iteration int, t Time) {
	if !s.initialized || iteration != s.iteration {
		return
	}
	it := NewInstanceTime(s, t.Add(s.offset), true, true)
	s.instances = append(s.instances, it)
	s.add(it)
}

func (s *Repeat) NewInterval(*Interval) {}

func (s *Repeat) RemoveInterval(*Interval) {}

func (s *Repeat) HandleTimebaseUpdate(*InstanceTime, Time) {}

func (s *Repeat) Freeze() {}

func (s *Repeat) Thaw() {}

func (s *Repeat) String() string {
	return s.ref + ".repeat(" + strconv.Itoa(s.iteration) + ")" + offsetSuffix(s.offset)
}
