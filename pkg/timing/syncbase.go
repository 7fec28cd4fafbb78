package timing

import "time"

// Syncbase produces one revisable instant per live interval of a timebase
// element: the interval's begin or end plus an offset ("X.end+2s").
type Syncbase struct {
	base
	ref    string
	edge   Direction
	offset time.Duration

	timebase ElementID
	bound    bool

	// instances maps each timebase interval to the instant derived from it,
	// in notification order.
	instances map[*Interval]*InstanceTime
	order     []*Interval
}

// NewSyncbase creates a syncbase specifier on the given edge of ref.
func NewSyncbase(owner Owner, dir Direction, ref string, edge Direction, offset time.Duration) (*Syncbase, error) {
	if owner == nil {
		return nil, malformed("syncbase", "no owner")
	}
	if ref == "" {
		return nil, malformed("syncbase", "empty timebase reference")
	}
	if edge != Begin && edge != End {
		return nil, malformed("syncbase", "invalid edge %d", edge)
	}
	return &Syncbase{
		base:      base{owner: owner, dir: dir},
		ref:       ref,
		edge:      edge,
		offset:    offset,
		timebase:  NoElement,
		instances: make(map[*Interval]*InstanceTime),
	}, nil
}

// Ref returns the timebase id.
func (s *Syncbase) Ref() string {
	return s.ref
}

// Edge returns which timebase edge is tracked.
func (s *Syncbase) Edge() Direction {
	return s.edge
}

// Bound reports whether the timebase reference resolved.
func (s *Syncbase) Bound() bool {
	return s.bound
}

func (s *Syncbase) Initialize() {
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

func (s *Syncbase) Deinitialize() {
	if !s.initialized {
		return
	}
	s.initialized = false
	if s.bound {
		s.env().UnregisterDependent(s.timebase, s)
		s.bound = false
		s.timebase = NoElement
	}
	its := make([]*InstanceTime, 0, len(s.order))
	for _, iv := range s.order {
		it := s.instances[iv]
		iv.RemoveDependent(it, s.edge)
		its = append(its, it)
	}
	s.instances = make(map[*Interval]*InstanceTime)
	s.order = nil
	s.removeAll(its...)
}

func (s *Syncbase) NewInterval(iv *Interval) {
	if !s.initialized {
		return
	}
	if _, ok := s.instances[iv]; ok {
		return
	}
	it := NewInstanceTime(s, iv.Edge(s.edge).Add(s.offset), false, true)
	iv.AddDependent(it, s.edge)
	s.instances[iv] = it
	s.order = append(s.order, iv)
	s.add(it)
}

func (s *Syncbase) RemoveInterval(iv *Interval) {
	it, ok := s.instances[iv]
	if !ok {
		return
	}
	delete(s.instances, iv)
	for i, x := range s.order {
		if x == iv {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	iv.RemoveDependent(it, s.edge)
	s.removeAll(it)
}

func (s *Syncbase) HandleTimebaseUpdate(it *InstanceTime, newTime Time) {
	if it.creator != Specifier(s) || !s.list().Contains(it) {
		return
	}
	if !it.setTime(newTime.Add(s.offset)) {
		return
	}
	s.list().Reposition(it)
	s.owner.InstanceListChanged(s.dir)
}

func (s *Syncbase) HandleRepeat(int, Time) {}

func (s *Syncbase) Freeze() {
	for _, it := range s.instances {
		it.freeze()
	}
}

func (s *Syncbase) Thaw() {
	for _, it := range s.instances {
		it.thaw()
	}
}

func (s *Syncbase) String() string {
	return s.ref + "." + s.edge.String() + offsetSuffix(s.offset)
}
