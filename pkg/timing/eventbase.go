package timing

import "time"

// Event produces one fixed instant per occurrence of a named event on a
// target ("button1.click+1s"). An empty target means the owner itself.
type Event struct {
	base
	target string
	name   string
	offset time.Duration

	sub       Subscription
	instances []*InstanceTime
}

// NewEvent creates an event specifier.
func NewEvent(owner Owner, dir Direction, target, name string, offset time.Duration) (*Event, error) {
	if owner == nil {
		return nil, malformed("event", "no owner")
	}
	if name == "" {
		return nil, malformed("event", "empty event name")
	}
	return &Event{base: base{owner: owner, dir: dir}, target: target, name: name, offset: offset}, nil
}

// Target returns the event target id, defaulting to the owner.
func (s *Event) Target() string {
	if s.target == "" {
		return s.owner.ID()
	}
	return s.target
}

// Name returns the event name.
func (s *Event) Name() string {
	return s.name
}

func (s *Event) Initialize() {
	if s.initialized {
		return
	}
	s.initialized = true
	s.sub = s.env().ListenEvent(s.Target(), s.name, s.handleEvent)
}

func (s *Event) Deinitialize() {
	if !s.initialized {
		return
	}
	s.initialized = false
	if s.sub != nil {
		s.sub.Cancel()
		s.sub = nil
	}
	its := s.instances
	s.instances = nil
	s.removeAll(its...)
}

func (s *Event) handleEvent(t Time) {
	if !s.initialized {
		return
	}
	it := NewInstanceTime(s, t.Add(s.offset), true, true)
	s.instances = append(s.instances, it)
	s.add(it)
}

func (s *Event) NewInterval(*Interval) {}

func (s *Event) RemoveInterval(*Interval) {}

func (s *Event) HandleTimebaseUpdate(*InstanceTime, Time) {}

func (s *Event) HandleRepeat(int, Time) {}

func (s *Event) Freeze() {}

func (s *Event) Thaw() {}

func (s *Event) String() string {
	return s.Target() + "." + s.name + offsetSuffix(s.offset)
}
