package timing

// IndefiniteSpec produces the indefinite sentinel.
type IndefiniteSpec struct {
	base
	instance *InstanceTime
}

// NewIndefinite creates an "indefinite" specifier.
func NewIndefinite(owner Owner, dir Direction) (*IndefiniteSpec, error) {
	if owner == nil {
		return nil, malformed("indefinite", "no owner")
	}
	return &IndefiniteSpec{base: base{owner: owner, dir: dir}}, nil
}

func (s *IndefiniteSpec) Initialize() {
	if s.initialized {
		return
	}
	s.initialized = true
	s.instance = NewInstanceTime(s, Indefinite, true, false)
	s.add(s.instance)
}

func (s *IndefiniteSpec) Deinitialize() {
	if !s.initialized {
		return
	}
	s.initialized = false
	it := s.instance
	s.instance = nil
	s.removeAll(it)
}

func (s *IndefiniteSpec) NewInterval(*Interval) {}

func (s *IndefiniteSpec) RemoveInterval(*Interval) {}

func (s *IndefiniteSpec) HandleTimebaseUpdate(*InstanceTime, Time) {}

func (s *IndefiniteSpec) HandleRepeat(int, Time) {}

func (s *IndefiniteSpec) Freeze() {}

func (s *IndefiniteSpec) Thaw() {}

func (s *IndefiniteSpec) String() string {
	return "indefinite"
}
