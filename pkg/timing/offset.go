package timing

import "time"

// Offset produces one fixed instant at document time zero plus an offset.
type Offset struct {
	base
	offset   time.Duration
	instance *InstanceTime
}

// NewOffset creates an offset specifier ("5s", "-1s").
func NewOffset(owner Owner, dir Direction, offset time.Duration) (*Offset, error) {
	if owner == nil {
		return nil, malformed("offset", "no owner")
	}
	return &Offset{base: base{owner: owner, dir: dir}, offset: offset}, nil
}

// Value returns the configured offset.
func (s *Offset) Value() time.Duration {
	return s.offset
}

func (s *Offset) Initialize() {
	if s.initialized {
		return
	}
	s.initialized = true
	s.instance = NewInstanceTime(s, FromDuration(s.offset), true, false)
	s.add(s.instance)
}

func (s *Offset) Deinitialize() {
	if !s.initialized {
		return
	}
	s.initialized = false
	it := s.instance
	s.instance = nil
	s.removeAll(it)
}

func (s *Offset) NewInterval(*Interval) {}

func (s *Offset) RemoveInterval(*Interval) {}

func (s *Offset) HandleTimebaseUpdate(*InstanceTime, Time) {}

func (s *Offset) HandleRepeat(int, Time) {}

func (s *Offset) Freeze() {}

func (s *Offset) Thaw() {}

func (s *Offset) String() string {
	return s.offset.String()
}
