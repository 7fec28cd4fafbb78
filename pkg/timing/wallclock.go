package timing

import "time"

// Wallclock produces one fixed instant when an absolute date and time is
// reached ("wallclock(2026-10-19T12:00:00Z)").
type Wallclock struct {
	base
	at time.Time

	sub      Subscription
	instance *InstanceTime
}

// NewWallclock creates a wallclock specifier.
func NewWallclock(owner Owner, dir Direction, at time.Time) (*Wallclock, error) {
	if owner == nil {
		return nil, malformed("wallclock", "no owner")
	}
	if at.IsZero() {
		return nil, malformed("wallclock", "zero instant")
	}
	return &Wallclock{base: base{owner: owner, dir: dir}, at: at}, nil
}

// At returns the configured wallclock instant.
func (s *Wallclock) At() time.Time {
	return s.at
}

// Reconfigure moves the alarm to at. An instant produced for the previous
// configuration is withdrawn.
func (s *Wallclock) Reconfigure(at time.Time) error {
	if at.IsZero() {
		return malformed("wallclock", "zero instant")
	}
	if !s.initialized {
		s.at = at
		return nil
	}
	s.Deinitialize()
	s.at = at
	s.Initialize()
	return nil
}

func (s *Wallclock) Initialize() {
	if s.initialized {
		return
	}
	s.initialized = true
	s.sub = s.env().ScheduleAt(s.at, s.fire)
}

func (s *Wallclock) Deinitialize() {
	if !s.initialized {
		return
	}
	s.initialized = false
	if s.sub != nil {
		s.sub.Cancel()
		s.sub = nil
	}
	it := s.instance
	s.instance = nil
	s.removeAll(it)
}

func (s *Wallclock) fire(t Time) {
	if !s.initialized || s.instance != nil {
		return
	}
	s.sub = nil
	s.instance = NewInstanceTime(s, t, true, false)
	s.add(s.instance)
}

func (s *Wallclock) NewInterval(*Interval) {}

func (s *Wallclock) RemoveInterval(*Interval) {}

func (s *Wallclock) HandleTimebaseUpdate(*InstanceTime, Time) {}

func (s *Wallclock) HandleRepeat(int, Time) {}

func (s *Wallclock) Freeze() {}

func (s *Wallclock) Thaw() {}

func (s *Wallclock) String() string {
	return "wallclock(" + s.at.UTC().Format(time.RFC3339) + ")"
}
