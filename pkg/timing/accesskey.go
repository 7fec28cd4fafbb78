package timing

import "time"

// Accesskey produces one fixed instant per press of a key
// ("accessKey(a)+1s").
type Accesskey struct {
	base
	key    rune
	offset time.Duration

	sub       Subscription
	instances []*InstanceTime
}

// NewAccesskey creates an access key specifier.
func NewAccesskey(owner Owner, dir Direction, key rune, offset time.Duration) (*Accesskey, error) {
	if owner == nil {
		return nil, malformed("accesskey", "no owner")
	}
	if key == 0 {
		return nil, malformed("accesskey", "no key")
	}
	return &Accesskey{base: base{owner: owner, dir: dir}, key: key, offset: offset}, nil
}

// Key returns the access key.
func (s *Accesskey) Key() rune {
	return s.key
}

func (s *Accesskey) Initialize() {
	if s.initialized {
		return
	}
	s.initialized = true
	s.sub = s.env().ListenKey(s.key, s.handleKey)
}

func (s *Accesskey) Deinitialize() {
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

func (s *Accesskey) handleKey(t Time) {
	if !s.initialized {
		return
	}
	it := NewInstanceTime(s, t.Add(s.offset), true, true)
	s.instances = append(s.instances, it)
	s.add(it)
}

func (s *Accesskey) NewInterval(*Interval) {}

func (s *Accesskey) RemoveInterval(*Interval) {}

func (s *Accesskey) HandleTimebaseUpdate(*InstanceTime, Time) {}

func (s *Accesskey) HandleRepeat(int, Time) {}

func (s *Accesskey) Freeze() {}

func (s *Accesskey) Thaw() {}

func (s *Accesskey) String() string {
	return "accessKey(" + string(s.key) + ")" + offsetSuffix(s.offset)
}
