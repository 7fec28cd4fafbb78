package wallclock

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// Scheduler errors.
var (
	ErrAlarmNotFound = errors.New("alarm not found")
)

// AlarmID identifies a scheduled alarm.
type AlarmID uint64

// Alarm represents a pending alarm.
type Alarm struct {
	// ID identifies this alarm
	ID AlarmID

	// At is the wallclock instant the alarm fires at
	At time.Time

	// ScheduledAt is when the alarm was scheduled (from the scheduler clock)
	ScheduledAt time.Time

	// fn is called with At when the alarm fires
	fn func(at time.Time)
}

// Scheduler manages wallclock alarms.
type Scheduler struct {
	mu sync.Mutex

	clock Clock

	// Pending alarms by ID
	alarms map[AlarmID]*Alarm

	// nextID is the ID of the next scheduled alarm; IDs also order ties.
	nextID AlarmID
}

// NewScheduler creates a new alarm scheduler reading time from clock.
// A nil clock uses the system clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{
		clock:  clock,
		alarms: make(map[AlarmID]*Alarm),
		nextID: 1,
	}
}

// Schedule registers fn to run once at the wallclock instant at.
// An instant already in the past fires on the next FireDue call.
func (s *Scheduler) Schedule(at time.Time, fn func(at time.Time)) AlarmID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.alarms[id] = &Alarm{
		ID:          id,
		At:          at,
		ScheduledAt: s.clock.Now(),
		fn:          fn,
	}
	return id
}

// Cancel removes a pending alarm without firing it.
func (s *Scheduler) Cancel(id AlarmID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.alarms[id]; !exists {
		return ErrAlarmNotFound
	}
	delete(s.alarms, id)
	return nil
}

// CancelAll removes every pending alarm.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alarms = make(map[AlarmID]*Alarm)
}

// Get returns a copy of a pending alarm, or nil.
func (s *Scheduler) Get(id AlarmID) *Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, exists := s.alarms[id]; exists {
		return &Alarm{ID: a.ID, At: a.At, ScheduledAt: a.ScheduledAt}
	}
	return nil
}

// Count returns the number of pending alarms.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alarms)
}

// NextDeadline returns the earliest pending deadline.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next time.Time
	found := false
	for _, a := range s.alarms {
		if !found || a.At.Before(next) {
			next = a.At
			found = true
		}
	}
	return next, found
}

// FireDue runs every alarm whose deadline is at or before now and returns
// how many fired. Callbacks run outside the lock and may schedule or cancel
// alarms; alarms scheduled by a callback wait for the next call.
func (s *Scheduler) FireDue(now time.Time) int {
	s.mu.Lock()
	var due []*Alarm
	for id, a := range s.alarms {
		if !a.At.After(now) {
			due = append(due, a)
			delete(s.alarms, id)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if !due[i].At.Equal(due[j].At) {
			return due[i].At.Before(due[j].At)
		}
		return due[i].ID < due[j].ID
	})

	for _, a := range due {
		if a.fn != nil {
			a.fn(a.At)
		}
	}
	return len(due)
}

// Tick fires the alarms due at the scheduler clock's current time.
func (s *Scheduler) Tick() int {
	return s.FireDue(s.clock.Now())
}
