package timing_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/smil-anim/timing-go/pkg/timing"
)

// ---------------------------------------------------------------------------
// fakeOwner
// ---------------------------------------------------------------------------

type fakeOwner struct {
	id      string
	env     timing.Environment
	refs    map[string]timing.ElementID
	begin   timing.InstanceList
	end     timing.InstanceList
	changes map[timing.Direction]int
	errs    []error
}

func newFakeOwner(id string, env timing.Environment) *fakeOwner {
	return &fakeOwner{
		id:      id,
		env:     env,
		refs:    make(map[string]timing.ElementID),
		changes: make(map[timing.Direction]int),
	}
}

func (o *fakeOwner) ID() string { return o.id }

func (o *fakeOwner) Instances(dir timing.Direction) *timing.InstanceList {
	if dir == timing.End {
		return &o.end
	}
	return &o.begin
}

func (o *fakeOwner) InstanceListChanged(dir timing.Direction) { o.changes[dir]++ }

func (o *fakeOwner) ResolveTimebase(ref string) (timing.ElementID, bool) {
	h, ok := o.refs[ref]
	return h, ok
}

func (o *fakeOwner) ReportError(err error) { o.errs = append(o.errs, err) }

func (o *fakeOwner) Environment() timing.Environment { return o.env }

// ---------------------------------------------------------------------------
// stubEnvironment
// ---------------------------------------------------------------------------

// stubEnvironment records calls and keeps the listener callbacks so tests can
// fire them.
type stubEnvironment struct {
	mock.Mock

	events map[string]func(timing.Time)
	keys   map[rune]func(timing.Time)
	alarms map[time.Time]func(timing.Time)
}

func newStubEnvironment() *stubEnvironment {
	return &stubEnvironment{
		events: make(map[string]func(timing.Time)),
		keys:   make(map[rune]func(timing.Time)),
		alarms: make(map[time.Time]func(timing.Time)),
	}
}

func (e *stubEnvironment) RegisterDependent(tb timing.ElementID, d timing.Specifier) {
	e.Called(tb, d)
}

func (e *stubEnvironment) UnregisterDependent(tb timing.ElementID, d timing.Specifier) {
	e.Called(tb, d)
}

func (e *stubEnvironment) ListenEvent(target, name string, fn func(timing.Time)) timing.Subscription {
	e.events[target+"."+name] = fn
	return e.Called(target, name).Get(0).(timing.Subscription)
}

func (e *stubEnvironment) ListenKey(key rune, fn func(timing.Time)) timing.Subscription {
	e.keys[key] = fn
	return e.Called(key).Get(0).(timing.Subscription)
}

func (e *stubEnvironment) ScheduleAt(at time.Time, fn func(timing.Time)) timing.Subscription {
	e.alarms[at] = fn
	return e.Called(at).Get(0).(timing.Subscription)
}

type stubSubscription struct{ mock.Mock }

func (s *stubSubscription) Cancel() { s.Called() }

func newStubSubscription() *stubSubscription {
	sub := &stubSubscription{}
	sub.On("Cancel").Return()
	return sub
}

func seconds(n float64) timing.Time {
	return timing.FromDuration(time.Duration(n * float64(time.Second)))
}
