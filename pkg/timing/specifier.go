package timing

import "time"

// Owner is the timed element a specifier feeds.
type Owner interface {
	// ID returns the element's document id.
	ID() string

	// Instances returns the begin or end instance list.
	Instances(dir Direction) *InstanceList

	// InstanceListChanged tells the owner that a list was mutated so it can
	// recompute its intervals.
	InstanceListChanged(dir Direction)

	// ResolveTimebase looks up an attached element by id.
	ResolveTimebase(ref string) (ElementID, bool)

	// ReportError surfaces a non-fatal timing problem for diagnostics.
	ReportError(err error)

	// Environment returns the document services the specifier attaches to.
	Environment() Environment
}

// Subscription is a cancellable listener or alarm registration.
type Subscription interface {
	Cancel()
}

// Environment is the set of document services specifiers attach to.
type Environment interface {
	// RegisterDependent adds d to the timebase's dependency registry.
	RegisterDependent(timebase ElementID, d Specifier)

	// UnregisterDependent removes d from the timebase's registry.
	UnregisterDependent(timebase ElementID, d Specifier)

	// ListenEvent calls fn with the document time of every occurrence of
	// the named event on target.
	ListenEvent(target, name string, fn func(Time)) Subscription

	// ListenKey calls fn with the document time of every press of key.
	ListenKey(key rune, fn func(Time)) Subscription

	// ScheduleAt calls fn once with the document time of the wallclock
	// instant at, when it is reached.
	ScheduleAt(at time.Time, fn func(Time)) Subscription
}

// Specifier produces and maintains instance times for one owner and one
// direction.
type Specifier interface {
	// Owner returns the element whose list the specifier feeds.
	Owner() Owner

	// Direction returns which list (begin or end) the specifier feeds.
	Direction() Direction

	// Initialize sets the specifier up. It is idempotent.
	Initialize()

	// Deinitialize removes every contributed instant and every registration.
	// It is a no-op on an uninitialized specifier.
	Deinitialize()

	// Initialized reports whether the specifier is currently initialized.
	Initialized() bool

	// NewInterval is called when the timebase creates an interval.
	NewInterval(iv *Interval)

	// RemoveInterval is called when the timebase removes an interval.
	RemoveInterval(iv *Interval)

	// HandleTimebaseUpdate is called when the timebase instant an instance
	// time was derived from has moved to newTime.
	HandleTimebaseUpdate(it *InstanceTime, newTime Time)

	// HandleRepeat is called when the timebase starts a repeat iteration.
	HandleRepeat(iteration int, t Time)

	// Freeze pins every live instant to its current value.
	Freeze()

	// Thaw makes frozen instants revisable again.
	Thaw()

	// String describes the specifier in timing-attribute form.
	String() string
}

// base holds what every variant shares.
type base struct {
	owner       Owner
	dir         Direction
	initialized bool
}

func (b *base) Owner() Owner {
	return b.owner
}

func (b *base) Direction() Direction {
	return b.dir
}

func (b *base) Initialized() bool {
	return b.initialized
}

func (b *base) env() Environment {
	return b.owner.Environment()
}

func (b *base) list() *InstanceList {
	return b.owner.Instances(b.dir)
}

// add inserts it and signals the owner.
func (b *base) add(it *InstanceTime) {
	b.list().Insert(it)
	b.owner.InstanceListChanged(b.dir)
}

// removeAll removes the given instants and signals the owner once if any of
// them was still listed.
func (b *base) removeAll(its ...*InstanceTime) {
	changed := false
	for _, it := range its {
		if it != nil && b.list().Remove(it) {
			changed = true
		}
	}
	if changed {
		b.owner.InstanceListChanged(b.dir)
	}
}

func offsetSuffix(d time.Duration) string {
	switch {
	case d > 0:
		return "+" + d.String()
	case d < 0:
		return d.String()
	default:
		return ""
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Specifier = (*Offset)(nil)
	_ Specifier = (*IndefiniteSpec)(nil)
	_ Specifier = (*Syncbase)(nil)
	_ Specifier = (*Event)(nil)
	_ Specifier = (*Repeat)(nil)
	_ Specifier = (*Accesskey)(nil)
	_ Specifier = (*Wallclock)(nil)
)
