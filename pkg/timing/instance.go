package timing

// InstanceTime is one candidate begin or end instant.
//
// The pointer is the instant's identity: list membership, interval
// dependents and removal all compare pointers, so a revised instant stays
// the same InstanceTime.
type InstanceTime struct {
	time         Time
	fixed        bool
	frozen       bool
	clearOnReset bool
	creator      Specifier

	// order is assigned on first insertion into an InstanceList and breaks
	// ties between equal values.
	order   uint64
	ordered bool
}

// NewInstanceTime creates an instant produced by creator. A fixed instant
// ignores every later revision.
func NewInstanceTime(creator Specifier, t Time, fixed, clearOnReset bool) *InstanceTime {
	return &InstanceTime{
		time:         t,
		fixed:        fixed,
		clearOnReset: clearOnReset,
		creator:      creator,
	}
}

// Time returns the current value.
func (it *InstanceTime) Time() Time {
	return it.time
}

// IsFixed reports whether the value can currently not be revised, either
// because it was created fixed or because it is frozen.
func (it *InstanceTime) IsFixed() bool {
	return it.fixed || it.frozen
}

// ClearOnReset reports whether the owner's reset removes this instant.
func (it *InstanceTime) ClearOnReset() bool {
	return it.clearOnReset
}

// Creator returns the specifier that produced the instant (nil for instants
// inserted directly by the owner).
func (it *InstanceTime) Creator() Specifier {
	return it.creator
}

// setTime revises a non-fixed instant. It reports whether the value changed.
func (it *InstanceTime) setTime(t Time) bool {
	if it.IsFixed() || it.time == t {
		return false
	}
	it.time = t
	return true
}

// freeze pins the current value until thaw.
func (it *InstanceTime) freeze() {
	it.frozen = true
}

// thaw lifts a freeze. Instants created fixed stay fixed.
func (it *InstanceTime) thaw() {
	it.frozen = false
}

// String returns the value with a marker for revisable instants.
func (it *InstanceTime) String() string {
	if it.IsFixed() {
		return it.time.String()
	}
	return it.time.String() + "~"
}

// InstanceList is an owner's begin or end list, sorted by value. Equal values
// keep their insertion order.
type InstanceList struct {
	items []*InstanceTime
	next  uint64
}

// Len returns the number of instants.
func (l *InstanceList) Len() int {
	return len(l.items)
}

// At returns the i-th instant in sorted order.
func (l *InstanceList) At(i int) *InstanceTime {
	return l.items[i]
}

// Items returns a copy of the sorted instants.
func (l *InstanceList) Items() []*InstanceTime {
	out := make([]*InstanceTime, len(l.items))
	copy(out, l.items)
	return out
}

// Times returns the sorted values.
func (l *InstanceList) Times() []Time {
	out := make([]Time, len(l.items))
	for i, it := range l.items {
		out[i] = it.time
	}
	return out
}

// Contains reports whether it is in the list.
func (l *InstanceList) Contains(it *InstanceTime) bool {
	return l.index(it) >= 0
}

// Insert adds it at its sorted position. Inserting an instant that is
// already present is a no-op.
func (l *InstanceList) Insert(it *InstanceTime) {
	if l.Contains(it) {
		return
	}
	if !it.ordered {
		it.order = l.next
		l.next++
		it.ordered = true
	}
	l.place(it)
}

// Remove deletes it from the list and reports whether it was present.
func (l *InstanceList) Remove(it *InstanceTime) bool {
	i := l.index(it)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Reposition restores the sort order after it was revised in place.
func (l *InstanceList) Reposition(it *InstanceTime) {
	if l.Remove(it) {
		l.place(it)
	}
}

// ClearResettable removes every clear-on-reset instant and returns them.
func (l *InstanceList) ClearResettable() []*InstanceTime {
	var removed []*InstanceTime
	kept := l.items[:0]
	for _, it := range l.items {
		if it.clearOnReset {
			removed = append(removed, it)
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = nil
	}
	l.items = kept
	return removed
}

// FirstDefinite returns the earliest definite instant, or nil.
func (l *InstanceList) FirstDefinite() *InstanceTime {
	// Sentinels sort last.
	if len(l.items) > 0 && l.items[0].time.IsDefinite() {
		return l.items[0]
	}
	return nil
}

// FirstAfter returns the earliest instant strictly after t, or nil.
func (l *InstanceList) FirstAfter(t Time) *InstanceTime {
	for _, it := range l.items {
		if t.Before(it.time) {
			return it
		}
	}
	return nil
}

func (l *InstanceList) index(it *InstanceTime) int {
	for i, x := range l.items {
		if x == it {
			return i
		}
	}
	return -1
}

// place inserts it after every item that sorts before or ties with it.
func (l *InstanceList) place(it *InstanceTime) {
	i := len(l.items)
	for j, x := range l.items {
		c := it.time.Compare(x.time)
		if c < 0 || (c == 0 && it.order < x.order) {
			i = j
			break
		}
	}
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = it
}
