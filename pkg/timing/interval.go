package timing

import "fmt"

// Interval is a realized activation window of a timed element.
//
// The owning element creates and revises intervals. Instants derived from an
// interval's begin or end are recorded as its dependents so that a revision
// of that edge can be pushed to them.
type Interval struct {
	begin Time
	end   Time
	seq   uint64

	beginDependents []*InstanceTime
	endDependents   []*InstanceTime
}

// NewInterval creates an interval [begin, end) with the given sequence number.
func NewInterval(begin, end Time, seq uint64) *Interval {
	return &Interval{begin: begin, end: end, seq: seq}
}

// Begin returns the begin instant.
func (iv *Interval) Begin() Time {
	return iv.begin
}

// End returns the end instant (possibly Unresolved or Indefinite).
func (iv *Interval) End() Time {
	return iv.end
}

// Seq returns the interval's sequence number.
func (iv *Interval) Seq() uint64 {
	return iv.seq
}

// Edge returns the begin or end instant.
func (iv *Interval) Edge(edge Direction) Time {
	if edge == End {
		return iv.end
	}
	return iv.begin
}

// SetBegin revises the begin instant and reports whether it changed.
// Propagating the change to dependents is the caller's job.
func (iv *Interval) SetBegin(t Time) bool {
	if iv.begin == t {
		return false
	}
	iv.begin = t
	return true
}

// SetEnd revises the end instant and reports whether it changed.
func (iv *Interval) SetEnd(t Time) bool {
	if iv.end == t {
		return false
	}
	iv.end = t
	return true
}

// AddDependent records an instant derived from the given edge. Recording
// the same instant twice is a no-op.
func (iv *Interval) AddDependent(it *InstanceTime, edge Direction) {
	deps := &iv.beginDependents
	if edge == End {
		deps = &iv.endDependents
	}
	for _, d := range *deps {
		if d == it {
			return
		}
	}
	*deps = append(*deps, it)
}

// RemoveDependent forgets an instant derived from the given edge.
func (iv *Interval) RemoveDependent(it *InstanceTime, edge Direction) {
	deps := &iv.beginDependents
	if edge == End {
		deps = &iv.endDependents
	}
	for i, d := range *deps {
		if d == it {
			*deps = append((*deps)[:i], (*deps)[i+1:]...)
			return
		}
	}
}

// Dependents returns a copy of the instants derived from the given edge.
func (iv *Interval) Dependents(edge Direction) []*InstanceTime {
	src := iv.beginDependents
	if edge == End {
		src = iv.endDependents
	}
	out := make([]*InstanceTime, len(src))
	copy(out, src)
	return out
}

// String returns "#seq[begin, end)".
func (iv *Interval) String() string {
	return fmt.Sprintf("#%d[%s, %s)", iv.seq, iv.begin, iv.end)
}
