package timing

import (
	"math"
	"time"
)

// Time is an instant in document time, in nanoseconds since document begin.
type Time int64

// Sentinel instants.
const (
	// Indefinite is later than every definite instant.
	Indefinite Time = math.MaxInt64

	// Unresolved sorts after Indefinite; it has no known value yet.
	Unresolved Time = math.MinInt64
)

// FromDuration converts an offset from document begin into a Time.
func FromDuration(d time.Duration) Time {
	return Time(d)
}

// Duration returns the instant as an offset from document begin.
// Sentinels convert to their raw value.
func (t Time) Duration() time.Duration {
	return time.Duration(t)
}

// IsResolved reports whether t has a value (definite or indefinite).
func (t Time) IsResolved() bool {
	return t != Unresolved
}

// IsIndefinite reports whether t is the indefinite sentinel.
func (t Time) IsIndefinite() bool {
	return t == Indefinite
}

// IsDefinite reports whether t is a concrete instant.
func (t Time) IsDefinite() bool {
	return t != Indefinite && t != Unresolved
}

// Latest and Earliest bound the definite instants.
const (
	Latest   Time = Indefinite - 1
	Earliest Time = Unresolved + 1
)

// Add offsets a definite instant, saturating at Latest and Earliest so the
// result never becomes a sentinel. Sentinels are returned unchanged.
func (t Time) Add(d time.Duration) Time {
	if !t.IsDefinite() {
		return t
	}
	switch {
	case d > 0 && t > Latest-Time(d):
		return Latest
	case d < 0 && t < Earliest-Time(d):
		return Earliest
	}
	return t + Time(d)
}

// rank orders definite < indefinite < unresolved.
func (t Time) rank() int {
	switch t {
	case Indefinite:
		return 1
	case Unresolved:
		return 2
	default:
		return 0
	}
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after u. Definite instants sort before Indefinite, which sorts before
// Unresolved.
func (t Time) Compare(u Time) int {
	if rt, ru := t.rank(), u.rank(); rt != ru {
		if rt < ru {
			return -1
		}
		return 1
	}
	switch {
	case t < u:
		return -1
	case t > u:
		return 1
	default:
		return 0
	}
}

// Before reports whether t sorts strictly before u.
func (t Time) Before(u Time) bool {
	return t.Compare(u) < 0
}

// Min returns the earlier of t and u.
func Min(t, u Time) Time {
	if u.Before(t) {
		return u
	}
	return t
}

// String returns "indefinite", "unresolved" or the offset from document
// begin (e.g. "2.5s").
func (t Time) String() string {
	switch t {
	case Indefinite:
		return "indefinite"
	case Unresolved:
		return "unresolved"
	default:
		return time.Duration(t).String()
	}
}

// Direction selects the begin or end list of a timed element.
type Direction uint8

const (
	// Begin selects the begin instance list.
	Begin Direction = iota

	// End selects the end instance list.
	End
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Begin:
		return "begin"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// ElementID is a handle to a timed element inside its document arena.
type ElementID int

// NoElement never refers to an element.
const NoElement ElementID = -1
