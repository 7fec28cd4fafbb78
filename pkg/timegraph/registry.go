package timegraph

import "github.com/smil-anim/timing-go/pkg/timing"

// registry maps each timebase element to its dependent specifiers, in
// registration order.
type registry struct {
	dependents map[timing.ElementID][]timing.Specifier
}

func newRegistry() *registry {
	return &registry{
		dependents: make(map[timing.ElementID][]timing.Specifier),
	}
}

// add registers s as a dependent of timebase. It reports false if s was
// already registered.
func (r *registry) add(timebase timing.ElementID, s timing.Specifier) bool {
	if r.contains(timebase, s) {
		return false
	}
	r.dependents[timebase] = append(r.dependents[timebase], s)
	return true
}

// remove unregisters s and reports whether it was registered.
func (r *registry) remove(timebase timing.ElementID, s timing.Specifier) bool {
	deps := r.dependents[timebase]
	for i, d := range deps {
		if d == s {
			r.dependents[timebase] = append(deps[:i], deps[i+1:]...)
			if len(r.dependents[timebase]) == 0 {
				delete(r.dependents, timebase)
			}
			return true
		}
	}
	return false
}

func (r *registry) contains(timebase timing.ElementID, s timing.Specifier) bool {
	for _, d := range r.dependents[timebase] {
		if d == s {
			return true
		}
	}
	return false
}

// list returns a snapshot of the dependents of timebase.
func (r *registry) list(timebase timing.ElementID) []timing.Specifier {
	deps := r.dependents[timebase]
	out := make([]timing.Specifier, len(deps))
	copy(out, deps)
	return out
}

// count returns the total number of registrations.
func (r *registry) count() int {
	n := 0
	for _, deps := range r.dependents {
		n += len(deps)
	}
	return n
}
