// Package timegraph holds the timed elements of one document and drives
// instance-time propagation between them.
//
// # Arena and Handles
//
// Elements live in an arena owned by the Graph and are addressed by
// timing.ElementID handles. Specifiers refer to their timebase by handle, so
// elements may reference each other in cycles without ownership ambiguity.
//
// # Dependency Registry
//
// Every element has an ordered set of dependent specifiers (Syncbase and
// Repeat specifiers that resolved it as their timebase). Interval lifecycle
// events of the element are delivered to each registered dependent once.
// Registering while the timebase has a live interval replays NewInterval to
// the new dependent.
//
// # Propagation Passes
//
// Every external stimulus (Initialize, Attach, Detach, Reset, DispatchEvent,
// KeyPress, NotifyRepeat, AdvanceWallclock) runs as one propagation pass.
// Notifications are queued and processed first-in first-out, so long
// dependency chains never grow the stack. A stimulus raised while a pass is
// running joins that pass.
//
// Each element recompute publishes its interval changes as one delivery.
// Within a pass a specifier accepts a single delivery; a second one means the
// cascade came back around a cycle. It is suppressed, the specifier's
// instants are frozen at their last value and a
// *timing.CyclicDependencyError is reported to the owner. The rest of the
// document keeps propagating.
//
// # Reference Element
//
// Element implements timing.Owner with a deliberately simple resolver: one
// current interval, beginning at the earliest definite begin instant and
// ending at the earlier of begin plus the simple duration and the first end
// instant after begin. Restart, repeat and accelerate semantics belong to a
// full SMIL engine and are not modelled.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Hosts serialize stimulus calls.
package timegraph
