// Package timing implements SMIL timing specifiers and the instance times
// they produce.
//
// A timed element's begin and end attributes are lists of timing specifiers.
// Each specifier feeds candidate instants (instance times) into its owner's
// begin or end list. The owner derives its active interval from those lists;
// this package does not resolve intervals itself.
//
// # Specifier Variants
//
//   - Offset: a fixed instant relative to document time zero
//   - Indefinite: the "indefinite" sentinel
//   - Syncbase: the begin or end of another element's interval plus an offset
//   - Event: an event occurrence on a target plus an offset
//   - Repeat: a repeat iteration of another element plus an offset
//   - Accesskey: a key press plus an offset
//   - Wallclock: an absolute date and time
//
// # Fixed and Revisable Instants
//
// Offset, Indefinite, Event, Repeat, Accesskey and Wallclock instants are
// fixed: once created their value never changes, and event-like variants
// accumulate one instant per occurrence. Syncbase instants track a live
// interval of their timebase and are revised in place through
// HandleTimebaseUpdate when that interval moves.
//
// # Environment
//
// Specifiers never hold pointers to other elements. They resolve timebase
// references to ElementID handles through their Owner and attach to
// document services (dependency registry, event and key listeners, wallclock
// alarms) through the Owner's Environment.
package timing
