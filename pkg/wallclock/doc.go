// Package wallclock schedules alarms at absolute wallclock instants.
//
// Wallclock timing ("wallclock(2026-10-19T12:00:00Z)") begins or ends an
// element when a real-world date and time is reached. The Scheduler keeps
// the pending alarms; it never starts goroutines or OS timers. The host's
// sampling loop calls FireDue with the current wallclock time, and due alarms
// run synchronously on that call, in deadline order.
//
// # Alarm Lifecycle
//
// An alarm fires at most once. Cancel removes a pending alarm without firing
// it; cancelling an alarm that already fired returns ErrAlarmNotFound.
//
// # Ordering
//
// Alarms due on the same FireDue call run in deadline order. Alarms with the
// same deadline run in the order they were scheduled.
//
// # Clocks
//
// Clock abstracts the time source. RealClock reads the system clock;
// MockClock is set and advanced manually for deterministic tests.
package wallclock
