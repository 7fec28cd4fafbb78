package log

// Logger receives trace events. It is called synchronously from inside
// propagation passes, so implementations must not call back into the graph.
type Logger interface {
	Log(event Event)
}

// NoopLogger discards every event. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Tee returns a Logger that forwards each event to every non-nil sink in
// order. With no sinks it returns NoopLogger; with one, that sink.
func Tee(sinks ...Logger) Logger {
	var out tee
	for _, l := range sinks {
		if l != nil {
			out = append(out, l)
		}
	}
	switch len(out) {
	case 0:
		return NoopLogger{}
	case 1:
		return out[0]
	default:
		return out
	}
}

type tee []Logger

func (t tee) Log(event Event) {
	for _, l := range t {
		l.Log(event)
	}
}

// Filtered returns a Logger that forwards only the events f matches.
func Filtered(next Logger, f Filter) Logger {
	return &filtered{next: next, filter: f}
}

type filtered struct {
	next   Logger
	filter Filter
}

func (l *filtered) Log(event Event) {
	if l.filter.Matches(event) {
		l.next.Log(event)
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Logger = NoopLogger{}
	_ Logger = tee(nil)
	_ Logger = (*filtered)(nil)
)
