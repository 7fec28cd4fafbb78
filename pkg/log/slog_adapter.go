package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see cascades in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("pass", shortID(event.PassID)),
		slog.String("category", event.Category.String()),
	}

	if event.Element != "" {
		attrs = append(attrs, slog.String("element", event.Element))
	}
	if event.Specifier != "" {
		attrs = append(attrs, slog.String("specifier", event.Specifier))
	}

	switch {
	case event.Pass != nil:
		attrs = append(attrs, slog.String("phase", event.Pass.Phase.String()))
		if event.Pass.Phase == PassEnd {
			attrs = append(attrs,
				slog.Int("notifications", event.Pass.Notifications),
				slog.Int("suppressed", event.Pass.Suppressed),
			)
		}
	case event.Stimulus != nil:
		attrs = append(attrs, slog.String("stimulus", event.Stimulus.Kind.String()))
		if event.Stimulus.Target != "" {
			attrs = append(attrs, slog.String("target", event.Stimulus.Target))
		}
		if event.Stimulus.Name != "" {
			attrs = append(attrs, slog.String("name", event.Stimulus.Name))
		}
		if event.Stimulus.Kind == StimulusRepeat {
			attrs = append(attrs, slog.Int("iteration", event.Stimulus.Iteration))
		}
		attrs = append(attrs, slog.String("at", event.Stimulus.At.String()))
	case event.Notification != nil:
		attrs = append(attrs,
			slog.String("kind", event.Notification.Kind.String()),
			slog.Uint64("delivery", event.Notification.Delivery),
			slog.String("source", event.Notification.Source),
		)
		if event.Notification.IntervalSeq != 0 {
			attrs = append(attrs, slog.Uint64("interval", event.Notification.IntervalSeq))
		}
		if event.Notification.Suppressed {
			attrs = append(attrs, slog.Bool("suppressed", true))
		}
	case event.Interval != nil:
		attrs = append(attrs,
			slog.String("change", event.Interval.Change.String()),
			slog.Uint64("seq", event.Interval.Seq),
			slog.String("begin", event.Interval.Begin.String()),
			slog.String("end", event.Interval.End.String()),
		)
	case event.Instances != nil:
		times := make([]string, len(event.Instances.Times))
		for i, t := range event.Instances.Times {
			times[i] = t.String()
		}
		attrs = append(attrs,
			slog.String("list", event.Instances.Direction.String()),
			slog.Any("times", times),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_kind", event.Error.Kind.String()),
			slog.String("error_msg", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "timing", attrs...)
}

// shortID returns the first 8 characters of a pass ID.
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
