// Package commands implements the timing-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/smil-anim/timing-go/pkg/log"
	"github.com/smil-anim/timing-go/pkg/timing"
)

// FilterOptions holds the event selection flags shared by view, export and filter.
type FilterOptions struct {
	PassID    string
	Element   string
	Category  string
	TimeStart string
	TimeEnd   string
}

// Build converts the options into a log.Filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{
		PassID:  o.PassID,
		Element: o.Element,
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339Nano, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339Nano, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [pass:id] CATEGORY element specifier
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [pass:%s] %s", ts, shortenPassID(event.PassID), event.Category)
	if event.Element != "" {
		fmt.Fprintf(w, " %s", event.Element)
	}
	if event.Specifier != "" {
		fmt.Fprintf(w, " %s", event.Specifier)
	}
	fmt.Fprintln(w)

	switch {
	case event.Pass != nil:
		formatPassDetails(w, event.Pass)
	case event.Stimulus != nil:
		formatStimulusDetails(w, event.Stimulus)
	case event.Notification != nil:
		formatNotificationDetails(w, event.Notification)
	case event.Interval != nil:
		iv := event.Interval
		fmt.Fprintf(w, "  %s #%d [%s, %s)\n", iv.Change, iv.Seq, iv.Begin, iv.End)
	case event.Instances != nil:
		fmt.Fprintf(w, "  %s: %s\n", event.Instances.Direction, formatTimes(event.Instances.Times))
	case event.Error != nil:
		fmt.Fprintf(w, "  %s: %s\n", event.Error.Kind, event.Error.Message)
	}

	fmt.Fprintln(w)
}

func formatPassDetails(w io.Writer, p *log.PassEvent) {
	if p.Phase == log.PassStart {
		fmt.Fprintln(w, "  START")
		return
	}
	fmt.Fprintf(w, "  END notifications=%d", p.Notifications)
	if p.Suppressed > 0 {
		fmt.Fprintf(w, " suppressed=%d", p.Suppressed)
	}
	fmt.Fprintln(w)
}

func formatStimulusDetails(w io.Writer, s *log.StimulusEvent) {
	fmt.Fprintf(w, "  %s", s.Kind)
	if s.Target != "" {
		fmt.Fprintf(w, " target=%s", s.Target)
	}
	if s.Name != "" {
		fmt.Fprintf(w, " name=%s", s.Name)
	}
	if s.Kind == log.StimulusRepeat {
		fmt.Fprintf(w, " iteration=%d", s.Iteration)
	}
	fmt.Fprintf(w, " at=%s", s.At)
	if !s.Wallclock.IsZero() {
		fmt.Fprintf(w, " wallclock=%s", s.Wallclock.UTC().Format(time.RFC3339Nano))
	}
	fmt.Fprintln(w)
}

func formatNotificationDetails(w io.Writer, n *log.NotificationEvent) {
	fmt.Fprintf(w, "  %s from %s delivery=%d", n.Kind, n.Source, n.Delivery)
	if n.IntervalSeq != 0 {
		fmt.Fprintf(w, " interval=#%d", n.IntervalSeq)
	}
	switch n.Kind {
	case log.NotifyTimebaseUpdate:
		fmt.Fprintf(w, " time=%s", n.Time)
	case log.NotifyRepeat:
		fmt.Fprintf(w, " iteration=%d time=%s", n.Iteration, n.Time)
	}
	if n.Suppressed {
		fmt.Fprint(w, " SUPPRESSED")
	}
	fmt.Fprintln(w)
}

func formatTimes(ts []timing.Time) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// shortenPassID returns the first 8 characters of the pass ID.
func shortenPassID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "pass":
		return log.CategoryPass, nil
	case "stimulus":
		return log.CategoryStimulus, nil
	case "notification":
		return log.CategoryNotification, nil
	case "interval":
		return log.CategoryInterval, nil
	case "instances":
		return log.CategoryInstances, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be pass, stimulus, notification, interval, instances, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, opts FilterOptions, output io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}
