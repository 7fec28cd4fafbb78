package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/smil-anim/timing-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Passes           map[string]*PassStats
	Stimuli          map[log.StimulusKind]int
	Suppressed       int
	ErrorsByKind     map[log.ErrorKind]int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// PassStats holds statistics for a single propagation pass.
type PassStats struct {
	FirstSeen     time.Time
	Stimulus      string
	Notifications int
	Suppressed    int
	Events        int
}

// Collect reads a trace file and aggregates its events.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Passes:           make(map[string]*PassStats),
		Stimuli:          make(map[log.StimulusKind]int),
		ErrorsByKind:     make(map[log.ErrorKind]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		var pass *PassStats
		if event.PassID != "" {
			pass = stats.Passes[event.PassID]
			if pass == nil {
				pass = &PassStats{FirstSeen: event.Timestamp}
				stats.Passes[event.PassID] = pass
			}
			pass.Events++
		}

		switch {
		case event.Stimulus != nil:
			stats.Stimuli[event.Stimulus.Kind]++
			if pass != nil && pass.Stimulus == "" {
				pass.Stimulus = event.Stimulus.Kind.String()
			}
		case event.Pass != nil && event.Pass.Phase == log.PassEnd:
			if pass != nil {
				pass.Notifications = event.Pass.Notifications
				pass.Suppressed = event.Pass.Suppressed
			}
		case event.Notification != nil && event.Notification.Suppressed:
			stats.Suppressed++
		case event.Error != nil:
			stats.ErrorsByKind[event.Error.Kind]++
		}
	}
	return stats, nil
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Timing Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{
		log.CategoryPass, log.CategoryStimulus, log.CategoryNotification,
		log.CategoryInterval, log.CategoryInstances, log.CategoryError,
	} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Stimuli) > 0 {
		fmt.Fprintln(w, "Stimuli:")
		kinds := make([]log.StimulusKind, 0, len(stats.Stimuli))
		for k := range stats.Stimuli {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			fmt.Fprintf(w, "  %-14s %d\n", k.String()+":", stats.Stimuli[k])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Passes: %d\n", len(stats.Passes))
	if len(stats.Passes) > 0 {
		type passInfo struct {
			id    string
			stats *PassStats
		}
		passes := make([]passInfo, 0, len(stats.Passes))
		for id, ps := range stats.Passes {
			passes = append(passes, passInfo{id, ps})
		}
		sort.SliceStable(passes, func(i, j int) bool {
			return passes[i].stats.FirstSeen.Before(passes[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, p := range passes {
			fmt.Fprintf(w, "  [%s] %s: %d events, %d notifications", shortenPassID(p.id), p.stats.Stimulus, p.stats.Events, p.stats.Notifications)
			if p.stats.Suppressed > 0 {
				fmt.Fprintf(w, ", %d suppressed", p.stats.Suppressed)
			}
			fmt.Fprintln(w)
		}
	}

	if stats.Suppressed > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Suppressed Notifications: %d\n", stats.Suppressed)
	}

	if len(stats.ErrorsByKind) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors:")
		for _, k := range []log.ErrorKind{log.ErrorUnresolved, log.ErrorCyclic, log.ErrorOther} {
			if count := stats.ErrorsByKind[k]; count > 0 {
				fmt.Fprintf(w, "  %-22s %d\n", k.String()+":", count)
			}
		}
	}
}
