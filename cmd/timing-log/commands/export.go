package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/smil-anim/timing-go/pkg/log"
)

// RunExport writes the selected events to w as JSON lines or CSV.
func RunExport(path, format string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "pass_id", "category", "element", "specifier", "type", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		eventType, detail := "", ""
		switch {
		case event.Pass != nil:
			eventType = event.Pass.Phase.String()
			detail = strconv.Itoa(event.Pass.Notifications)
		case event.Stimulus != nil:
			eventType = event.Stimulus.Kind.String()
			detail = event.Stimulus.At.String()
		case event.Notification != nil:
			eventType = event.Notification.Kind.String()
			detail = event.Notification.Source
			if event.Notification.Suppressed {
				detail += " suppressed"
			}
		case event.Interval != nil:
			eventType = event.Interval.Change.String()
			detail = event.Interval.Begin.String() + " " + event.Interval.End.String()
		case event.Instances != nil:
			eventType = event.Instances.Direction.String()
			detail = formatTimes(event.Instances.Times)
		case event.Error != nil:
			eventType = event.Error.Kind.String()
			detail = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.PassID,
			event.Category.String(),
			event.Element,
			event.Specifier,
			eventType,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
}
