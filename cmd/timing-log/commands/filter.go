package commands

import (
	"fmt"
	"io"

	"github.com/smil-anim/timing-go/pkg/log"
)

// RunFilter copies the events selected by opts into a new trace file and
// returns how many were written.
func RunFilter(path, output string, opts FilterOptions) (int, error) {
	filter, err := opts.Build()
	if err != nil {
		return 0, err
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	out, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	sink := log.Filtered(out, filter)

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Close()
			return out.Written(), fmt.Errorf("failed to read event: %w", err)
		}
		sink.Log(event)
	}
	if err := out.Close(); err != nil {
		return out.Written(), fmt.Errorf("failed to write %s: %w", output, err)
	}
	return out.Written(), nil
}
