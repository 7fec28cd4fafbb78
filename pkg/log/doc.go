// Package log provides structured trace logging for timing propagation.
//
// This package defines the Logger interface and Event types for capturing
// what the propagation engine does: the stimulus that started a pass, every
// notification delivered to a specifier, interval lifecycle changes, instance
// list snapshots and reported errors. It is separate from operational logging
// (slog) - the trace is a complete machine-readable record for debugging
// dependency cascades.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.TraceLogger = log.NewSlogAdapter(slog.Default())
//
//	// For analysis: write to binary file
//	cfg.TraceLogger, _ = log.NewFileLogger("/tmp/document.tlog")
//
//	// Both, keeping only one element's events in the file
//	cfg.TraceLogger = log.Tee(
//	    log.NewSlogAdapter(slog.Default()),
//	    log.Filtered(fileLogger, log.Filter{Element: "intro"}),
//	)
//
// # Passes
//
// Every event carries the id of the propagation pass it belongs to. A pass
// starts with a PassEvent (PassStart) followed by the StimulusEvent that
// triggered it, and ends with a PassEvent (PassEnd) carrying the number of
// notifications processed.
//
// # File Format
//
// Trace files use CBOR encoding with the .tlog extension. The timing-log CLI
// tool provides viewing, filtering and statistics.
package log
