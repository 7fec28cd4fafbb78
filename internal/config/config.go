// Package config loads command-line tool configuration from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the reporters.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJUnit = "junit"
)

var (
	// ErrUnsupportedFile is returned for config files that are neither YAML nor TOML.
	ErrUnsupportedFile = errors.New("unsupported config file type")

	// ErrInvalidLogLevel is returned when the log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidFormat is returned when the output format is not recognized.
	ErrInvalidFormat = errors.New("invalid output format")
)

// Config holds settings shared by timing-run and timing-shell.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Trace is the path of a CBOR trace file to write (empty disables it).
	Trace string `yaml:"trace" toml:"trace"`

	// TraceConsole also writes trace events to the operational log.
	TraceConsole bool `yaml:"trace_console" toml:"trace_console"`

	// Format selects the report format (text, json or junit).
	Format string `yaml:"format" toml:"format"`

	// Verbose includes per-step details in text reports.
	Verbose bool `yaml:"verbose" toml:"verbose"`

	// StopOnFirstFailure stops a run after the first failed scenario.
	StopOnFirstFailure bool `yaml:"stop_on_first_failure" toml:"stop_on_first_failure"`

	// Recursive descends into subdirectories when loading scenarios.
	Recursive bool `yaml:"recursive" toml:"recursive"`

	// HistoryFile is the readline history of timing-shell.
	HistoryFile string `yaml:"history_file" toml:"history_file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Format:   FormatText,
	}
}

// Load reads a config file, choosing the decoder by extension.
// Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the log level and output format.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatJUnit:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	return nil
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
}
