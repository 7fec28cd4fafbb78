package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, FormatText, cfg.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "run.yaml", `
log_level: debug
trace: out.tlog
format: json
stop_on_first_failure: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "out.tlog", cfg.Trace)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.StopOnFirstFailure)
	assert.False(t, cfg.Recursive)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "run.toml", `
log_level = "error"
recursive = true
history_file = "/tmp/timing_history"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.Recursive)
	assert.Equal(t, "/tmp/timing_history", cfg.HistoryFile)
	// Defaults survive for absent keys.
	assert.Equal(t, FormatText, cfg.Format)
}

func TestLoadErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "run.ini", "log_level=debug")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrUnsupportedFile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		path := writeFile(t, "run.yaml", "log_level: loud\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		path := writeFile(t, "run.toml", `format = "xml"`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "run.yml", "log_level: [\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := (&Config{LogLevel: tt.in}).Level()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
