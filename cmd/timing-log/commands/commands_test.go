package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smil-anim/timing-go/pkg/log"
)

func TestRunFilter(t *testing.T) {
	path := writeTrace(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.tlog")

	count, err := RunFilter(path, out, FilterOptions{Element: "b"})
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	reader, err := log.NewReader(out)
	require.NoError(t, err)
	defer reader.Close()

	var elements []string
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		elements = append(elements, event.Element)
	}
	assert.Equal(t, []string{"b", "b", "b", "b"}, elements)
}

func TestRunFilterBadOptions(t *testing.T) {
	path := writeTrace(t, sampleEvents())
	_, err := RunFilter(path, filepath.Join(t.TempDir(), "x.tlog"), FilterOptions{Category: "nope"})
	assert.Error(t, err)
}

func TestRunExportJSONL(t *testing.T) {
	path := writeTrace(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "jsonl", FilterOptions{PassID: pass1}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	var first log.Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, pass1, first.PassID)
	require.NotNil(t, first.Pass)
	assert.Equal(t, log.PassStart, first.Pass.Phase)
}

func TestRunExportCSV(t *testing.T) {
	path := writeTrace(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "csv", FilterOptions{Category: "notification"}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "timestamp", rows[0][0])
	assert.Equal(t, []string{pass2, "NOTIFICATION", "b", "a.begin+1s", "TIMEBASE_UPDATE", "a suppressed"}, rows[1][1:])
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := writeTrace(t, sampleEvents())
	err := RunExport(path, "xml", FilterOptions{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")
}

func TestCollect(t *testing.T) {
	path := writeTrace(t, sampleEvents())

	stats, err := Collect(path)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalEvents)
	assert.Equal(t, 4, stats.EventsByCategory[log.CategoryPass])
	assert.Equal(t, 1, stats.Stimuli[log.StimulusDocEvent])
	assert.Equal(t, 1, stats.Stimuli[log.StimulusInitialize])
	assert.Equal(t, 1, stats.Suppressed)
	assert.Equal(t, 1, stats.ErrorsByKind[log.ErrorCyclic])

	require.Len(t, stats.Passes, 2)
	p := stats.Passes[pass2]
	assert.Equal(t, "INITIALIZE", p.Stimulus)
	assert.Equal(t, 5, p.Notifications)
	assert.Equal(t, 1, p.Suppressed)
	assert.Equal(t, 5, p.Events)
}

func TestRunStats(t *testing.T) {
	path := writeTrace(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	output := buf.String()

	assert.Contains(t, output, "Total Events: 10")
	assert.Contains(t, output, "Passes: 2")
	assert.Contains(t, output, "[11111111] EVENT: 5 events, 1 notifications")
	assert.Contains(t, output, "[22222222] INITIALIZE: 5 events, 5 notifications, 1 suppressed")
	assert.Contains(t, output, "Suppressed Notifications: 1")
	assert.Contains(t, output, "CYCLIC_DEPENDENCY:")
}
