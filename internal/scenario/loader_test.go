package scenario_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smil-anim/timing-go/internal/scenario"
)

const scenarioDir = "../../testdata/scenarios"

func TestParseScenarioBasic(t *testing.T) {
	data := `
id: SC-TEST-001
name: Basic
description: A simple scenario
elements:
  - id: a
    dur: 2s
    begin:
      - kind: offset
        offset: 1s
steps:
  - action: init
  - action: expect
    element: a
    begin: [1s]
    interval: {begin: 1s, end: 3s}
`
	sc, err := scenario.ParseScenario([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "SC-TEST-001", sc.ID)
	assert.Equal(t, "Basic", sc.Name)
	require.Len(t, sc.Elements, 1)
	assert.Equal(t, "2s", sc.Elements[0].Dur)
	require.Len(t, sc.Elements[0].Begin, 1)
	assert.Equal(t, scenario.KindOffset, sc.Elements[0].Begin[0].Kind)

	require.Len(t, sc.Steps, 2)
	exp := sc.Steps[1]
	assert.Equal(t, scenario.ActionExpect, exp.Action)
	require.NotNil(t, exp.Begin)
	assert.Equal(t, []string{"1s"}, *exp.Begin)
	assert.Nil(t, exp.End)
	require.NotNil(t, exp.Interval)
	assert.Equal(t, "3s", exp.Interval.End)
}

func TestParseScenarioEmptyListIsChecked(t *testing.T) {
	data := `
id: SC-TEST-002
elements: [{id: a}]
steps:
  - action: expect
    element: a
    begin: []
`
	sc, err := scenario.ParseScenario([]byte(data))
	require.NoError(t, err)
	require.NotNil(t, sc.Steps[0].Begin)
	assert.Empty(t, *sc.Steps[0].Begin)
}

func TestParseScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"missing id", "elements: [{id: a}]\nsteps: [{action: init}]", "scenario ID is required"},
		{"no elements", "id: X\nsteps: [{action: init}]", "at least one element"},
		{"no steps", "id: X\nelements: [{id: a}]", "at least one step"},
		{"element without id", "id: X\nelements: [{dur: 1s}]\nsteps: [{action: init}]", "id is required"},
		{"duplicate element", "id: X\nelements: [{id: a}, {id: a}]\nsteps: [{action: init}]", "duplicate element"},
		{"unknown action", "id: X\nelements: [{id: a}]\nsteps: [{action: jump}]", "unknown action"},
		{"newer format", "id: X\nversion: \"2.0\"\nelements: [{id: a}]\nsteps: [{action: init}]", "incompatible scenario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.ParseScenario([]byte(tt.data))
			require.Error(t, err)
			var le *scenario.LoadError
			require.True(t, errors.As(err, &le))
			assert.Contains(t, le.Message, tt.msg)
		})
	}
}

func TestLoadScenarioSyntaxErrorLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: X\nelements:\n  - id: a\n   bad: [\n"), 0644))

	_, err := scenario.LoadScenario(path)
	require.Error(t, err)
	var le *scenario.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.File)
	assert.Greater(t, le.Line, 0)
	assert.Contains(t, err.Error(), path+":")
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := scenario.LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	var le *scenario.LoadError
	require.True(t, errors.As(err, &le))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadDirectory(t *testing.T) {
	scenarios, err := scenario.LoadDirectory(scenarioDir)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(scenarios), 6)
	for _, sc := range scenarios {
		assert.NotEmpty(t, sc.ID)
		assert.Equal(t, scenarioDir, filepath.Dir(sc.Source()))
	}
}

func TestLoadPath(t *testing.T) {
	one, err := scenario.LoadPath(filepath.Join(scenarioDir, "cycle.yaml"))
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "SC-CYCLE-001", one[0].ID)

	all, err := scenario.LoadPath(scenarioDir)
	require.NoError(t, err)
	assert.Greater(t, len(all), 1)
}
