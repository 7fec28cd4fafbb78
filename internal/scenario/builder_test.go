package scenario_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smil-anim/timing-go/internal/scenario"
	"github.com/smil-anim/timing-go/pkg/timegraph"
	"github.com/smil-anim/timing-go/pkg/timing"
)

var origin = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestNewSpecifierKinds(t *testing.T) {
	g := timegraph.New(timegraph.Config{Origin: origin})
	owner, err := g.AddElement("a")
	require.NoError(t, err)

	tests := []struct {
		def  scenario.SpecDef
		want string
	}{
		{scenario.SpecDef{Kind: "offset", Offset: "2s"}, "2s"},
		{scenario.SpecDef{Kind: "indefinite"}, "indefinite"},
		{scenario.SpecDef{Kind: "syncbase", Ref: "x", Edge: "end", Offset: "-1s"}, "x.end-1s"},
		{scenario.SpecDef{Kind: "event", Target: "btn", Event: "click"}, "btn.click"},
		{scenario.SpecDef{Kind: "event", Event: "click"}, "a.click"},
		{scenario.SpecDef{Kind: "repeat", Ref: "x", Iteration: 3}, "x.repeat(3)"},
		{scenario.SpecDef{Kind: "accesskey", Key: "q", Offset: "1s"}, "accessKey(q)+1s"},
		{scenario.SpecDef{Kind: "wallclock", At: "90s"}, "wallclock(2026-10-19T12:01:30Z)"},
		{scenario.SpecDef{Kind: "WALLCLOCK", At: "2026-10-19T13:00:00Z"}, "wallclock(2026-10-19T13:00:00Z)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s, err := scenario.NewSpecifier(owner, timing.Begin, tt.def, origin)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestNewSpecifierMalformed(t *testing.T) {
	g := timegraph.New(timegraph.Config{Origin: origin})
	owner, err := g.AddElement("a")
	require.NoError(t, err)

	defs := map[string]scenario.SpecDef{
		"unknown kind":    {Kind: "sometime"},
		"bad offset":      {Kind: "offset", Offset: "soon"},
		"bad edge":        {Kind: "syncbase", Ref: "x", Edge: "middle"},
		"empty ref":       {Kind: "syncbase"},
		"no event":        {Kind: "event"},
		"negative iter":   {Kind: "repeat", Ref: "x", Iteration: -1},
		"long key":        {Kind: "accesskey", Key: "ab"},
		"bad wallclock":   {Kind: "wallclock", At: "noon"},
		"empty wallclock": {Kind: "wallclock"},
	}
	for name, def := range defs {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.NewSpecifier(owner, timing.End, def, origin)
			require.Error(t, err)
			assert.True(t, errors.Is(err, timing.ErrMalformedExpression), "got %v", err)
		})
	}
}

func TestBuildRejectsMalformedScenario(t *testing.T) {
	sc := &scenario.Scenario{
		ID: "SC-BAD",
		Elements: []scenario.ElementDef{
			{ID: "a", Begin: []scenario.SpecDef{{Kind: "event"}}},
		},
		Steps: []scenario.Step{{Action: scenario.ActionInit}},
	}
	_, err := scenario.Build(sc, timegraph.Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, timing.ErrMalformedExpression))
	assert.Contains(t, err.Error(), "element a begin[0]")

	sc.Elements[0] = scenario.ElementDef{ID: "a", Dur: "forever"}
	_, err = scenario.Build(sc, timegraph.Config{})
	assert.Error(t, err)

	sc.Elements[0] = scenario.ElementDef{ID: "a"}
	sc.Origin = "yesterday"
	_, err = scenario.Build(sc, timegraph.Config{})
	assert.Error(t, err)
}

func TestBuildDetachedElement(t *testing.T) {
	sc := &scenario.Scenario{
		ID:     "SC-DETACHED",
		Origin: "2026-10-19T12:00:00Z",
		Elements: []scenario.ElementDef{
			{ID: "a", Detached: true, Begin: []scenario.SpecDef{{Kind: "offset"}}},
			{ID: "b", Dur: "4s"},
		},
	}
	g, err := scenario.Build(sc, timegraph.Config{})
	require.NoError(t, err)
	assert.Equal(t, origin, g.Origin())

	a, ok := g.Element("a")
	require.True(t, ok)
	assert.False(t, a.Attached())
	assert.Len(t, a.Specifiers(), 1)

	b, _ := g.Element("b")
	assert.Equal(t, timing.FromDuration(4*time.Second), b.SimpleDuration())
}

func TestParseTime(t *testing.T) {
	tm, err := scenario.ParseTime("indefinite")
	require.NoError(t, err)
	assert.Equal(t, timing.Indefinite, tm)

	tm, err = scenario.ParseTime(" Unresolved ")
	require.NoError(t, err)
	assert.Equal(t, timing.Unresolved, tm)

	tm, err = scenario.ParseTime("-1.5s")
	require.NoError(t, err)
	assert.Equal(t, timing.FromDuration(-1500*time.Millisecond), tm)

	_, err = scenario.ParseTime("")
	assert.Error(t, err)
	_, err = scenario.ParseTime("later")
	assert.Error(t, err)

	assert.Equal(t, "[1s, indefinite]", scenario.FormatTimes([]timing.Time{timing.FromDuration(time.Second), timing.Indefinite}))
}
