package log

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smil-anim/timing-go/pkg/timing"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func sampleEvents() []Event {
	return []Event{
		{Timestamp: t0, PassID: "pass-1", Category: CategoryPass, Pass: &PassEvent{Phase: PassStart}},
		{Timestamp: t0.Add(time.Millisecond), PassID: "pass-1", Category: CategoryStimulus,
			Stimulus: &StimulusEvent{Kind: StimulusDocEvent, Target: "a", Name: "click", At: timing.FromDuration(10 * time.Second)}},
		{Timestamp: t0.Add(2 * time.Millisecond), PassID: "pass-1", Category: CategoryInstances, Element: "a",
			Instances: &InstancesEvent{Direction: timing.Begin, Times: []timing.Time{timing.FromDuration(10 * time.Second), timing.Indefinite}}},
		{Timestamp: t0.Add(3 * time.Millisecond), PassID: "pass-1", Category: CategoryInterval, Element: "a",
			Interval: &IntervalEvent{Change: IntervalCreated, Seq: 1, Begin: timing.FromDuration(10 * time.Second), End: timing.Unresolved}},
		{Timestamp: t0.Add(4 * time.Millisecond), PassID: "pass-1", Category: CategoryNotification, Element: "b", Specifier: "a.begin+1s",
			Notification: &NotificationEvent{Kind: NotifyNewInterval, Delivery: 3, Source: "a", IntervalSeq: 1}},
		{Timestamp: t0.Add(5 * time.Millisecond), PassID: "pass-2", Category: CategoryError, Element: "b",
			Error: &ErrorEventData{Kind: ErrorCyclic, Message: "cycle"}},
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	in := sampleEvents()[3]
	data, err := EncodeEvent(in)
	require.NoError(t, err)

	out, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.True(t, in.Timestamp.Equal(out.Timestamp))
	assert.Equal(t, in.Element, out.Element)
	require.NotNil(t, out.Interval)
	assert.Equal(t, *in.Interval, *out.Interval)
	assert.Nil(t, out.Notification)
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.tlog")

	fl, err := NewFileLogger(path)
	require.NoError(t, err)
	for _, ev := range sampleEvents() {
		fl.Log(ev)
	}
	require.NoError(t, fl.Close())
	require.NoError(t, fl.Close(), "Close is idempotent")
	fl.Log(sampleEvents()[0]) // ignored after close

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	var got []Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}
	require.Len(t, got, len(sampleEvents()))
	assert.Equal(t, CategoryStimulus, got[1].Category)
	assert.Equal(t, "click", got[1].Stimulus.Name)
	assert.Equal(t, []timing.Time{timing.FromDuration(10 * time.Second), timing.Indefinite}, got[2].Instances.Times)
	assert.Equal(t, timing.Unresolved, got[3].Interval.End)
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.tlog")
	fl, err := NewFileLogger(path)
	require.NoError(t, err)
	for _, ev := range sampleEvents() {
		fl.Log(ev)
	}
	require.NoError(t, fl.Close())

	cat := CategoryError
	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 6},
		{"pass", Filter{PassID: "pass-2"}, 1},
		{"element", Filter{Element: "b"}, 2},
		{"category", Filter{Category: &cat}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			require.NoError(t, err)
			defer r.Close()
			n := 0
			for {
				if _, err := r.Next(); err != nil {
					assert.Equal(t, io.EOF, err)
					break
				}
				n++
			}
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestFilterTimeRange(t *testing.T) {
	start := t0.Add(time.Millisecond)
	end := t0.Add(3 * time.Millisecond)
	f := Filter{TimeStart: &start, TimeEnd: &end}

	var matched int
	for _, ev := range sampleEvents() {
		if f.Matches(ev) {
			matched++
		}
	}
	assert.Equal(t, 2, matched)
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewSlogAdapter(logger)

	for _, ev := range sampleEvents() {
		a.Log(ev)
	}

	out := buf.String()
	assert.Equal(t, 6, strings.Count(out, "msg=timing"))
	assert.Contains(t, out, "pass=pass-1")
	assert.Contains(t, out, "category=NOTIFICATION")
	assert.Contains(t, out, "specifier=a.begin+1s")
	assert.Contains(t, out, "change=CREATED")
	assert.Contains(t, out, "end=unresolved")
	assert.Contains(t, out, "error_kind=CYCLIC_DEPENDENCY")
}

type recorder struct{ events []Event }

func (r *recorder) Log(ev Event) { r.events = append(r.events, ev) }

func TestTee(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := Tee(a, nil, b, NoopLogger{})

	ev := sampleEvents()[0]
	m.Log(ev)

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)

	assert.Equal(t, NoopLogger{}, Tee())
	assert.Equal(t, NoopLogger{}, Tee(nil))
	assert.Same(t, a, Tee(nil, a))
}

func TestFiltered(t *testing.T) {
	rec := &recorder{}
	l := Filtered(rec, Filter{Element: "b"})
	for _, ev := range sampleEvents() {
		l.Log(ev)
	}
	require.Len(t, rec.events, 2)
	for _, ev := range rec.events {
		assert.Equal(t, "b", ev.Element)
	}
}

func TestFileLoggerCountsEvents(t *testing.T) {
	fl, err := NewFileLogger(filepath.Join(t.TempDir(), "trace.tlog"))
	require.NoError(t, err)
	for _, ev := range sampleEvents() {
		fl.Log(ev)
	}
	assert.Equal(t, len(sampleEvents()), fl.Written())
	assert.NoError(t, fl.Err())
	require.NoError(t, fl.Close())

	fl.Log(sampleEvents()[0])
	assert.Equal(t, len(sampleEvents()), fl.Written())
}

func TestFileLoggerMissingDirectory(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "trace.tlog"))
	assert.Error(t, err)
}

func TestCategoryStrings(t *testing.T) {
	assert.Equal(t, "PASS", CategoryPass.String())
	assert.Equal(t, "ERROR", CategoryError.String())
	assert.Equal(t, "UNKNOWN", Category(99).String())
	assert.Equal(t, "WALLCLOCK", StimulusWallclock.String())
	assert.Equal(t, "TIMEBASE_UPDATE", NotifyTimebaseUpdate.String())
	assert.Equal(t, "UNRESOLVED_REFERENCE", ErrorUnresolved.String())
}
