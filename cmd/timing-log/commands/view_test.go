package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/smil-anim/timing-go/pkg/log"
	"github.com/smil-anim/timing-go/pkg/timing"
)

func TestFormatStimulusEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Date(2026, 10, 19, 12, 0, 5, 123456000, time.UTC),
		PassID:    pass1,
		Category:  log.CategoryStimulus,
		Stimulus: &log.StimulusEvent{
			Kind:   log.StimulusDocEvent,
			Target: "x",
			Name:   "click",
			At:     timing.FromDuration(5 * time.Second),
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "2026-10-19T12:00:05.123456Z") {
		t.Errorf("expected microsecond timestamp, got: %s", output)
	}
	if !strings.Contains(output, "[pass:11111111]") {
		t.Errorf("expected shortened pass ID, got: %s", output)
	}
	if !strings.Contains(output, "STIMULUS") {
		t.Errorf("expected STIMULUS category, got: %s", output)
	}
	if !strings.Contains(output, "EVENT target=x name=click at=5s") {
		t.Errorf("expected stimulus details, got: %s", output)
	}
}

func TestFormatNotificationEvent(t *testing.T) {
	event := sampleEvents()[7]

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "NOTIFICATION b a.begin+1s") {
		t.Errorf("expected element and specifier in header, got: %s", output)
	}
	if !strings.Contains(output, "TIMEBASE_UPDATE from a delivery=4 interval=#1 time=-3s SUPPRESSED") {
		t.Errorf("expected notification details, got: %s", output)
	}
}

func TestFormatIntervalAndInstances(t *testing.T) {
	events := sampleEvents()

	var buf bytes.Buffer
	formatEvent(&buf, events[2])
	formatEvent(&buf, events[3])
	output := buf.String()

	if !strings.Contains(output, "begin: [7s]") {
		t.Errorf("expected instance list, got: %s", output)
	}
	if !strings.Contains(output, "CREATED #1 [7s, indefinite)") {
		t.Errorf("expected interval, got: %s", output)
	}
}

func TestFormatPassEnd(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[9])

	if !strings.Contains(buf.String(), "END notifications=5 suppressed=1") {
		t.Errorf("expected pass summary, got: %s", buf.String())
	}
}

func TestShortenPassID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{pass1, "11111111"},
		{"abc", "abc"},
		{"", "-"},
	}
	for _, tt := range tests {
		if got := shortenPassID(tt.in); got != tt.want {
			t.Errorf("shortenPassID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCategoryFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Category
		wantErr bool
	}{
		{"pass", log.CategoryPass, false},
		{"STIMULUS", log.CategoryStimulus, false},
		{"Notification", log.CategoryNotification, false},
		{"interval", log.CategoryInterval, false},
		{"instances", log.CategoryInstances, false},
		{"error", log.CategoryError, false},
		{"frame", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCategoryFlag(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategoryFlag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseCategoryFlag(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFilterOptionsBuild(t *testing.T) {
	f, err := FilterOptions{
		Element:   "b",
		Category:  "error",
		TimeStart: "2026-10-19T12:00:00Z",
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if f.Element != "b" || f.Category == nil || *f.Category != log.CategoryError || f.TimeStart == nil {
		t.Errorf("unexpected filter: %+v", f)
	}

	if _, err := (FilterOptions{TimeEnd: "yesterday"}).Build(); err == nil {
		t.Error("expected error for bad time-end")
	}
	if _, err := (FilterOptions{Category: "bogus"}).Build(); err == nil {
		t.Error("expected error for bad category")
	}
}

func TestRunView(t *testing.T) {
	path := writeTrace(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunView(path, FilterOptions{}, &buf); err != nil {
		t.Fatalf("RunView: %v", err)
	}
	if got := strings.Count(buf.String(), "[pass:"); got != 10 {
		t.Errorf("expected 10 events, got %d", got)
	}

	buf.Reset()
	if err := RunView(path, FilterOptions{PassID: pass2, Category: "error"}, &buf); err != nil {
		t.Fatalf("RunView filtered: %v", err)
	}
	output := buf.String()
	if strings.Count(output, "[pass:") != 1 {
		t.Errorf("expected exactly one error event, got: %s", output)
	}
	if !strings.Contains(output, "CYCLIC_DEPENDENCY: cyclic dependency") {
		t.Errorf("expected cyclic error, got: %s", output)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	if err := RunView("does-not-exist.tlog", FilterOptions{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing file")
	}
}
