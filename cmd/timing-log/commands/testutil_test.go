package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/smil-anim/timing-go/pkg/log"
	"github.com/smil-anim/timing-go/pkg/timing"
)

const (
	pass1 = "11111111-aaaa-bbbb-cccc-000000000001"
	pass2 = "22222222-aaaa-bbbb-cccc-000000000002"
)

var base = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// sampleEvents is a click on x propagating to b, followed by a
// cycle pass that suppresses one notification.
func sampleEvents() []log.Event {
	return []log.Event{
		{Timestamp: base, PassID: pass1, Category: log.CategoryPass, Pass: &log.PassEvent{Phase: log.PassStart}},
		{Timestamp: base, PassID: pass1, Category: log.CategoryStimulus, Stimulus: &log.StimulusEvent{
			Kind: log.StimulusDocEvent, Target: "x", Name: "click", At: timing.FromDuration(5 * time.Second),
		}},
		{Timestamp: base.Add(time.Millisecond), PassID: pass1, Category: log.CategoryInstances, Element: "b",
			Instances: &log.InstancesEvent{Direction: timing.Begin, Times: []timing.Time{timing.FromDuration(7 * time.Second)}}},
		{Timestamp: base.Add(time.Millisecond), PassID: pass1, Category: log.CategoryInterval, Element: "b",
			Interval: &log.IntervalEvent{Change: log.IntervalCreated, Seq: 1, Begin: timing.FromDuration(7 * time.Second), End: timing.Indefinite}},
		{Timestamp: base.Add(2 * time.Millisecond), PassID: pass1, Category: log.CategoryPass, Pass: &log.PassEvent{Phase: log.PassEnd, Notifications: 1}},

		{Timestamp: base.Add(time.Second), PassID: pass2, Category: log.CategoryPass, Pass: &log.PassEvent{Phase: log.PassStart}},
		{Timestamp: base.Add(time.Second), PassID: pass2, Category: log.CategoryStimulus, Stimulus: &log.StimulusEvent{Kind: log.StimulusInitialize}},
		{Timestamp: base.Add(time.Second), PassID: pass2, Category: log.CategoryNotification, Element: "b", Specifier: "a.begin+1s",
			Notification: &log.NotificationEvent{Kind: log.NotifyTimebaseUpdate, Delivery: 4, Source: "a", IntervalSeq: 1, Time: timing.FromDuration(-3 * time.Second), Suppressed: true}},
		{Timestamp: base.Add(time.Second), PassID: pass2, Category: log.CategoryError, Element: "b", Specifier: "a.begin+1s",
			Error: &log.ErrorEventData{Kind: log.ErrorCyclic, Message: "cyclic dependency"}},
		{Timestamp: base.Add(time.Second + time.Millisecond), PassID: pass2, Category: log.CategoryPass, Pass: &log.PassEvent{Phase: log.PassEnd, Notifications: 5, Suppressed: 1}},
	}
}

func writeTrace(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.tlog")
	fl, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	for _, e := range events {
		fl.Log(e)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}
