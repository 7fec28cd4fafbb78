package log

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/smil-anim/timing-go/pkg/timing"
)

// Event represents a trace event captured during propagation.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (wallclock, nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// PassID identifies the propagation pass (UUID).
	PassID string `cbor:"2,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Element is the id of the element concerned, if any.
	Element string `cbor:"4,keyasint,omitempty"`

	// Specifier describes the specifier concerned, if any.
	Specifier string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Pass         *PassEvent         `cbor:"6,keyasint,omitempty"`
	Stimulus     *StimulusEvent     `cbor:"7,keyasint,omitempty"`
	Notification *NotificationEvent `cbor:"8,keyasint,omitempty"`
	Interval     *IntervalEvent     `cbor:"9,keyasint,omitempty"`
	Instances    *InstancesEvent    `cbor:"10,keyasint,omitempty"`
	Error        *ErrorEventData    `cbor:"11,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryPass marks the start or end of a propagation pass.
	CategoryPass Category = 0
	// CategoryStimulus records the external trigger of a pass.
	CategoryStimulus Category = 1
	// CategoryNotification records a notification delivered to a specifier.
	CategoryNotification Category = 2
	// CategoryInterval records an interval lifecycle change.
	CategoryInterval Category = 3
	// CategoryInstances records an instance list snapshot.
	CategoryInstances Category = 4
	// CategoryError records a reported timing error.
	CategoryError Category = 5
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryPass:
		return "PASS"
	case CategoryStimulus:
		return "STIMULUS"
	case CategoryNotification:
		return "NOTIFICATION"
	case CategoryInterval:
		return "INTERVAL"
	case CategoryInstances:
		return "INSTANCES"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// PassPhase distinguishes pass start from pass end.
type PassPhase uint8

const (
	// PassStart is logged before the stimulus runs.
	PassStart PassPhase = 0
	// PassEnd is logged once the notification queue is drained.
	PassEnd PassPhase = 1
)

// String returns the phase name.
func (p PassPhase) String() string {
	switch p {
	case PassStart:
		return "START"
	case PassEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// PassEvent captures pass boundaries.
type PassEvent struct {
	// Phase is start or end.
	Phase PassPhase `cbor:"1,keyasint"`

	// Notifications is the number of queue entries processed (end only).
	Notifications int `cbor:"2,keyasint,omitempty"`

	// Suppressed is the number of notifications suppressed as cyclic (end only).
	Suppressed int `cbor:"3,keyasint,omitempty"`
}

// StimulusKind identifies the external trigger of a pass.
type StimulusKind uint8

const (
	StimulusInitialize StimulusKind = 0
	StimulusAttach     StimulusKind = 1
	StimulusDetach     StimulusKind = 2
	StimulusReset      StimulusKind = 3
	StimulusDocEvent   StimulusKind = 4
	StimulusKey        StimulusKind = 5
	StimulusRepeat     StimulusKind = 6
	StimulusWallclock  StimulusKind = 7
)

// String returns the stimulus kind name.
func (k StimulusKind) String() string {
	switch k {
	case StimulusInitialize:
		return "INITIALIZE"
	case StimulusAttach:
		return "ATTACH"
	case StimulusDetach:
		return "DETACH"
	case StimulusReset:
		return "RESET"
	case StimulusDocEvent:
		return "EVENT"
	case StimulusKey:
		return "KEY"
	case StimulusRepeat:
		return "REPEAT"
	case StimulusWallclock:
		return "WALLCLOCK"
	default:
		return "UNKNOWN"
	}
}

// StimulusEvent captures the external trigger of a pass.
type StimulusEvent struct {
	// Kind of stimulus.
	Kind StimulusKind `cbor:"1,keyasint"`

	// Target is the element or event target id.
	Target string `cbor:"2,keyasint,omitempty"`

	// Name is the event name (event stimulus) or key (key stimulus).
	Name string `cbor:"3,keyasint,omitempty"`

	// Iteration is the repeat iteration (repeat stimulus).
	Iteration int `cbor:"4,keyasint,omitempty"`

	// At is the document time of the stimulus.
	At timing.Time `cbor:"5,keyasint,omitempty"`

	// Wallclock is the wallclock instant (wallclock stimulus).
	Wallclock time.Time `cbor:"6,keyasint,omitempty"`
}

// NotificationKind identifies the callback delivered to a specifier.
type NotificationKind uint8

const (
	NotifyNewInterval    NotificationKind = 0
	NotifyRemoveInterval NotificationKind = 1
	NotifyTimebaseUpdate NotificationKind = 2
	NotifyRepeat         NotificationKind = 3
)

// String returns the notification kind name.
func (k NotificationKind) String() string {
	switch k {
	case NotifyNewInterval:
		return "NEW_INTERVAL"
	case NotifyRemoveInterval:
		return "REMOVE_INTERVAL"
	case NotifyTimebaseUpdate:
		return "TIMEBASE_UPDATE"
	case NotifyRepeat:
		return "REPEAT"
	default:
		return "UNKNOWN"
	}
}

// NotificationEvent captures one notification delivered to a specifier.
type NotificationEvent struct {
	// Kind of callback.
	Kind NotificationKind `cbor:"1,keyasint"`

	// Delivery groups notifications published by one element recompute.
	Delivery uint64 `cbor:"2,keyasint"`

	// Source is the id of the publishing timebase element.
	Source string `cbor:"3,keyasint,omitempty"`

	// IntervalSeq is the sequence number of the interval concerned.
	IntervalSeq uint64 `cbor:"4,keyasint,omitempty"`

	// Time is the new timebase instant (update) or repeat time (repeat).
	Time timing.Time `cbor:"5,keyasint,omitempty"`

	// Iteration is the repeat iteration (repeat only).
	Iteration int `cbor:"6,keyasint,omitempty"`

	// Suppressed is set when the notification was dropped as cyclic.
	Suppressed bool `cbor:"7,keyasint,omitempty"`
}

// IntervalChange identifies an interval lifecycle change.
type IntervalChange uint8

const (
	IntervalCreated IntervalChange = 0
	IntervalRevised IntervalChange = 1
	IntervalRemoved IntervalChange = 2
)

// String returns the change name.
func (c IntervalChange) String() string {
	switch c {
	case IntervalCreated:
		return "CREATED"
	case IntervalRevised:
		return "REVISED"
	case IntervalRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// IntervalEvent captures an interval lifecycle change.
type IntervalEvent struct {
	Change IntervalChange `cbor:"1,keyasint"`
	Seq    uint64         `cbor:"2,keyasint"`
	Begin  timing.Time    `cbor:"3,keyasint"`
	End    timing.Time    `cbor:"4,keyasint"`
}

// InstancesEvent captures an instance list after it changed.
type InstancesEvent struct {
	Direction timing.Direction `cbor:"1,keyasint"`
	Times     []timing.Time    `cbor:"2,keyasint"`
}

// ErrorKind classifies reported timing errors.
type ErrorKind uint8

const (
	ErrorOther      ErrorKind = 0
	ErrorUnresolved ErrorKind = 1
	ErrorCyclic     ErrorKind = 2
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorUnresolved:
		return "UNRESOLVED_REFERENCE"
	case ErrorCyclic:
		return "CYCLIC_DEPENDENCY"
	default:
		return "OTHER"
	}
}

// ErrorEventData captures a reported timing error.
type ErrorEventData struct {
	// Kind classifies the error.
	Kind ErrorKind `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`
}

// Trace files are a plain sequence of CBOR-encoded events. Encoding is
// canonical so equal traces are byte-identical.
var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("log: trace encoder mode: %v", err))
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: trace decoder mode: %v", err))
	}
	return dm
}

// EncodeEvent encodes one event as it appears in a trace file.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent decodes one event of a trace file.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}
