package gesture

import "time"

// EventKind identifies the shape of an Event.
type EventKind uint8

const (
	EventButtonPress EventKind = iota
	EventButtonRelease
	EventMotion
	EventTouchBegin
	EventTouchUpdate
	EventTouchEnd
	EventTouchCancel
	EventEnter
	EventLeave
)

func (k EventKind) String() string {
	switch k {
	case EventButtonPress:
		return "ButtonPress"
	case EventButtonRelease:
		return "ButtonRelease"
	case EventMotion:
		return "Motion"
	case EventTouchBegin:
		return "TouchBegin"
	case EventTouchUpdate:
		return "TouchUpdate"
	case EventTouchEnd:
		return "TouchEnd"
	case EventTouchCancel:
		return "TouchCancel"
	case EventEnter:
		return "Enter"
	case EventLeave:
		return "Leave"
	default:
		return "Unknown"
	}
}

// DeviceID identifies a physical input device (mouse, a specific touchscreen,
// a pen). Sequences are scoped per device.
type DeviceID uint32

// Modifiers is a bitmask of keyboard modifiers held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Button identifies a pointer button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Event is a single low-level input event fed into the engine. Sequence is
// nil for pointer-button events (there is exactly one implicit sequence per
// device in that case); it is non-nil for touch/pen contacts, one per
// simultaneous contact per device.
type Event struct {
	Kind       EventKind
	Device     DeviceID
	DeviceType DeviceType
	// SourceDevice identifies the physical hardware device behind Device
	// (e.g. which of several touchscreens reporting through the same
	// logical Device actually produced this event). A gesture only ever
	// tracks points from one source device at a time; see
	// Gesture.ShouldHandleSequence.
	SourceDevice DeviceID
	Sequence     *uint64
	X, Y         float64
	Time         time.Duration
	Button       Button
	Modifiers    Modifiers
	// Synthetic marks an event replayed or fabricated by the host rather
	// than sourced from real hardware (e.g. a crossing event synthesized
	// during a grab change). The engine never dispatches these to a
	// gesture; they exist for hosts that need to notify listeners outside
	// the gesture system.
	Synthetic bool
}

// seqKey collapses an event's (device, sequence) into a lookup key, treating
// a nil Sequence (pointer-button point) as sequence 0 for that device.
func (e Event) seqKey() pointKey {
	var seq uint64
	if e.Sequence != nil {
		seq = *e.Sequence
	}
	return pointKey{device: e.Device, sequence: seq, isPointer: e.Sequence == nil}
}
