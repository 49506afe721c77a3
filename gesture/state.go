package gesture

// State is a gesture's position in its recognition lifecycle.
type State uint8

const (
	// StateWaiting is the resting state: no active points, no opinion.
	StateWaiting State = iota
	// StatePossible means at least one point is being tracked but the
	// gesture has not yet decided to recognize or cancel.
	StatePossible
	// StateRecognizePending means the gesture wants to enter RECOGNIZING
	// but is gated on one or more RequireFailureOf dependencies that
	// haven't resolved yet. It is a synthetic, externally observable
	// state. Unlike POSSIBLE, it is not cancelled when an unrelated
	// gesture starts RECOGNIZING; like POSSIBLE, it does not block other
	// gestures from starting. Promotion is deferred until its gates clear.
	StateRecognizePending
	// StateRecognizing means the gesture has claimed its points and is
	// actively driving its own recognition logic (e.g. tracking pan
	// deltas). Only one gesture in a Registry may hold this state at a
	// time, except where a relationship allows otherwise (gestures that
	// negotiated a shared point, or RecognizeIndependentlyFrom).
	StateRecognizing
	// StateCompleted means the gesture recognized successfully and
	// reported its result. Terminal until the points empty out and it
	// returns to WAITING.
	StateCompleted
	// StateCancelled means the gesture gave up or was cancelled by an
	// arbitration decision. Terminal until the points empty out and it
	// returns to WAITING.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StatePossible:
		return "POSSIBLE"
	case StateRecognizePending:
		return "RECOGNIZE_PENDING"
	case StateRecognizing:
		return "RECOGNIZING"
	case StateCompleted:
		return "COMPLETED"
	case StateCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// legalTransition reports whether moving from `from` to `to` is a legal
// state-machine edge, mirroring the assertions in the reference recognizer's
// set_state routine.
func legalTransition(from, to State) bool {
	if from == to && to != StateRecognizing {
		return true
	}
	switch from {
	case StateWaiting:
		return to == StatePossible
	case StatePossible:
		return to == StateRecognizePending || to == StateRecognizing || to == StateCancelled
	case StateRecognizePending:
		return to == StateRecognizing || to == StateCancelled
	case StateRecognizing:
		return to == StateRecognizing || to == StateCompleted || to == StateCancelled
	case StateCompleted:
		return to == StateWaiting
	case StateCancelled:
		return to == StateWaiting
	default:
		return false
	}
}

// DeviceType narrows which input devices a gesture is willing to handle.
type DeviceType uint8

const (
	DevicePointer DeviceType = 1 << iota
	DeviceTouch
	DevicePen
)

// DeviceAll accepts any device type. It's the default for a new Gesture.
const DeviceAll = DevicePointer | DeviceTouch | DevicePen
