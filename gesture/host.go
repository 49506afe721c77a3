package gesture

import "time"

// TimerHandle identifies a timer scheduled through Host.ScheduleTimer. It is
// only meaningful to the Host that issued it.
type TimerHandle uint64

// Host is the environment a Gesture runs in: whatever owns the event loop,
// the windowing/scene-graph tree, and the timer facility. The engine makes
// no assumptions about what a Host actually is; package stage provides a
// reference implementation over an actor tree.
type Host interface {
	// ClaimSequence marks (device, sequence) as claimed by a specific
	// gesture, so the host stops offering it to gestures elsewhere in the
	// tree once one gesture starts RECOGNIZING. A nil sequence claims the
	// device's implicit pointer-button contact.
	ClaimSequence(device DeviceID, sequence *uint64, owner *Gesture)

	// ScheduleTimer arranges for fn to run after d on the host's event
	// loop thread, returning a handle that can be passed to CancelTimer.
	ScheduleTimer(d time.Duration, fn func()) TimerHandle

	// CancelTimer cancels a previously scheduled timer. Canceling an
	// already-fired or unknown handle is a no-op.
	CancelTimer(h TimerHandle)

	// MainThreadAssert panics if called off the host's designated event
	// loop thread. The gesture engine calls this at the top of
	// Gesture.ShouldHandleSequence and Gesture.HandleEvent, matching the
	// reference recognizer's single-threaded contract (spec §5).
	MainThreadAssert()
}
