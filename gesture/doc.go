// Package gesture turns low-level pointer and touch events into discrete
// gestures. Each Gesture is a small state machine (WAITING, POSSIBLE,
// RECOGNIZE_PENDING, RECOGNIZING, COMPLETED, CANCELLED) that watches a set of
// event sequences and asks, via a Delegate, whether it should claim them.
//
// A Registry arbitrates between gestures that are simultaneously interested
// in the same input: only one gesture may be RECOGNIZING at a time, and a
// relationship graph (CanNotCancel, RecognizeIndependentlyFrom,
// RequireFailureOf) between gestures decides who yields to whom.
//
// The package has no opinion about windowing, scene graphs, or event
// sources; those live behind the Host interface. See package stage for a
// reference implementation.
package gesture
