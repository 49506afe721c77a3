package gesture

// Registry is the process-wide (or, more precisely, per-arbitration-domain)
// set of gestures that currently hold a point. Exactly one Registry backs
// a Host; every Gesture attached to that host shares it, so "only one
// gesture may be RECOGNIZING at a time" is scoped to a Registry rather than
// enforced with a package-level global.
//
// This is a deliberate departure from the reference recognizer, whose
// active-gesture set is a process-global GPtrArray: a global would make two
// independent Stage instances in the same process fight over recognition,
// which a Go library embedded in a larger program cannot assume away.
type Registry struct {
	active []*Gesture
}

// NewRegistry creates an empty arbitration domain.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) activate(g *Gesture) {
	r.active = append(r.active, g)
}

func (r *Registry) deactivate(g *Gesture) {
	for i, o := range r.active {
		if o == g {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return
		}
	}
}

// gestureMayStart decides whether self may move from WAITING to POSSIBLE, or
// from POSSIBLE/RECOGNIZE_PENDING to RECOGNIZING, by checking every other
// active gesture in the registry plus the caller-supplied OnMayRecognize
// hooks.
func (r *Registry) gestureMayStart(self *Gesture) bool {
	if !r.newGestureAllowedToStart(self) {
		return false
	}
	for _, fn := range self.onMayRecognize {
		if !fn(self) {
			return false
		}
	}
	return true
}

// newGestureAllowedToStart reports whether every other active, unrelated,
// RECOGNIZING gesture is willing to let self start.
func (r *Registry) newGestureAllowedToStart(self *Gesture) bool {
	for _, existing := range r.active {
		if existing == self {
			continue
		}
		if existing.inRelationshipWith[self] {
			continue
		}
		if existing.state == StateRecognizing {
			if !otherAllowedToStart(existing, self) {
				return false
			}
		}
	}
	return true
}

// otherAllowedToStart asks whether `candidate` may start (POSSIBLE ->
// RECOGNIZING or WAITING -> POSSIBLE) while `recognizing` already holds
// StateRecognizing. Hook order and call targets mirror
// other_gesture_allowed_to_start: the candidate's ShouldStartWhile runs
// first, then the recognizing gesture's OtherGestureMayStart, both as
// pass-through mutators of a should-start flag that starts false.
func otherAllowedToStart(recognizing, candidate *Gesture) bool {
	if recognizing.recognizeIndependentlyFrom[candidate] {
		return true
	}
	should := false
	should = candidate.delegate.ShouldStartWhile(candidate, recognizing, should)
	should = recognizing.delegate.OtherGestureMayStart(recognizing, candidate, should)
	return should
}

// maybeCancelIndependentGestures walks every other active gesture and
// cancels the ones that are POSSIBLE and unrelated to self but not allowed
// to coexist with self now that self is RECOGNIZING. A RECOGNIZE_PENDING
// gesture is treated like RECOGNIZING for this purpose (spec §4.1): it is
// left alone here and instead fails on its own, via gestureMayStart, once
// its RequireFailureOf gate clears and it tries to promote.
func (r *Registry) maybeCancelIndependentGestures(self *Gesture) {
	// Iterate a snapshot: forceCancel can mutate r.active via deactivate.
	snapshot := append([]*Gesture(nil), r.active...)
	for i := len(snapshot) - 1; i >= 0; i-- {
		other := snapshot[i]
		if other == self {
			continue
		}
		if self.inRelationshipWith[other] {
			continue
		}
		if other.state == StatePossible && !otherAllowedToStart(self, other) {
			other.forceCancel()
		}
	}
}
