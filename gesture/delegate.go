package gesture

// Delegate supplies a concrete recognizer's decisions to a Gesture. A
// Gesture embeds no behavior of its own beyond bookkeeping; every question
// about whether to start, yield, or influence a peer is forwarded to the
// Delegate. Concrete recognizers (recognizers/tap, recognizers/longpress,
// recognizers/pan) implement this by embedding BaseDelegate and overriding
// only the hooks they care about, the way the reference recognizer's
// subclasses override a handful of virtual functions instead of the whole
// vtable.
type Delegate interface {
	// ShouldHandleSequence is asked before a Gesture starts tracking a new
	// point. Returning false means the gesture never sees this contact.
	ShouldHandleSequence(g *Gesture, p Point) bool

	// HandlePoint is called for every point update the gesture is
	// currently tracking, in dispatch order relative to sibling gestures.
	// The recognizer inspects the accumulated points on g and calls
	// g.RequestRecognizing / g.Complete / g.Cancel as its logic dictates.
	HandlePoint(g *Gesture, p Point, kind EventKind)

	// SequencesCancelled is called when the host force-cancels some of
	// the gesture's points (e.g. a touch was claimed by the compositor).
	SequencesCancelled(g *Gesture, cancelled []Point)

	// CrossingEvent is called for Enter/Leave events on a tracked point,
	// separately from HandlePoint, and never updates the point's
	// coordinate buckets (Last/Latest/Move/End stay exactly as they were
	// before the crossing).
	CrossingEvent(g *Gesture, p Point, kind EventKind)

	// StateChanged notifies the delegate after g's state has already been
	// updated from old to new.
	StateChanged(g *Gesture, old, new State)

	// ShouldInfluence is called on `self` when it first negotiates a
	// relationship with a peer (`other`) in SetupSequenceRelationship, to
	// decide whether self recognizing cancels other. `cancel` is the
	// current running decision (starts true); the hook may leave it
	// unchanged or override it, mirroring a pass-through mutator rather
	// than an independent predicate.
	ShouldInfluence(self, other *Gesture, cancel bool) bool

	// ShouldBeInfluencedBy is the receiving side of ShouldInfluence: it is
	// called on `self` during the same negotiation, about whether `other`
	// recognizing cancels self, with the same pass-through-mutator shape.
	ShouldBeInfluencedBy(self, other *Gesture, cancel bool) bool

	// ShouldStartWhile is called on a candidate gesture (entering POSSIBLE,
	// or POSSIBLE and entering RECOGNIZING) when another gesture
	// (`recognizing`) is already RECOGNIZING, asking whether the candidate
	// is willing to start concurrently with it.
	ShouldStartWhile(candidate, recognizing *Gesture, should bool) bool

	// OtherGestureMayStart is the mirrored hook, called on the already
	// RECOGNIZING gesture about a candidate that wants to start alongside
	// it.
	OtherGestureMayStart(recognizing, candidate *Gesture, should bool) bool
}

// BaseDelegate is the zero-cost default implementation of Delegate. Concrete
// recognizers embed it and override only the hooks their logic needs; the
// unmodified hooks fall through to these defaults, which reproduce the
// reference recognizer's "true unless told otherwise" and pass-through-flag
// behavior exactly.
type BaseDelegate struct{}

func (BaseDelegate) ShouldHandleSequence(*Gesture, Point) bool { return true }

func (BaseDelegate) HandlePoint(*Gesture, Point, EventKind) {}

func (BaseDelegate) SequencesCancelled(*Gesture, []Point) {}

func (BaseDelegate) CrossingEvent(*Gesture, Point, EventKind) {}

func (BaseDelegate) StateChanged(*Gesture, State, State) {}

func (BaseDelegate) ShouldInfluence(_, _ *Gesture, cancel bool) bool { return cancel }

func (BaseDelegate) ShouldBeInfluencedBy(_, _ *Gesture, cancel bool) bool { return cancel }

func (BaseDelegate) ShouldStartWhile(_, _ *Gesture, should bool) bool { return should }

func (BaseDelegate) OtherGestureMayStart(_, _ *Gesture, should bool) bool { return should }
