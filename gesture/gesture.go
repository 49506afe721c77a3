package gesture

import (
	"fmt"
	"os"
)

// Debug gates panics on invariant violations that should never happen in a
// correctly wired host, mirroring the teacher's globalDebug/SetDebugMode
// switch. Off by default; release builds should leave it off.
var Debug bool

// SetDebug toggles Debug.
func SetDebug(on bool) { Debug = on }

// Gesture is a single recognizer instance: a name, a Delegate supplying its
// logic, and the bookkeeping needed to track points and negotiate with
// sibling gestures through a shared Registry.
type Gesture struct {
	name     string
	delegate Delegate
	host     Host
	registry *Registry

	state          State
	allowedDevices DeviceType
	minPoints      int
	maxPoints      int

	// actor is the host-defined scene node this gesture is currently
	// attached to, opaque to the engine (mirroring ActorScopedGrab.Root).
	// See SetActor.
	actor any

	points            []pointKey
	byKey             map[pointKey]*pointState
	pointIndexCounter int

	// publicOrder/publicByKey are the append-only public view exposed by
	// Points(), tracked separately from points/byKey. It only reflects
	// points while the gesture is not terminal: entering CANCELLED or
	// COMPLETED empties it immediately, even though byKey may still be
	// absorbing in-flight points on their way to ending.
	publicOrder []pointKey
	publicByKey map[pointKey]Point

	canNotCancel               map[*Gesture]bool
	recognizeIndependentlyFrom map[*Gesture]bool
	inRelationshipWith         map[*Gesture]bool
	cancelOnRecognizing        []*Gesture

	requireFailureOf     map[*Gesture]bool
	pendingOn            map[*Gesture]bool
	dependents           map[*Gesture]bool
	pendingWantsComplete bool

	onStateChange  []func(g *Gesture, old, new State)
	onMayRecognize []func(g *Gesture) bool

	closed bool
}

// New creates a Gesture bound to host and registered in registry, driven by
// delegate. minPoints/maxPoints default to [1, unlimited]; see SetNPoints.
func New(name string, delegate Delegate, host Host, registry *Registry) *Gesture {
	if delegate == nil {
		delegate = BaseDelegate{}
	}
	return &Gesture{
		name:           name,
		delegate:       delegate,
		host:           host,
		registry:       registry,
		allowedDevices: DeviceAll,
		minPoints:      1,
		maxPoints:      0, // 0 means unbounded
		byKey:          make(map[pointKey]*pointState),
		publicByKey:    make(map[pointKey]Point),
	}
}

// Name returns the gesture's diagnostic name.
func (g *Gesture) Name() string { return g.name }

// State returns the gesture's current lifecycle state.
func (g *Gesture) State() State { return g.state }

// SetAllowedDeviceTypes restricts which device types this gesture will
// accept new sequences from.
func (g *Gesture) SetAllowedDeviceTypes(types DeviceType) { g.allowedDevices = types }

// SetNPoints bounds concurrent points this gesture will track. max == 0
// means unbounded. Mirrors clutter_gesture_set_n_points.
func (g *Gesture) SetNPoints(min, max int) {
	g.minPoints = min
	g.maxPoints = max
}

// Actor returns the host actor reference last set via SetActor, or nil.
func (g *Gesture) Actor() any { return g.actor }

// SetActor attaches g to a host-defined actor reference, or clears it when
// actor is nil. Changing away from a non-nil actor — including detaching to
// nil — force-cancels every point g is currently tracking, mirroring
// clutter_gesture_set_actor's cancel_all_points: a gesture that loses its
// actor mid-recognition has nowhere left to report through.
func (g *Gesture) SetActor(actor any) {
	if g.actor == actor {
		return
	}
	if g.actor != nil {
		g.cancelAllPoints()
	}
	g.actor = actor
}

// cancelAllPoints force-drops every point g holds, cancelling the gesture
// itself first if it isn't already terminal.
func (g *Gesture) cancelAllPoints() {
	if len(g.points) == 0 {
		return
	}
	if g.state != StateCancelled && g.state != StateCompleted && g.state != StateWaiting {
		g.Cancel()
	}
	g.SequencesCancelled(append([]pointKey(nil), g.points...))
}

// Points returns the append-only public view of every point currently
// tracked, in the order they began. Empty whenever State is COMPLETED or
// CANCELLED, regardless of what the engine is still internally absorbing.
func (g *Gesture) Points() []Point {
	out := make([]Point, 0, len(g.publicOrder))
	for _, k := range g.publicOrder {
		if p, ok := g.publicByKey[k]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (g *Gesture) setPublicPoint(key pointKey, p Point) {
	if _, ok := g.publicByKey[key]; !ok {
		g.publicOrder = append(g.publicOrder, key)
	}
	g.publicByKey[key] = p
}

func (g *Gesture) removePublicPoint(key pointKey) {
	if _, ok := g.publicByKey[key]; !ok {
		return
	}
	delete(g.publicByKey, key)
	for i, k := range g.publicOrder {
		if k == key {
			g.publicOrder = append(g.publicOrder[:i], g.publicOrder[i+1:]...)
			break
		}
	}
}

// clearPublicPoints empties the public view, e.g. on entering CANCELLED or
// COMPLETED (invariant: state terminal implies Points() is empty).
func (g *Gesture) clearPublicPoints() {
	g.publicOrder = nil
	for k := range g.publicByKey {
		delete(g.publicByKey, k)
	}
}

// OnStateChange registers a callback invoked after every state transition.
func (g *Gesture) OnStateChange(fn func(g *Gesture, old, new State)) {
	g.onStateChange = append(g.onStateChange, fn)
}

// OnMayRecognize registers an additional veto hook consulted by
// Registry.gestureMayStart, alongside the relationship graph.
func (g *Gesture) OnMayRecognize(fn func(g *Gesture) bool) {
	g.onMayRecognize = append(g.onMayRecognize, fn)
}

// --- Relationship graph mutators ---

func (g *Gesture) ensureCanNotCancel() {
	if g.canNotCancel == nil {
		g.canNotCancel = make(map[*Gesture]bool)
	}
}

// CanNotCancel forbids g from cancelling other when g starts RECOGNIZING,
// overriding whatever ShouldInfluence/ShouldBeInfluencedBy would otherwise
// decide.
func (g *Gesture) CanNotCancel(other *Gesture) {
	g.ensureCanNotCancel()
	g.canNotCancel[other] = true
}

// RecognizeIndependentlyFrom lets g and other both reach RECOGNIZING at the
// same time, bypassing the "one gesture recognizing at a time" arbitration
// between this pair.
func (g *Gesture) RecognizeIndependentlyFrom(other *Gesture) {
	if g.recognizeIndependentlyFrom == nil {
		g.recognizeIndependentlyFrom = make(map[*Gesture]bool)
	}
	g.recognizeIndependentlyFrom[other] = true
	if other.recognizeIndependentlyFrom == nil {
		other.recognizeIndependentlyFrom = make(map[*Gesture]bool)
	}
	other.recognizeIndependentlyFrom[g] = true
}

// RequireFailureOf makes g wait for other to reach CANCELLED before g may
// enter RECOGNIZING; if other reaches RECOGNIZING/COMPLETED first, g is
// force-cancelled. While waiting, g's externally observable state is
// RECOGNIZE_PENDING instead of RECOGNIZING.
func (g *Gesture) RequireFailureOf(other *Gesture) {
	if g.requireFailureOf == nil {
		g.requireFailureOf = make(map[*Gesture]bool)
	}
	g.requireFailureOf[other] = true
	if other.dependents == nil {
		other.dependents = make(map[*Gesture]bool)
	}
	other.dependents[g] = true
	if g.state == StatePossible {
		g.RelationshipsChanged()
	}
}

// RelationshipsChanged re-evaluates g's arbitration gates against its
// current peers. Call this after mutating CanNotCancel/RequireFailureOf
// edges at runtime; it only touches g's own edges, not a global
// renegotiation of every gesture in the registry.
func (g *Gesture) RelationshipsChanged() {
	if g.state != StatePossible && g.state != StateRecognizePending {
		return
	}
	if g.pendingOn == nil {
		g.pendingOn = make(map[*Gesture]bool)
	} else {
		for k := range g.pendingOn {
			delete(g.pendingOn, k)
		}
	}
	for dep := range g.requireFailureOf {
		if dep.state != StateCancelled && dep.state != StateWaiting {
			g.pendingOn[dep] = true
		}
	}
	if len(g.pendingOn) == 0 {
		g.attemptPromotion()
	}
}

// SetupSequenceRelationship negotiates the influence relationship between g
// and other over a point they both currently track, returning -1 if g
// should be dispatched the point before other, 1 if after, or 0 if the
// order doesn't matter. Once negotiated for a pair, the result is cached and
// reused for any further points they come to share.
func (g *Gesture) SetupSequenceRelationship(other *Gesture) int {
	var cancelSelfOnOtherRecognizing, cancelOtherOnSelfRecognizing bool

	if g.inRelationshipWith[other] {
		cancelSelfOnOtherRecognizing = contains(other.cancelOnRecognizing, g)
		cancelOtherOnSelfRecognizing = contains(g.cancelOnRecognizing, other)
	} else {
		cancelOtherOnSelfRecognizing = g.setupInfluenceOn(other)
		cancelSelfOnOtherRecognizing = other.setupInfluenceOn(g)

		if g.inRelationshipWith == nil {
			g.inRelationshipWith = make(map[*Gesture]bool)
		}
		if other.inRelationshipWith == nil {
			other.inRelationshipWith = make(map[*Gesture]bool)
		}
		g.inRelationshipWith[other] = true
		other.inRelationshipWith[g] = true

		if cancelOtherOnSelfRecognizing {
			g.cancelOnRecognizing = append(g.cancelOnRecognizing, other)
		}
		if cancelSelfOnOtherRecognizing {
			other.cancelOnRecognizing = append(other.cancelOnRecognizing, g)
		}
	}

	if cancelOtherOnSelfRecognizing && !cancelSelfOnOtherRecognizing {
		return -1
	}
	if !cancelOtherOnSelfRecognizing && cancelSelfOnOtherRecognizing {
		return 1
	}
	return 0
}

// setupInfluenceOn computes whether g cancels other when g starts
// RECOGNIZING: default true, subject to both delegates' pass-through hooks
// and finally g's CanNotCancel override.
func (g *Gesture) setupInfluenceOn(other *Gesture) bool {
	cancel := true
	cancel = g.delegate.ShouldInfluence(g, other, cancel)
	cancel = other.delegate.ShouldBeInfluencedBy(other, g, cancel)
	if g.canNotCancel[other] {
		cancel = false
	}
	return cancel
}

func contains(list []*Gesture, target *Gesture) bool {
	for _, g := range list {
		if g == target {
			return true
		}
	}
	return false
}

// --- Point dispatch ---

// ShouldHandleSequence asks the delegate whether g wants to start tracking
// the point behind e, honoring the terminal-state guard, the device-type
// filter, the n_points bound, and the single-source-device discipline
// first.
func (g *Gesture) ShouldHandleSequence(e Event) bool {
	g.host.MainThreadAssert()
	if g.state == StateCancelled {
		return false
	}
	if e.DeviceType&g.allowedDevices == 0 {
		return false
	}
	if g.maxPoints > 0 && len(g.points) >= g.maxPoints {
		return false
	}
	for _, k := range g.points {
		if ps, ok := g.byKey[k]; ok && ps.sourceDevice != e.SourceDevice {
			return false
		}
	}
	key := e.seqKey()
	probe := Point{Key: key, Index: g.pointIndexCounter, Device: e.Device, DeviceType: e.DeviceType, Button: e.Button,
		Begin: Coord{e.X, e.Y, e.Time}, Last: Coord{e.X, e.Y, e.Time}, Latest: Coord{e.X, e.Y, e.Time}}
	return g.delegate.ShouldHandleSequence(g, probe)
}

// HandleEvent feeds a single input event into g. The event must be for a
// point g is already tracking, or one ShouldHandleSequence just accepted.
func (g *Gesture) HandleEvent(e Event) {
	g.host.MainThreadAssert()
	if g.closed {
		return
	}
	if e.Synthetic {
		return
	}
	key := e.seqKey()
	ps, tracked := g.byKey[key]
	coord := Coord{e.X, e.Y, e.Time}

	switch e.Kind {
	case EventButtonPress, EventTouchBegin:
		if !tracked {
			ps = newPointState(key, g.pointIndexCounter, e.Device, e.SourceDevice, e.DeviceType, e.Button, coord)
			g.pointIndexCounter++
			g.byKey[key] = ps
			g.points = append(g.points, key)
			g.setState(StatePossible)
			if g.state == StateWaiting {
				// Entry to POSSIBLE was refused: reject the point so a
				// WAITING gesture keeps an empty point store.
				delete(g.byKey, key)
				g.points = g.points[:len(g.points)-1]
				g.pointIndexCounter--
				return
			}
			break
		}
		// A second button pressed over an already-tracked pointer point is
		// swallowed: it doesn't reach the delegate, it only extends how
		// many releases the point takes to actually end.
		if key.isPointer {
			ps.buttonsPressed++
		}
		return
	case EventMotion, EventTouchUpdate:
		if !tracked {
			return
		}
		ps.push(coord)
	case EventButtonRelease:
		if !tracked {
			return
		}
		if key.isPointer && ps.buttonsPressed > 0 {
			ps.buttonsPressed--
			return
		}
		ps.push(coord)
		ps.ended = true
	case EventTouchEnd, EventTouchCancel:
		if !tracked {
			return
		}
		ps.push(coord)
		ps.ended = true
	case EventEnter, EventLeave:
		if !tracked {
			return
		}
		if g.state != StateCancelled && g.state != StateCompleted {
			g.delegate.CrossingEvent(g, ps.toPublic(e.Kind), e.Kind)
		}
		return
	default:
		if !tracked {
			return
		}
		ps.push(coord)
	}

	// A CANCELLED/COMPLETED gesture still absorbs the point below (so it
	// stops tracking it), but no longer reports it to the delegate.
	if g.state != StateCancelled && g.state != StateCompleted {
		pub := ps.toPublic(e.Kind)
		g.setPublicPoint(key, pub)
		g.delegate.HandlePoint(g, pub, e.Kind)
		if ps.ended {
			g.removePublicPoint(key)
		}
	}

	if ps.ended {
		g.dropPoint(key)
	}
}

func (g *Gesture) dropPoint(key pointKey) {
	delete(g.byKey, key)
	for i, k := range g.points {
		if k == key {
			g.points = append(g.points[:i], g.points[i+1:]...)
			break
		}
	}
	if len(g.points) == 0 {
		g.maybeMoveToWaiting()
	}
}

// SequencesCancelled force-drops the given (device, sequence) pairs,
// notifying the delegate, e.g. when the host claims them for something
// else.
func (g *Gesture) SequencesCancelled(keys []pointKey) {
	var dropped []Point
	for _, k := range keys {
		if ps, ok := g.byKey[k]; ok {
			dropped = append(dropped, ps.toPublic(EventTouchCancel))
			g.removePublicPoint(k)
			g.dropPoint(k)
		}
	}
	if len(dropped) > 0 {
		g.delegate.SequencesCancelled(g, dropped)
	}
}

// --- State-changing requests, called by the delegate ---

// RequestRecognizing asks to move from POSSIBLE to RECOGNIZING (or
// RECOGNIZE_PENDING if gated by an unresolved RequireFailureOf edge).
func (g *Gesture) RequestRecognizing() {
	g.setState(StateRecognizing)
}

// Complete asks to move to COMPLETED, passing through RECOGNIZING first if
// necessary, exactly like the reference recognizer's authoritative
// transition.
func (g *Gesture) Complete() {
	if g.state != StateRecognizing {
		if g.pendingOn != nil && len(g.pendingOn) > 0 {
			g.pendingWantsComplete = true
			g.setState(StateRecognizePending)
			return
		}
		g.setState(StateRecognizing)
		if g.state != StateRecognizing {
			return // got cancelled instead
		}
	}
	g.setState(StateCompleted)
}

// Cancel force-cancels the gesture.
func (g *Gesture) Cancel() {
	g.setState(StateCancelled)
}

func (g *Gesture) forceCancel() {
	g.setState(StateCancelled)
}

// Close severs g's references to its peers and host, breaking the
// relationship-graph reference cycles the same way the reference host's
// actor tree breaks parent/child cycles on disposal: explicitly, not via
// finalizers.
func (g *Gesture) Close() {
	if g.closed {
		return
	}
	g.closed = true
	for other := range g.inRelationshipWith {
		delete(other.inRelationshipWith, g)
	}
	for dep := range g.requireFailureOf {
		delete(dep.dependents, g)
	}
	for dep := range g.dependents {
		delete(dep.requireFailureOf, g)
	}
	g.registry.deactivate(g)
	g.inRelationshipWith = nil
	g.canNotCancel = nil
	g.recognizeIndependentlyFrom = nil
	g.requireFailureOf = nil
	g.dependents = nil
	g.pendingOn = nil
	g.cancelOnRecognizing = nil
	g.byKey = nil
	g.points = nil
	g.publicByKey = nil
	g.publicOrder = nil
	g.onStateChange = nil
	g.onMayRecognize = nil
	g.actor = nil
}

// --- Internal state machine ---

func (g *Gesture) illegal(to State) {
	msg := fmt.Sprintf("[gesture] %q: illegal transition %s -> %s, ignoring", g.name, g.state, to)
	if Debug {
		panic(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

// setState is the authoritative entry point: it performs the raw transition
// (possibly redirected or refused by arbitration), then runs the two
// side-effect passes the reference recognizer always runs afterward.
func (g *Gesture) setState(requested State) {
	if requested == StateCompleted && g.state != StateRecognizing {
		// Also detours from RECOGNIZE_PENDING: attemptPromotion only calls
		// setState(StateCompleted) once every RequireFailureOf gate has
		// cleared, so pendingOn is already empty and RecognizePending ->
		// Recognizing -> Completed is exactly the same authoritative path
		// Possible -> Recognizing -> Completed takes.
		g.setStateRaw(StateRecognizing)
		if g.state == StateRecognizing {
			g.setStateRaw(StateCompleted)
		}
		g.maybeInfluenceOtherGestures()
		g.maybeMoveToWaiting()
		return
	}

	g.setStateRaw(requested)
	if g.state == StateRecognizing || g.state == StateCancelled {
		g.maybeInfluenceOtherGestures()
	}
	g.maybeMoveToWaiting()
}

func (g *Gesture) setStateRaw(newState State) {
	if g.state == newState && newState != StateRecognizing {
		return
	}
	if !legalTransition(g.state, newState) {
		g.illegal(newState)
		return
	}

	if g.state == StateWaiting && newState == StatePossible {
		if !g.registry.gestureMayStart(g) {
			return
		}
		g.registry.activate(g)
		g.initPendingGates()
	}

	if (g.state == StatePossible || g.state == StateRecognizePending) && newState == StateRecognizing {
		if len(g.points) < g.minPoints {
			g.setStateRaw(StateCancelled)
			return
		}
		if g.pendingOn != nil && len(g.pendingOn) > 0 {
			newState = StateRecognizePending
		} else if !g.registry.gestureMayStart(g) {
			g.setStateRaw(StateCancelled)
			return
		}
	}

	old := g.state
	g.state = newState

	if newState == StateRecognizing {
		for _, k := range g.points {
			g.host.ClaimSequence(k.device, seqPtr(k), g)
		}
		g.registry.maybeCancelIndependentGestures(g)
		g.resolveDependentsOnRecognized()
	}

	if newState == StateCancelled || newState == StateCompleted {
		g.clearPublicPoints()
	}

	if newState == StateWaiting {
		g.registry.deactivate(g)
		for other := range g.inRelationshipWith {
			delete(other.inRelationshipWith, g)
		}
		g.inRelationshipWith = nil
		g.cancelOnRecognizing = nil
		g.pointIndexCounter = 0
	}

	g.delegate.StateChanged(g, old, newState)
	for _, fn := range g.onStateChange {
		fn(g, old, newState)
	}

	if newState == StateCancelled {
		g.resolveDependentsOnCancelled()
	}
}

func seqPtr(k pointKey) *uint64 {
	if k.isPointer {
		return nil
	}
	seq := k.sequence
	return &seq
}

// maybeInfluenceOtherGestures cancels the peers this gesture negotiated to
// cancel, once it has actually recognized or completed.
func (g *Gesture) maybeInfluenceOtherGestures() {
	if g.state != StateRecognizing && g.state != StateCompleted {
		return
	}
	toCancel := g.cancelOnRecognizing
	g.cancelOnRecognizing = nil
	for _, other := range toCancel {
		if !g.inRelationshipWith[other] {
			continue
		}
		other.setStateRaw(StateCancelled)
		other.maybeMoveToWaiting()
	}
}

func (g *Gesture) maybeMoveToWaiting() {
	if len(g.points) == 0 && (g.state == StateCompleted || g.state == StateCancelled) {
		g.setStateRaw(StateWaiting)
	}
}

// initPendingGates snapshots which RequireFailureOf dependencies are still
// outstanding as g becomes POSSIBLE, so the very first promotion attempt
// already knows whether it must detour through RECOGNIZE_PENDING.
func (g *Gesture) initPendingGates() {
	if len(g.requireFailureOf) == 0 {
		return
	}
	g.pendingOn = make(map[*Gesture]bool, len(g.requireFailureOf))
	for dep := range g.requireFailureOf {
		if dep.state != StateCancelled && dep.state != StateWaiting {
			g.pendingOn[dep] = true
		}
	}
}

// attemptPromotion re-tries a deferred RECOGNIZING transition once every
// RequireFailureOf gate has cleared.
func (g *Gesture) attemptPromotion() {
	if g.state != StateRecognizePending {
		return
	}
	if len(g.pendingOn) > 0 {
		return
	}
	wantsComplete := g.pendingWantsComplete
	g.pendingWantsComplete = false
	if wantsComplete {
		g.setState(StateCompleted)
	} else {
		g.setState(StateRecognizing)
	}
}

// resolveDependentsOnCancelled clears self out of every dependent's pending
// gate and lets any that are now unblocked attempt to promote.
func (g *Gesture) resolveDependentsOnCancelled() {
	for dep := range g.dependents {
		if dep.pendingOn != nil {
			delete(dep.pendingOn, g)
			if len(dep.pendingOn) == 0 {
				dep.attemptPromotion()
			}
		}
	}
}

// resolveDependentsOnRecognized force-cancels every dependent still waiting
// on self to fail, since self just succeeded instead.
func (g *Gesture) resolveDependentsOnRecognized() {
	for dep := range g.dependents {
		delete(dep.requireFailureOf, g)
		if dep.pendingOn != nil {
			delete(dep.pendingOn, g)
		}
		if dep.state == StatePossible || dep.state == StateRecognizePending {
			dep.forceCancel()
		}
	}
	g.dependents = nil
}
