package gesture

import (
	"testing"
	"time"
)

// fakeHost is a minimal gesture.Host for tests: ClaimSequence records
// claims, timers run synchronously when fired via fire(), and
// MainThreadAssert never panics since tests call everything from one
// goroutine.
type fakeHost struct {
	claims map[pointKey]*Gesture
	timers map[TimerHandle]func()
	nextID uint64
}

func newFakeHost() *fakeHost {
	return &fakeHost{claims: map[pointKey]*Gesture{}, timers: map[TimerHandle]func(){}}
}

func (h *fakeHost) ClaimSequence(device DeviceID, sequence *uint64, owner *Gesture) {
	key := pointKey{device: device, isPointer: sequence == nil}
	if sequence != nil {
		key.sequence = *sequence
	}
	h.claims[key] = owner
}

func (h *fakeHost) ScheduleTimer(d time.Duration, fn func()) TimerHandle {
	h.nextID++
	id := TimerHandle(h.nextID)
	h.timers[id] = fn
	return id
}

func (h *fakeHost) CancelTimer(id TimerHandle) { delete(h.timers, id) }

func (h *fakeHost) MainThreadAssert() {}

// fire runs a previously scheduled timer's callback, simulating it firing.
func (h *fakeHost) fire(id TimerHandle) {
	if fn, ok := h.timers[id]; ok {
		delete(h.timers, id)
		fn()
	}
}

// recordingDelegate is a BaseDelegate that records every state transition
// and lets a test script decide when to request RECOGNIZING/COMPLETED.
type recordingDelegate struct {
	BaseDelegate
	transitions [][2]State
}

func (d *recordingDelegate) StateChanged(g *Gesture, old, new State) {
	d.transitions = append(d.transitions, [2]State{old, new})
}

func press(g *Gesture, x, y float64) {
	g.HandleEvent(Event{Kind: EventButtonPress, DeviceType: DevicePointer, X: x, Y: y})
}

func release(g *Gesture, x, y float64) {
	g.HandleEvent(Event{Kind: EventButtonRelease, DeviceType: DevicePointer, X: x, Y: y})
}

func TestBasicLifecycleWaitingToCompletedAndBack(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	del := &recordingDelegate{}
	g := New("g1", del, host, reg)

	if g.State() != StateWaiting {
		t.Fatalf("new gesture should start WAITING, got %s", g.State())
	}

	press(g, 10, 10)
	if g.State() != StatePossible {
		t.Fatalf("after first point, want POSSIBLE, got %s", g.State())
	}

	g.RequestRecognizing()
	if g.State() != StateRecognizing {
		t.Fatalf("want RECOGNIZING, got %s", g.State())
	}

	g.Complete()
	if g.State() != StateCompleted {
		t.Fatalf("want COMPLETED, got %s", g.State())
	}

	release(g, 10, 10)
	if g.State() != StateWaiting {
		t.Fatalf("after last point ends, want WAITING, got %s", g.State())
	}
}

func TestIllegalTransitionIsRefusedNotFatal(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	g := New("g1", BaseDelegate{}, host, reg)

	// WAITING -> RECOGNIZING directly is illegal; should be refused, not panic.
	g.setState(StateRecognizing)
	if g.State() != StateWaiting {
		t.Fatalf("illegal transition should be refused, state = %s", g.State())
	}
}

func TestGlobalArbitrationOnlyOneRecognizingAtATime(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	a := New("a", BaseDelegate{}, host, reg)
	b := New("b", BaseDelegate{}, host, reg)

	press(a, 0, 0)
	a.RequestRecognizing()
	if a.State() != StateRecognizing {
		t.Fatalf("a should recognize uncontested, got %s", a.State())
	}

	press(b, 100, 100)
	if b.State() != StateWaiting {
		t.Fatalf("b should be refused entry to POSSIBLE while a is RECOGNIZING (unrelated, no independence edge), got %s", b.State())
	}
}

func TestRecognizeIndependentlyFromAllowsConcurrentRecognizing(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	a := New("a", BaseDelegate{}, host, reg)
	b := New("b", BaseDelegate{}, host, reg)
	a.RecognizeIndependentlyFrom(b)

	press(a, 0, 0)
	a.RequestRecognizing()
	press(b, 100, 100)
	b.RequestRecognizing()

	if a.State() != StateRecognizing || b.State() != StateRecognizing {
		t.Fatalf("both should recognize concurrently, got a=%s b=%s", a.State(), b.State())
	}
}

func TestCanNotCancelOverridesDefaultCancellation(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	a := New("a", BaseDelegate{}, host, reg)
	b := New("b", BaseDelegate{}, host, reg)
	a.CanNotCancel(b)

	// Share a point so SetupSequenceRelationship negotiates the pair.
	press(a, 5, 5)
	press(b, 5, 5)
	a.SetupSequenceRelationship(b)

	a.RequestRecognizing()
	if a.State() != StateRecognizing {
		t.Fatalf("a should recognize, got %s", a.State())
	}
	if b.State() != StatePossible {
		t.Fatalf("b should survive a's recognition due to CanNotCancel, got %s", b.State())
	}
}

func TestDefaultRelationshipCancelsPeerOnRecognizing(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	a := New("a", BaseDelegate{}, host, reg)
	b := New("b", BaseDelegate{}, host, reg)

	press(a, 5, 5)
	press(b, 5, 5)
	a.SetupSequenceRelationship(b)

	a.RequestRecognizing()
	if b.State() != StateCancelled {
		t.Fatalf("b should be cancelled by a's default influence, got %s", b.State())
	}
}

func TestRequireFailureOfDefersToRecognizePendingThenPromotes(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	dep := New("dep", BaseDelegate{}, host, reg)
	main := New("main", BaseDelegate{}, host, reg)
	main.RequireFailureOf(dep)

	press(dep, 0, 0)
	press(main, 0, 0)

	main.RequestRecognizing()
	if main.State() != StateRecognizePending {
		t.Fatalf("main should be gated to RECOGNIZE_PENDING while dep is still POSSIBLE, got %s", main.State())
	}

	dep.Cancel()
	if dep.State() != StateCancelled {
		t.Fatalf("dep should be CANCELLED, got %s", dep.State())
	}
	if main.State() != StateRecognizing {
		t.Fatalf("main should promote to RECOGNIZING once dep fails, got %s", main.State())
	}
}

func TestRequireFailureOfCancelsWhenDependencyRecognizes(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	dep := New("dep", BaseDelegate{}, host, reg)
	main := New("main", BaseDelegate{}, host, reg)
	main.RecognizeIndependentlyFrom(dep)
	main.RequireFailureOf(dep)

	press(dep, 0, 0)
	press(main, 0, 0)

	main.RequestRecognizing()
	if main.State() != StateRecognizePending {
		t.Fatalf("main should be pending, got %s", main.State())
	}

	dep.RequestRecognizing()
	if dep.State() != StateRecognizing {
		t.Fatalf("dep should recognize, got %s", dep.State())
	}
	if main.State() != StateCancelled {
		t.Fatalf("main should be cancelled once dep recognized instead of failing, got %s", main.State())
	}
}

func TestSetupSequenceRelationshipDispatchOrderIsCached(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	a := New("a", BaseDelegate{}, host, reg)
	b := New("b", BaseDelegate{}, host, reg)

	press(a, 1, 1)
	press(b, 1, 1)

	first := a.SetupSequenceRelationship(b)
	second := a.SetupSequenceRelationship(b)
	if first != second {
		t.Fatalf("negotiated order should be stable across calls: %d != %d", first, second)
	}
	// Default relationship is symmetric (both cancel each other), so no
	// ordering preference either way.
	if first != 0 {
		t.Fatalf("symmetric default relationship should yield order 0, got %d", first)
	}
}

func TestRequireFailureOfCompleteResolvesOnceDependencyFails(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	dep := New("dep", BaseDelegate{}, host, reg)
	main := New("main", BaseDelegate{}, host, reg)
	main.RequireFailureOf(dep)

	press(dep, 0, 0)
	press(main, 0, 0)

	main.Complete()
	if main.State() != StateRecognizePending {
		t.Fatalf("main should park in RECOGNIZE_PENDING awaiting dep's failure, got %s", main.State())
	}

	dep.Cancel()
	if main.State() != StateCompleted {
		t.Fatalf("main should complete once dep fails, got %s (wedged in RECOGNIZE_PENDING is the bug this guards against)", main.State())
	}
}

func TestNPointsMinimumRefusesRecognizingWithTooFewPoints(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	g := New("g", BaseDelegate{}, host, reg)
	g.SetNPoints(2, 0)

	press(g, 0, 0)
	if g.State() != StatePossible {
		t.Fatalf("want POSSIBLE with one point, got %s", g.State())
	}

	g.RequestRecognizing()
	if g.State() != StateCancelled {
		t.Fatalf("want CANCELLED when fewer than minPoints are held, got %s", g.State())
	}
}

func TestNPointsMinimumAllowsRecognizingOnceMet(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	g := New("g", BaseDelegate{}, host, reg)
	g.SetNPoints(2, 0)

	press(g, 0, 0)
	seq := uint64(1)
	g.HandleEvent(Event{Kind: EventTouchBegin, DeviceType: DeviceTouch, Sequence: &seq, X: 5, Y: 5})

	g.RequestRecognizing()
	if g.State() != StateRecognizing {
		t.Fatalf("want RECOGNIZING once minPoints is met, got %s", g.State())
	}
}

func TestSetActorDetachCancelsActivePoints(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	del := &recordingDelegate{}
	g := New("g", del, host, reg)

	actorA := "actorA"
	g.SetActor(actorA)
	press(g, 0, 0)
	if g.State() != StatePossible {
		t.Fatalf("want POSSIBLE holding a point, got %s", g.State())
	}

	g.SetActor(nil)
	if g.State() != StateWaiting {
		t.Fatalf("detaching should cancel the gesture and drop its points back to WAITING, got %s", g.State())
	}
	if len(g.Points()) != 0 {
		t.Fatalf("no points should remain tracked after detach, got %d", len(g.Points()))
	}
}

func TestSetActorNoopWhenUnchanged(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	g := New("g", BaseDelegate{}, host, reg)

	actorA := "actorA"
	g.SetActor(actorA)
	press(g, 0, 0)
	g.SetActor(actorA) // same actor again, must not cancel

	if g.State() != StatePossible {
		t.Fatalf("re-setting the same actor should not disturb an active point, got %s", g.State())
	}
}

func TestClosePreventsFurtherArbitrationParticipation(t *testing.T) {
	host := newFakeHost()
	reg := NewRegistry()
	a := New("a", BaseDelegate{}, host, reg)
	b := New("b", BaseDelegate{}, host, reg)
	a.RequireFailureOf(b)

	a.Close()

	press(b, 0, 0)
	b.RequestRecognizing()
	if b.State() != StateRecognizing {
		t.Fatalf("b should be unaffected by a after Close, got %s", b.State())
	}
}
