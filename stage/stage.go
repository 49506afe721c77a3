package stage

import (
	"sort"
	"sync"
	"time"

	"github.com/phanxgames/gesture/gesture"
)

type claimKey struct {
	device DeviceID
	seq    uint64
	isPtr  bool
}

// DeviceID mirrors gesture.DeviceID; kept as a distinct alias so callers
// building Events don't need to import package gesture just for the type.
type DeviceID = gesture.DeviceID

// Stage is the reference gesture.Host: it owns an actor tree, an
// arbitration Registry, a grab stack, and a host-thread-affine timer
// facility, adapted from the teacher's Scene (see scene.go's Update/Draw
// cadence in the teacher tree) but trimmed to the concerns package gesture
// actually needs from a host.
type Stage struct {
	Root     *Actor
	registry *gesture.Registry
	grabs    *gesture.GrabStack

	mu          sync.Mutex
	timers      map[gesture.TimerHandle]*time.Timer
	nextTimerID uint64
	pending     []func()

	claims map[claimKey]*gesture.Gesture

	inLoop bool
	debug  bool
}

// NewStage creates an empty stage with a fresh arbitration registry.
func NewStage() *Stage {
	root := NewActor("root")
	return &Stage{
		Root:     root,
		registry: gesture.NewRegistry(),
		grabs:    gesture.NewGrabStack(),
		timers:   make(map[gesture.TimerHandle]*time.Timer),
		claims:   make(map[claimKey]*gesture.Gesture),
	}
}

// Registry returns the arbitration domain shared by every gesture attached
// to this stage. Pass this to gesture.New.
func (s *Stage) Registry() *gesture.Registry { return s.registry }

// SetDebug toggles stderr diagnostics for hit-testing and dispatch,
// mirroring the teacher's Scene.debug/SetDebugMode.
func (s *Stage) SetDebug(on bool) {
	s.debug = on
	globalDebug = on
}

// --- gesture.Host ---

func (s *Stage) ClaimSequence(device gesture.DeviceID, sequence *uint64, owner *gesture.Gesture) {
	key := claimKey{device: device, isPtr: sequence == nil}
	if sequence != nil {
		key.seq = *sequence
	}
	s.claims[key] = owner
}

func (s *Stage) ScheduleTimer(d time.Duration, fn func()) gesture.TimerHandle {
	s.mu.Lock()
	s.nextTimerID++
	id := gesture.TimerHandle(s.nextTimerID)
	s.mu.Unlock()

	t := time.AfterFunc(d, func() {
		s.mu.Lock()
		s.pending = append(s.pending, fn)
		s.mu.Unlock()
	})

	s.mu.Lock()
	s.timers[id] = t
	s.mu.Unlock()
	return id
}

func (s *Stage) CancelTimer(h gesture.TimerHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// MainThreadAssert panics if called outside Update or Dispatch, matching the
// reference recognizer's single-threaded contract (spec §5): timers fire on
// their own goroutine but only enqueue work, which Update drains on the
// caller's thread.
func (s *Stage) MainThreadAssert() {
	if !s.inLoop {
		panic("stage: gesture engine touched off the stage's update loop")
	}
}

// Update drains any timers that fired since the last call and recomputes
// world transforms. Call this once per frame/tick from the host application
// (ebiten's Game.Update in cmd/gesturedemo).
func (s *Stage) Update() {
	s.inLoop = true
	defer func() { s.inLoop = false }()

	s.mu.Lock()
	due := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range due {
		fn()
	}

	updateWorldTransform(s.Root, identityTransform, false)
}

// --- Dispatch ---

// HitTest returns the topmost interactable actor under the world-space
// point (x, y), or nil.
func (s *Stage) HitTest(x, y float64) *Actor {
	return hitTest(s.Root, x, y)
}

func hitTest(a *Actor, wx, wy float64) *Actor {
	if !a.Visible {
		return nil
	}
	for i := len(a.children) - 1; i >= 0; i-- {
		if hit := hitTest(a.children[i], wx, wy); hit != nil {
			return hit
		}
	}
	if !a.Interactable || a.HitShape == nil {
		return nil
	}
	lx, ly := a.WorldToLocal(wx, wy)
	if a.HitShape.Contains(lx, ly) {
		return a
	}
	return nil
}

// Dispatch feeds one event through the grab stack (if any grab is active)
// or through hit-testing and gesture negotiation otherwise. Call it from the
// same thread that calls Update (cmd/gesturedemo calls it right after
// Update in each frame); for its duration the stage counts as inside its
// update loop, so the gesture engine's MainThreadAssert holds.
func (s *Stage) Dispatch(e gesture.Event) {
	wasInLoop := s.inLoop
	s.inLoop = true
	defer func() { s.inLoop = wasInLoop }()

	if s.grabs.Dispatch(e) {
		return
	}

	target := s.HitTest(e.X, e.Y)
	s.debugLogHit(e.X, e.Y, target)
	if target == nil {
		return
	}

	isBegin := e.Kind == gesture.EventButtonPress || e.Kind == gesture.EventTouchBegin

	candidates := dispatchOrder(target.Gestures())
	for _, g := range candidates {
		if isBegin && !g.ShouldHandleSequence(e) {
			continue
		}
		g.HandleEvent(e)
	}
}

// dispatchOrder sorts gestures attached to the same actor using their
// pairwise negotiated SetupSequenceRelationship order, the Go-side
// equivalent of the reference host walking its action list in the order
// clutter_gesture_setup_sequence_relationship established.
func dispatchOrder(gestures []*gesture.Gesture) []*gesture.Gesture {
	if len(gestures) < 2 {
		return gestures
	}
	ordered := append([]*gesture.Gesture(nil), gestures...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SetupSequenceRelationship(ordered[j]) < 0
	})
	return ordered
}

// Grabs returns the stage's grab stack, for pushing modal/drag grabs.
func (s *Stage) Grabs() *gesture.GrabStack { return s.grabs }
