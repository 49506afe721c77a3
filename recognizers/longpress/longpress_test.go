package longpress

import (
	"testing"
	"time"

	"github.com/phanxgames/gesture/config"
	"github.com/phanxgames/gesture/gesture"
)

type fakeHost struct {
	timers map[gesture.TimerHandle]func()
	nextID uint64
}

func newFakeHost() *fakeHost {
	return &fakeHost{timers: map[gesture.TimerHandle]func(){}}
}

func (h *fakeHost) ClaimSequence(gesture.DeviceID, *uint64, *gesture.Gesture) {}

func (h *fakeHost) ScheduleTimer(d time.Duration, fn func()) gesture.TimerHandle {
	h.nextID++
	id := gesture.TimerHandle(h.nextID)
	h.timers[id] = fn
	return id
}

func (h *fakeHost) CancelTimer(id gesture.TimerHandle) { delete(h.timers, id) }

func (h *fakeHost) MainThreadAssert() {}

func (h *fakeHost) fireAll() {
	pending := h.timers
	h.timers = map[gesture.TimerHandle]func(){}
	for _, fn := range pending {
		fn()
	}
}

func press(g *gesture.Gesture, x, y float64) {
	g.HandleEvent(gesture.Event{Kind: gesture.EventButtonPress, DeviceType: gesture.DevicePointer, X: x, Y: y})
}

func move(g *gesture.Gesture, x, y float64) {
	g.HandleEvent(gesture.Event{Kind: gesture.EventMotion, DeviceType: gesture.DevicePointer, X: x, Y: y})
}

func release(g *gesture.Gesture, x, y float64) {
	g.HandleEvent(gesture.Event{Kind: gesture.EventButtonRelease, DeviceType: gesture.DevicePointer, X: x, Y: y})
}

func TestHoldPastDurationThenReleaseCompletes(t *testing.T) {
	host := newFakeHost()
	reg := gesture.NewRegistry()
	r := New(config.NewLongPressConfig(), host)
	g := gesture.New("longpress", r, host, reg)

	var firedAt gesture.Coord
	fired := false
	r.OnLongPress = func(at gesture.Coord) { fired = true; firedAt = at }

	press(g, 10, 10)
	if g.State() != gesture.StatePossible {
		t.Fatalf("want POSSIBLE while timer pending, got %s", g.State())
	}

	host.fireAll()
	if g.State() != gesture.StateRecognizing {
		t.Fatalf("want RECOGNIZING once the hold timer fires, got %s", g.State())
	}

	release(g, 12, 8)
	if !fired {
		t.Fatal("OnLongPress should fire before completing")
	}
	if firedAt.X != 12 || firedAt.Y != 8 {
		t.Fatalf("OnLongPress should report the release coordinate, got %+v", firedAt)
	}
	if g.State() != gesture.StateWaiting {
		t.Fatalf("want WAITING once the completed gesture drops its last point, got %s", g.State())
	}
}

func TestReleaseBeforeDurationElapsesCancels(t *testing.T) {
	host := newFakeHost()
	reg := gesture.NewRegistry()
	r := New(config.NewLongPressConfig(), host)
	g := gesture.New("longpress", r, host, reg)

	fired := false
	r.OnLongPress = func(gesture.Coord) { fired = true }

	press(g, 10, 10)
	release(g, 10, 10)

	if fired {
		t.Fatal("OnLongPress should not fire when released before the hold duration elapses")
	}
	if g.State() != gesture.StateWaiting {
		t.Fatalf("want WAITING after an early release cancels and drops the point, got %s", g.State())
	}
}

func TestMovementPastCancelThresholdCancelsBeforeTimerFires(t *testing.T) {
	host := newFakeHost()
	reg := gesture.NewRegistry()
	r := New(config.NewLongPressConfig(), host)
	g := gesture.New("longpress", r, host, reg)

	press(g, 10, 10)
	move(g, 100, 100)

	if g.State() != gesture.StateCancelled {
		t.Fatalf("want CANCELLED after moving past threshold, got %s", g.State())
	}
	if len(host.timers) != 0 {
		t.Fatal("the hold timer should have been cancelled")
	}
}

func TestZeroDurationRecognizesImmediately(t *testing.T) {
	host := newFakeHost()
	reg := gesture.NewRegistry()
	r := New(config.NewLongPressConfig().WithDuration(0), host)
	g := gesture.New("longpress", r, host, reg)

	press(g, 10, 10)
	if g.State() != gesture.StateRecognizing {
		t.Fatalf("zero duration should recognize on press, got %s", g.State())
	}
}
