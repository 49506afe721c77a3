package tap

import (
	"testing"
	"time"

	"github.com/phanxgames/gesture/config"
	"github.com/phanxgames/gesture/gesture"
)

// fakeHost is a minimal synchronous gesture.Host, mirroring the one used by
// package gesture's own tests: timers only fire when the test calls fire().
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

func (h *fakeHost) fire(id gesture.TimerHandle) {
	if fn, ok := h.timers[id]; ok {
		delete(h.timers, id)
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

func TestSingleClickCompletesImmediately(t *testing.T) {
	host := newFakeHost()
	reg := gesture.NewRegistry()
	r := New(config.NewTapConfig(), host)
	g := gesture.New("tap", r, host, reg)
	r.Bind(g)

	var gotClicks int
	r.OnTap = func(clicks int, at gesture.Coord) { gotClicks = clicks }

	press(g, 10, 10)
	release(g, 10, 10)

	if gotClicks != 1 {
		t.Fatalf("want 1 click reported, got %d", gotClicks)
	}
	if g.State() != gesture.StateWaiting {
		t.Fatalf("gesture should return to WAITING once its point ends, got %s", g.State())
	}
}

func TestDoubleClickWithinTimeoutCompletesWithTwoClicks(t *testing.T) {
	host := newFakeHost()
	reg := gesture.NewRegistry()
	cfg := config.NewTapConfig().WithClicksRequired(2)
	r := New(cfg, host)
	g := gesture.New("tap", r, host, reg)
	r.Bind(g)

	var gotClicks int
	r.OnTap = func(clicks int, at gesture.Coord) { gotClicks = clicks }

	press(g, 10, 10)
	release(g, 10, 10)
	if gotClicks != 0 {
		t.Fatalf("should not complete after only one of two required clicks, got %d", gotClicks)
	}

	press(g, 11, 9)
	release(g, 11, 9)
	if gotClicks != 2 {
		t.Fatalf("want 2 clicks reported, got %d", gotClicks)
	}
}

func TestClickTimeoutCancelsWaitForSecondClick(t *testing.T) {
	host := newFakeHost()
	reg := gesture.NewRegistry()
	cfg := config.NewTapConfig().WithClicksRequired(2).WithClickTimeout(50 * time.Millisecond)
	r := New(cfg, host)
	g := gesture.New("tap", r, host, reg)
	r.Bind(g)

	var gotClicks int
	r.OnTap = func(clicks int, at gesture.Coord) { gotClicks = clicks }

	press(g, 10, 10)
	release(g, 10, 10)

	if len(host.timers) != 1 {
		t.Fatalf("expected exactly one pending click timeout, got %d", len(host.timers))
	}
	for id := range host.timers {
		host.fire(id)
	}

	press(g, 10, 10)
	release(g, 10, 10)
	if gotClicks != 0 {
		t.Fatalf("second click after timeout should start a fresh sequence, not complete, got %d", gotClicks)
	}
}

func TestMovementPastCancelThresholdCancelsTap(t *testing.T) {
	host := newFakeHost()
	reg := gesture.NewRegistry()
	r := New(config.NewTapConfig(), host)
	g := gesture.New("tap", r, host, reg)
	r.Bind(g)

	press(g, 10, 10)
	move(g, 200, 200)

	if g.State() != gesture.StateCancelled {
		t.Fatalf("tap should cancel after moving past threshold, got %s", g.State())
	}

	release(g, 200, 200)
	if g.State() != gesture.StateWaiting {
		t.Fatalf("gesture should settle back to WAITING once its point ends, got %s", g.State())
	}
}
