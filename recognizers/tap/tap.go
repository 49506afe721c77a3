// Package tap recognizes N consecutive clicks (or touches) landing close
// enough together in space and time, grounded on the reference
// recognizer's click gesture (n_clicks_required, cancel_threshold, and the
// inter-click timeout).
package tap

import (
	"math"

	"github.com/phanxgames/gesture/config"
	"github.com/phanxgames/gesture/gesture"
)

// Recognizer detects taps: one or more consecutive press/release cycles
// within a distance tolerance and inter-click timeout of one another.
type Recognizer struct {
	gesture.BaseDelegate

	cfg  config.Tap
	g    *gesture.Gesture
	host gesture.Host

	clicksHappened int
	pressCoord     gesture.Coord
	haveFirstClick bool
	isTouch        bool

	timeoutHandle gesture.TimerHandle
	haveTimeout   bool

	// OnTap fires once the required click count completes.
	OnTap func(clicks int, at gesture.Coord)
}

// New creates a tap recognizer using host for timers. Pass it to
// gesture.New as the delegate, then call Bind with the resulting Gesture.
func New(cfg config.Tap, host gesture.Host) *Recognizer {
	return &Recognizer{cfg: cfg, host: host}
}

// Bind associates the recognizer with its owning Gesture. Call once, right
// after gesture.New(name, r, host, registry).
func (r *Recognizer) Bind(g *gesture.Gesture) { r.g = g }

func (r *Recognizer) ShouldHandleSequence(g *gesture.Gesture, p gesture.Point) bool {
	// Only one contact tracked at a time; a second concurrent point cancels
	// the click in progress rather than being folded into it.
	return true
}

func (r *Recognizer) HandlePoint(g *gesture.Gesture, p gesture.Point, kind gesture.EventKind) {
	switch kind {
	case gesture.EventButtonPress, gesture.EventTouchBegin:
		r.pointsBegan(g, p, kind)
	case gesture.EventMotion, gesture.EventTouchUpdate:
		r.pointsMoved(g, p)
	case gesture.EventButtonRelease, gesture.EventTouchEnd:
		r.pointsEnded(g, p)
	case gesture.EventTouchCancel:
		g.Cancel()
	}
}

func (r *Recognizer) pointsBegan(g *gesture.Gesture, p gesture.Point, kind gesture.EventKind) {
	if len(g.Points()) != 1 {
		g.Cancel()
		return
	}
	r.cancelPendingTimeout()

	isTouch := kind == gesture.EventTouchBegin

	if !r.haveFirstClick {
		r.isTouch = isTouch
		r.pressCoord = p.Begin
		r.haveFirstClick = true
	} else {
		dist := math.Hypot(p.Begin.X-r.pressCoord.X, p.Begin.Y-r.pressCoord.Y)
		if r.isTouch != isTouch || dist > r.cfg.CancelThreshold {
			g.Cancel()
			return
		}
	}

	if r.cfg.ClicksRequired > 1 {
		r.scheduleTimeout(g)
	}
}

func (r *Recognizer) pointsMoved(g *gesture.Gesture, p gesture.Point) {
	dist := math.Hypot(p.Latest.X-p.Begin.X, p.Latest.Y-p.Begin.Y)
	if dist > r.cfg.CancelThreshold {
		g.Cancel()
	}
}

func (r *Recognizer) pointsEnded(g *gesture.Gesture, p gesture.Point) {
	r.clicksHappened++
	if r.clicksHappened == r.cfg.ClicksRequired {
		r.cancelPendingTimeout()
		clicks := r.clicksHappened
		at := p.End
		r.clicksHappened = 0
		r.haveFirstClick = false
		if r.OnTap != nil {
			r.OnTap(clicks, at)
		}
		g.Complete()
	}
}

func (r *Recognizer) SequencesCancelled(g *gesture.Gesture, cancelled []gesture.Point) {
	g.Cancel()
}

func (r *Recognizer) StateChanged(g *gesture.Gesture, old, new gesture.State) {
	if new == gesture.StateCancelled || new == gesture.StateWaiting {
		r.cancelPendingTimeout()
		r.clicksHappened = 0
		r.haveFirstClick = false
	}
}

func (r *Recognizer) scheduleTimeout(g *gesture.Gesture) {
	r.timeoutHandle = r.host.ScheduleTimer(r.cfg.ClickTimeout, func() {
		r.haveTimeout = false
		g.Cancel()
	})
	r.haveTimeout = true
}

func (r *Recognizer) cancelPendingTimeout() {
	if r.haveTimeout {
		r.host.CancelTimer(r.timeoutHandle)
		r.haveTimeout = false
	}
}
