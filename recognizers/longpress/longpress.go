// Package longpress recognizes a single contact held still for a
// configured duration, grounded on the reference recognizer's long-press
// gesture (long_press_duration, cancel_threshold, and its timer-driven
// promotion to RECOGNIZING).
package longpress

import (
	"math"

	"github.com/phanxgames/gesture/config"
	"github.com/phanxgames/gesture/gesture"
)

// Recognizer detects a press held in place for cfg.Duration.
type Recognizer struct {
	gesture.BaseDelegate

	cfg  config.LongPress
	host gesture.Host

	timerHandle gesture.TimerHandle
	haveTimer   bool

	// OnLongPress fires on release, if the hold duration elapsed first
	// (the gesture is RECOGNIZING), with the release coordinate, just
	// before the gesture completes.
	OnLongPress func(at gesture.Coord)
}

// New creates a long-press recognizer using host for its hold timer.
func New(cfg config.LongPress, host gesture.Host) *Recognizer {
	return &Recognizer{cfg: cfg, host: host}
}

func (r *Recognizer) HandlePoint(g *gesture.Gesture, p gesture.Point, kind gesture.EventKind) {
	switch kind {
	case gesture.EventButtonPress, gesture.EventTouchBegin:
		if len(g.Points()) > 1 {
			g.Cancel()
			return
		}
		if r.cfg.Duration <= 0 {
			g.RequestRecognizing()
			return
		}
		r.timerHandle = r.host.ScheduleTimer(r.cfg.Duration, func() {
			r.haveTimer = false
			g.RequestRecognizing()
		})
		r.haveTimer = true

	case gesture.EventMotion, gesture.EventTouchUpdate:
		dist := math.Hypot(p.Latest.X-p.Begin.X, p.Latest.Y-p.Begin.Y)
		if dist > r.cfg.CancelThreshold {
			g.Cancel()
		}

	case gesture.EventButtonRelease, gesture.EventTouchEnd:
		if g.State() == gesture.StateRecognizing {
			if r.OnLongPress != nil {
				r.OnLongPress(p.End)
			}
			g.Complete()
		} else {
			g.Cancel()
		}

	case gesture.EventTouchCancel:
		g.Cancel()
	}
}

func (r *Recognizer) SequencesCancelled(g *gesture.Gesture, cancelled []gesture.Point) {
	g.Cancel()
}

func (r *Recognizer) StateChanged(g *gesture.Gesture, old, new gesture.State) {
	if new == gesture.StateCancelled || new == gesture.StateWaiting {
		r.cancelTimer()
	}
}

func (r *Recognizer) cancelTimer() {
	if r.haveTimer {
		r.host.CancelTimer(r.timerHandle)
		r.haveTimer = false
	}
}
